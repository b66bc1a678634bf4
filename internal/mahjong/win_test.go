package mahjong

import (
	"reflect"
	"testing"
)

func TestCheckHandWrongCount(t *testing.T) {
	table := [][]string{
		{},
		{"1wan"},
		{"1wan", "2wan", "3wan"},
		{"1wan", "1wan", "1wan", "2wan", "3wan", "4wan", "5wan", "6wan", "7wan", "8wan", "9wan", "9wan", "9wan"},
	}

	for i, tiles := range table {
		resp := CheckHand(tiles)
		if resp.IsWin {
			t.Fatalf("index: %d got: win want: no win", i)
		}
		if resp.Detail != nil {
			t.Fatalf("index: %d got detail for invalid count", i)
		}
	}
}

func TestCheckHandWin(t *testing.T) {
	tiles := []string{
		"1wan", "1wan",
		"2wan", "3wan", "4wan",
		"5wan", "6wan", "7wan",
		"1tong", "2tong", "3tong",
		"9tiao", "9tiao", "9tiao",
	}

	resp := CheckHand(tiles)
	if !resp.IsWin {
		t.Fatalf("got: no win want: win (%s)", resp.Message)
	}
	if resp.Detail == nil {
		t.Fatal("missing detail")
	}
	if want := []string{"1wan", "1wan"}; !reflect.DeepEqual(resp.Detail.Pair, want) {
		t.Fatalf("pair got: %v want: %v", resp.Detail.Pair, want)
	}
	wantMelds := [][]string{
		{"2wan", "3wan", "4wan"},
		{"5wan", "6wan", "7wan"},
		{"1tong", "2tong", "3tong"},
		{"9tiao", "9tiao", "9tiao"},
	}
	if !reflect.DeepEqual(resp.Detail.Melds, wantMelds) {
		t.Fatalf("melds got: %v want: %v", resp.Detail.Melds, wantMelds)
	}
}

func TestCheckHandWinInputOrderIrrelevant(t *testing.T) {
	shuffled := []string{
		"9tiao", "2wan", "1tong", "1wan", "7wan", "9tiao", "3wan",
		"2tong", "5wan", "9tiao", "4wan", "3tong", "6wan", "1wan",
	}

	resp := CheckHand(shuffled)
	if !resp.IsWin {
		t.Fatalf("got: no win want: win (%s)", resp.Message)
	}
	if got := resp.Detail.Pair[0]; got != "1wan" {
		t.Fatalf("pair got: %s want: 1wan", got)
	}
}

func TestCheckHandNoWin(t *testing.T) {
	table := [][]string{
		// all distinct, no possible pair
		{"1wan", "3wan", "5wan", "7wan", "9wan", "1tong", "3tong", "5tong", "7tong", "9tong", "1tiao", "3tiao", "5tiao", "7tiao"},
		// pairs exist but the rest never melds
		{"1wan", "1wan", "4wan", "4wan", "7wan", "7wan", "1tong", "1tong", "4tong", "4tong", "7tong", "7tong", "1tiao", "1tiao"},
		// one tile short of the last meld
		{"1wan", "1wan", "2wan", "3wan", "4wan", "5wan", "6wan", "7wan", "1tong", "2tong", "3tong", "9tiao", "9tiao", "8tiao"},
	}

	for i, tiles := range table {
		resp := CheckHand(tiles)
		if resp.IsWin {
			t.Fatalf("index: %d got: win want: no win", i)
		}
	}
}

func TestCheckHandUnknownTokens(t *testing.T) {
	// unknown tokens can pair and form triplets but never sequences
	win := []string{
		"dragon", "dragon",
		"bird", "bird", "bird",
		"2wan", "3wan", "4wan",
		"5tong", "6tong", "7tong",
		"9tiao", "9tiao", "9tiao",
	}
	if resp := CheckHand(win); !resp.IsWin {
		t.Fatalf("got: no win want: win (%s)", resp.Message)
	}

	noSequence := []string{
		"1wan", "1wan",
		"bird1", "bird2", "bird3",
		"2wan", "3wan", "4wan",
		"5tong", "6tong", "7tong",
		"9tiao", "9tiao", "9tiao",
	}
	if resp := CheckHand(noSequence); resp.IsWin {
		t.Fatal("unknown tokens must not form a sequence")
	}
}

func TestCheckHandBacktracking(t *testing.T) {
	// 1112345678999 + 5: the anchor triplet of 1s must be undone in some
	// branches before the sequence split works out
	tiles := []string{
		"1wan", "1wan", "1wan",
		"2wan", "3wan", "4wan",
		"5wan", "5wan", "6wan", "7wan",
		"8wan", "9wan", "9wan", "9wan",
	}
	if resp := CheckHand(tiles); !resp.IsWin {
		t.Fatalf("got: no win want: win (%s)", resp.Message)
	}
}
