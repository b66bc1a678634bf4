package mahjong

import (
	"fmt"
	"sort"

	"github.com/readysethu/huserver/protocol"
)

// CheckHand reports whether the given tile tokens decompose into the
// standard winning shape of 4 melds (triplets or sequences) plus 1 pair.
//
// A shape error (hand size not 2 mod 3) is reported in the response message,
// never as an error. Tokens that are not one of the 27 known tiles can still
// pair up or form triplets, but never a sequence.
func CheckHand(tokens []string) *protocol.CheckHandResponse {
	if len(tokens)%3 != 2 {
		return &protocol.CheckHandResponse{
			IsWin:   false,
			Message: "Invalid tile count. A winning hand usually has 14 tiles (e.g., 13 + 1 drawn).",
		}
	}

	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}

	// Pair candidates in canonical order so that the returned decomposition
	// is stable regardless of input order.
	var candidates []string
	for t, c := range counts {
		if c >= 2 {
			candidates = append(candidates, t)
		}
	}
	sortTokens(candidates)

	for _, pair := range candidates {
		counts[pair] -= 2
		melds, ok := solveMelds(counts, len(tokens)-2)
		counts[pair] += 2
		if ok {
			return &protocol.CheckHandResponse{
				IsWin:   true,
				Message: fmt.Sprintf("Winning hand! Found pair %s and %d melds.", pair, len(melds)),
				Detail: &protocol.HandDetail{
					Pair:  []string{pair, pair},
					Melds: melds,
				},
			}
		}
	}

	return &protocol.CheckHandResponse{
		IsWin:   false,
		Message: "Not a winning hand yet.",
	}
}

// solveMelds backtracks over the remaining multiset. The smallest remaining
// tile must open some meld for a decomposition to exist, so only the two
// shapes anchored at it are tried: triplet first, then sequence.
func solveMelds(counts map[string]int, remaining int) ([][]string, bool) {
	if remaining == 0 {
		return nil, true
	}

	anchor, ok := smallest(counts)
	if !ok {
		return nil, false
	}

	if counts[anchor] >= 3 {
		counts[anchor] -= 3
		rest, ok := solveMelds(counts, remaining-3)
		counts[anchor] += 3
		if ok {
			return append([][]string{{anchor, anchor, anchor}}, rest...), true
		}
	}

	// Sequences exist only for known tiles whose rank keeps rank+2 in range.
	if t, ok := ParseTile(anchor); ok && t.Rank+2 <= MaxRank {
		second := Tile{Suit: t.Suit, Rank: t.Rank + 1}.String()
		third := Tile{Suit: t.Suit, Rank: t.Rank + 2}.String()
		if counts[second] > 0 && counts[third] > 0 {
			counts[anchor]--
			counts[second]--
			counts[third]--
			rest, ok := solveMelds(counts, remaining-3)
			counts[anchor]++
			counts[second]++
			counts[third]++
			if ok {
				return append([][]string{{anchor, second, third}}, rest...), true
			}
		}
	}

	return nil, false
}

func smallest(counts map[string]int) (string, bool) {
	var (
		best  string
		found bool
	)
	for t, c := range counts {
		if c == 0 {
			continue
		}
		if !found || tokenLess(t, best) {
			best = t
			found = true
		}
	}
	return best, found
}

func sortTokens(tokens []string) {
	sort.Slice(tokens, func(i, j int) bool {
		return tokenLess(tokens[i], tokens[j])
	})
}

// tokenLess orders by suit (wan < tong < tiao) then rank; malformed tokens
// sort last, alphabetically.
func tokenLess(a, b string) bool {
	ta, oka := ParseTile(a)
	tb, okb := ParseTile(b)
	switch {
	case oka && !okb:
		return true
	case !oka && okb:
		return false
	case !oka && !okb:
		return a < b
	}
	if ta.Suit != tb.Suit {
		return ta.Suit < tb.Suit
	}
	return ta.Rank < tb.Rank
}
