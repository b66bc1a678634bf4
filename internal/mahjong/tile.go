package mahjong

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/readysethu/huserver/protocol"
)

// 花色: 万/筒/条, 每种1~9点, 共27种牌
type Suit int

const (
	SuitWan Suit = iota
	SuitTong
	SuitTiao
)

const (
	MinRank = 1
	MaxRank = 9
)

var (
	suitTokens  = [...]string{"wan", "tong", "tiao"}
	suitNamesCN = [...]string{"万", "筒", "条"}
	suitNamesEN = [...]string{"Characters", "Dots", "Bamboo"}
)

func (s Suit) String() string {
	return suitTokens[s]
}

type Tile struct {
	Suit Suit
	Rank int
}

func (t Tile) String() string {
	return fmt.Sprintf("%d%s", t.Rank, suitTokens[t.Suit])
}

// ParseTile parses a canonical tile token like "1wan" or "9tiao". The second
// return is false for anything outside the 27 known tiles.
func ParseTile(token string) (Tile, bool) {
	for s, suffix := range suitTokens {
		if !strings.HasSuffix(token, suffix) {
			continue
		}
		rank, err := strconv.Atoi(strings.TrimSuffix(token, suffix))
		if err != nil || rank < MinRank || rank > MaxRank {
			return Tile{}, false
		}
		return Tile{Suit: Suit(s), Rank: rank}, true
	}
	return Tile{}, false
}

// AllTiles enumerates display metadata for the full tile set, suit by suit.
func AllTiles() []protocol.TileInfo {
	tiles := make([]protocol.TileInfo, 0, 3*MaxRank)
	for s := SuitWan; s <= SuitTiao; s++ {
		for rank := MinRank; rank <= MaxRank; rank++ {
			id := Tile{Suit: s, Rank: rank}.String()
			tiles = append(tiles, protocol.TileInfo{
				ID:       id,
				Suit:     suitTokens[s],
				Rank:     rank,
				NameCN:   fmt.Sprintf("%d%s", rank, suitNamesCN[s]),
				NameEN:   fmt.Sprintf("%d %s", rank, suitNamesEN[s]),
				ImageURL: fmt.Sprintf("/tiles/%s.jpg", id),
			})
		}
	}
	return tiles
}
