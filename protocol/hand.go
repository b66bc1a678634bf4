package protocol

type CheckHandRequest struct {
	Tiles []string `json:"tiles"` // tile ids, e.g. ["1wan", "2wan", "3tiao", ...]
}

type HandDetail struct {
	Pair  []string   `json:"pair"`
	Melds [][]string `json:"melds"`
}

type CheckHandResponse struct {
	IsWin   bool        `json:"is_win"`
	Message string      `json:"message"`
	Detail  *HandDetail `json:"detail,omitempty"`
}
