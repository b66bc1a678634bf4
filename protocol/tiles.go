package protocol

// TileInfo is the display metadata of a single tile.
type TileInfo struct {
	ID       string `json:"id"`
	Suit     string `json:"suit"`
	Rank     int    `json:"rank"`
	NameCN   string `json:"name_cn"`
	NameEN   string `json:"name_en"`
	ImageURL string `json:"image_url"`
}
