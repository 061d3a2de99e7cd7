package model

// PopularEntry is one row of a windowed popularity ranking, enriched with the
// catalog record fields the original clients render in lists.
type PopularEntry struct {
	ItemID    int    `json:"item_id"`
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	ViewCount int    `json:"view_count"`
	Sprite    string `json:"sprite,omitempty"`
}

// ViewStats carries the view counts of one entity over every fixed window.
type ViewStats struct {
	ItemID     int `json:"item_id"`
	Today      int `json:"today"`
	Yesterday  int `json:"yesterday"`
	Last7Days  int `json:"last7days"`
	Last30Days int `json:"last30days"`
	AllTime    int `json:"all_time"`
}
