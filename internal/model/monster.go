package model

// MonsterStats is the full stat block of a monster.
type MonsterStats struct {
	Hp           int  `json:"hp"`
	Sp           *int `json:"sp,omitempty"`
	BaseExp      int  `json:"base_exp"`
	JobExp       int  `json:"job_exp"`
	Atk          int  `json:"atk"`
	Atk2         *int `json:"atk2,omitempty"`
	Defense      int  `json:"defense"`
	MagicDefense int  `json:"mdef"`
	Str          int  `json:"str"`
	Agi          int  `json:"agi"`
	Vit          int  `json:"vit"`
	Int          int  `json:"int"`
	Dex          int  `json:"dex"`
	Luk          int  `json:"luk"`
}

// Drop is a single entry of a monster drop table. The tabular source only
// carries the item name, so ItemID stays 0; the name is the join key. Rate is
// a percentage: the source encodes rates per myriad.
type Drop struct {
	ItemID   int     `json:"item_id"`
	ItemName string  `json:"item_name"`
	Rate     float64 `json:"rate"`
}

// Monster is a catalog monster record, immutable once constructed.
type Monster struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Level        int          `json:"level"`
	Element      string       `json:"element"`
	ElementLevel int          `json:"element_level"`
	Race         string       `json:"race"`
	Size         string       `json:"size"`
	Stats        MonsterStats `json:"stats"`
	Drops        []Drop       `json:"drops,omitempty"`

	// Mvp is derived at parse time: true iff the source block has a non-empty
	// MvpDrops list or a positive MvpExp value.
	Mvp      bool   `json:"mvp"`
	MvpDrops []Drop `json:"mvp_drops,omitempty"`

	Sprite string `json:"sprite"`
}
