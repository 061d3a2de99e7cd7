package model

// ItemStats is the optional combat stat block of an equippable item.
type ItemStats struct {
	Atk     *int `json:"atk,omitempty"`
	Matk    *int `json:"matk,omitempty"`
	Defense *int `json:"defense,omitempty"`
	Weight  int  `json:"weight"`
	Slots   int  `json:"slots"`
}

// Item is a catalog item record. Records are immutable once constructed; the
// numeric Id is the sole identity.
type Item struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	SubType       string    `json:"subtype,omitempty"`
	BuyPrice      int       `json:"buy_price"`
	SellPrice     int       `json:"sell_price"`
	Stats         ItemStats `json:"stats"`
	RequiredLevel int       `json:"required_level"`

	// RequiredJobs lists the job classes allowed to use the item. nil means
	// unrestricted.
	RequiredJobs []string `json:"required_job,omitempty"`

	Gender   string `json:"gender,omitempty"`
	Location string `json:"location,omitempty"`
	Sprite   string `json:"sprite"`

	Script        string `json:"script,omitempty"`
	EquipScript   string `json:"equip_script,omitempty"`
	UnequipScript string `json:"unequip_script,omitempty"`

	ImageURL           string `json:"image_url"`
	CollectionImageURL string `json:"collection_image_url"`
}

// ItemsIndex is a generation-stamped id lookup table over the item catalog.
// Consumers compare Generation against the live catalog to detect staleness.
type ItemsIndex struct {
	Generation int64
	ByID       map[int]*Item
}
