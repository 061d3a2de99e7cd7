package gamedb

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/midgard-statistics/backend/internal/model"
)

// mobFile is the top-level shape of the tabular monster database file.
type mobFile struct {
	Body []mobBlock `yaml:"Body"`
}

type dropBlock struct {
	Item string `yaml:"Item"`
	Rate *int   `yaml:"Rate"`
}

// mobBlock is one raw monster entry as it appears in the tabular source.
type mobBlock struct {
	ID           *int   `yaml:"Id"`
	AegisName    string `yaml:"AegisName"`
	Name         string `yaml:"Name"`
	Level        *int   `yaml:"Level"`
	Hp           *int   `yaml:"Hp"`
	Sp           *int   `yaml:"Sp"`
	BaseExp      int    `yaml:"BaseExp"`
	JobExp       int    `yaml:"JobExp"`
	MvpExp       int    `yaml:"MvpExp"`
	Attack       int    `yaml:"Attack"`
	Attack2      *int   `yaml:"Attack2"`
	Defense      int    `yaml:"Defense"`
	MagicDefense int    `yaml:"MagicDefense"`
	Str          *int   `yaml:"Str"`
	Agi          *int   `yaml:"Agi"`
	Vit          *int   `yaml:"Vit"`
	Int          *int   `yaml:"Int"`
	Dex          *int   `yaml:"Dex"`
	Luk          *int   `yaml:"Luk"`
	Element      string `yaml:"Element"`
	ElementLevel *int   `yaml:"ElementLevel"`
	Race         string `yaml:"Race"`
	Size         string `yaml:"Size"`

	Drops    []dropBlock `yaml:"Drops"`
	MvpDrops []dropBlock `yaml:"MvpDrops"`
}

func decodeMobFile(raw []byte) ([]mobBlock, error) {
	var file mobFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode monster database file")
	}
	return file.Body, nil
}

// normalizeMonster applies the catalog defaulting rules to a raw block.
// Blocks without a numeric id are rejected.
func normalizeMonster(block mobBlock) (*model.Monster, error) {
	if block.ID == nil {
		return nil, errors.New("monster block is missing Id")
	}

	element := block.Element
	if element == "" {
		element = "Neutral"
	}
	race := block.Race
	if race == "" {
		race = "Formless"
	}
	size := block.Size
	if size == "" {
		size = "Small"
	}

	drops := normalizeDrops(block.Drops)
	mvpDrops := normalizeDrops(block.MvpDrops)

	monster := &model.Monster{
		ID:           *block.ID,
		Name:         block.Name,
		Level:        intOr(block.Level, 1),
		Element:      element,
		ElementLevel: intOr(block.ElementLevel, 1),
		Race:         race,
		Size:         size,
		Stats: model.MonsterStats{
			Hp:           intOr(block.Hp, 1),
			Sp:           block.Sp,
			BaseExp:      block.BaseExp,
			JobExp:       block.JobExp,
			Atk:          block.Attack,
			Atk2:         block.Attack2,
			Defense:      block.Defense,
			MagicDefense: block.MagicDefense,
			Str:          intOr(block.Str, 1),
			Agi:          intOr(block.Agi, 1),
			Vit:          intOr(block.Vit, 1),
			Int:          intOr(block.Int, 1),
			Dex:          intOr(block.Dex, 1),
			Luk:          intOr(block.Luk, 1),
		},
		Drops:    drops,
		Mvp:      len(mvpDrops) > 0 || block.MvpExp > 0,
		MvpDrops: mvpDrops,
		Sprite:   strings.ToLower(block.AegisName),
	}
	return monster, nil
}

// normalizeDrops converts per-myriad drop rates into fractional percentages.
// Entries without an item name are dropped.
func normalizeDrops(blocks []dropBlock) []model.Drop {
	var drops []model.Drop
	for _, b := range blocks {
		if b.Item == "" {
			continue
		}
		drops = append(drops, model.Drop{
			ItemName: b.Item,
			Rate:     float64(intOr(b.Rate, 1)) / 100.0,
		})
	}
	return drops
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
