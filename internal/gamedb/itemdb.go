package gamedb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/midgard-statistics/backend/internal/model"
)

// itemFile is the top-level shape of a tabular item database file.
type itemFile struct {
	Body []itemBlock `yaml:"Body"`
}

// itemBlock is one raw item entry as it appears in the tabular source.
// Pointer fields distinguish "absent" from zero so defaulting rules apply
// only to genuinely missing keys.
type itemBlock struct {
	ID            *int            `yaml:"Id"`
	AegisName     string          `yaml:"AegisName"`
	Name          string          `yaml:"Name"`
	Type          string          `yaml:"Type"`
	SubType       string          `yaml:"SubType"`
	Buy           int             `yaml:"Buy"`
	Sell          *int            `yaml:"Sell"`
	Weight        int             `yaml:"Weight"`
	Attack        *int            `yaml:"Attack"`
	MagicAttack   *int            `yaml:"MagicAttack"`
	Defense       *int            `yaml:"Defense"`
	Slots         int             `yaml:"Slots"`
	Jobs          map[string]bool `yaml:"Jobs"`
	Gender        string          `yaml:"Gender"`
	Locations     yaml.Node       `yaml:"Locations"`
	EquipLevelMin int             `yaml:"EquipLevelMin"`
	Script        string          `yaml:"Script"`
	EquipScript   string          `yaml:"EquipScript"`
	UnEquipScript string          `yaml:"UnEquipScript"`
}

func decodeItemFile(raw []byte) ([]itemBlock, error) {
	var file itemFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode item database file")
	}
	return file.Body, nil
}

// normalizeItem applies the catalog defaulting rules to a raw block. Blocks
// without a numeric id are rejected.
func normalizeItem(block itemBlock, descriptions map[int]string) (*model.Item, error) {
	if block.ID == nil {
		return nil, errors.New("item block is missing Id")
	}
	id := *block.ID

	typ := block.Type
	if typ == "" {
		typ = "Etc"
	}

	sell := block.Buy / 2
	if block.Sell != nil {
		sell = *block.Sell
	}

	description, ok := descriptions[id]
	if !ok {
		description = fmt.Sprintf("%s - %s", block.AegisName, typ)
	}

	item := &model.Item{
		ID:          id,
		Name:        block.Name,
		Description: description,
		Type:        typ,
		SubType:     block.SubType,
		BuyPrice:    block.Buy,
		SellPrice:   sell,
		Stats: model.ItemStats{
			Atk:     block.Attack,
			Matk:    block.MagicAttack,
			Defense: block.Defense,
			Weight:  block.Weight,
			Slots:   block.Slots,
		},
		RequiredLevel: block.EquipLevelMin,
		RequiredJobs:  reduceJobs(block.Jobs),
		Gender:        block.Gender,
		Location:      flattenLocations(block.Locations),
		Sprite:        strings.ToLower(block.AegisName),
		Script:        strings.TrimSpace(block.Script),
		EquipScript:   strings.TrimSpace(block.EquipScript),
		UnequipScript: strings.TrimSpace(block.UnEquipScript),
	}
	return item, nil
}

// reduceJobs turns a job-permission map into the list of allowed classes.
// A map denoting "all classes allowed" yields nil, meaning unrestricted.
func reduceJobs(jobs map[string]bool) []string {
	if len(jobs) == 0 {
		return nil
	}
	if len(jobs) == 1 && jobs["All"] {
		return nil
	}
	allowed := lo.Keys(lo.PickBy(jobs, func(_ string, ok bool) bool { return ok }))
	if len(allowed) == 0 {
		return nil
	}
	sort.Strings(allowed)
	return allowed
}

// flattenLocations accepts either a plain scalar or an equip-slot map and
// renders the enabled slots as a comma-separated list in source order.
func flattenLocations(node yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.MappingNode:
		var slots []string
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			var enabled bool
			if err := value.Decode(&enabled); err == nil && enabled {
				slots = append(slots, key.Value)
			}
		}
		return strings.Join(slots, ", ")
	}
	return ""
}
