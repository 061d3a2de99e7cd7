package gamedb

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/model"
)

var itemFiles = []string{
	"item_db_usable.yml",
	"item_db_equip.yml",
	"item_db_etc.yml",
}

const mobFileName = "mob_db.yml"

// Snapshot is the result of one full catalog load: normalized records keyed
// by id, plus the source-order id lists used for stable listing.
type Snapshot struct {
	Items        map[int]*model.Item
	ItemOrder    []int
	Monsters     map[int]*model.Monster
	MonsterOrder []int
}

// Loader reads the tabular game database files and the scripting-table blob
// and produces normalized catalog snapshots. Loading is best-effort per
// source file: an unreadable or malformed file contributes zero records and
// a log entry, never a process abort.
type Loader struct {
	conf *appconfig.Config
}

func NewLoader(conf *appconfig.Config) *Loader {
	return &Loader{conf: conf}
}

func (l *Loader) Load() *Snapshot {
	descriptions := l.loadDescriptions()

	snapshot := &Snapshot{
		Items:    make(map[int]*model.Item),
		Monsters: make(map[int]*model.Monster),
	}

	for _, name := range itemFiles {
		path := filepath.Join(l.conf.DataPath, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("item database file is unreadable; skipping")
			continue
		}
		blocks, err := decodeItemFile(raw)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("item database file is malformed; skipping")
			continue
		}
		for _, block := range blocks {
			item, err := normalizeItem(block, descriptions)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("skipping malformed item block")
				continue
			}
			if _, exists := snapshot.Items[item.ID]; !exists {
				snapshot.ItemOrder = append(snapshot.ItemOrder, item.ID)
			}
			snapshot.Items[item.ID] = item
		}
	}

	mobPath := filepath.Join(l.conf.DataPath, mobFileName)
	if raw, err := os.ReadFile(mobPath); err != nil {
		log.Warn().Err(err).Str("path", mobPath).Msg("monster database file is unreadable; skipping")
	} else if blocks, err := decodeMobFile(raw); err != nil {
		log.Error().Err(err).Str("path", mobPath).Msg("monster database file is malformed; skipping")
	} else {
		for _, block := range blocks {
			monster, err := normalizeMonster(block)
			if err != nil {
				log.Warn().Err(err).Str("path", mobPath).Msg("skipping malformed monster block")
				continue
			}
			if _, exists := snapshot.Monsters[monster.ID]; !exists {
				snapshot.MonsterOrder = append(snapshot.MonsterOrder, monster.ID)
			}
			snapshot.Monsters[monster.ID] = monster
		}
	}

	log.Info().
		Int("items", len(snapshot.Items)).
		Int("monsters", len(snapshot.Monsters)).
		Int("descriptions", len(descriptions)).
		Msg("loaded game database")

	return snapshot
}

func (l *Loader) loadDescriptions() map[int]string {
	raw, err := os.ReadFile(l.conf.ItemInfoPath)
	if err != nil {
		log.Warn().Err(err).Str("path", l.conf.ItemInfoPath).Msg("scripting-table blob is unreadable; descriptions will be synthesized")
		return map[int]string{}
	}
	return ParseDescriptions(string(raw))
}
