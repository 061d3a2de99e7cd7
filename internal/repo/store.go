package repo

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/gamedb"
	"github.com/midgard-statistics/backend/internal/model"
)

// generation is one immutable catalog snapshot. Readers obtain a generation
// pointer once and see a consistent view for the whole query; reloads swap
// the pointer atomically and never mutate a published generation.
type generation struct {
	items        map[int]*model.Item
	itemOrder    []int
	monsters     map[int]*model.Monster
	monsterOrder []int

	seq         int64
	generatedAt time.Time
}

// Store is the in-memory catalog. It is fully populated before the
// constructor returns, so the HTTP listener never serves an empty catalog.
type Store struct {
	conf   *appconfig.Config
	loader *gamedb.Loader
	assets *Asset

	gen atomic.Pointer[generation]
	seq atomic.Int64
}

func NewStore(conf *appconfig.Config, loader *gamedb.Loader, assets *Asset) *Store {
	s := &Store{conf: conf, loader: loader, assets: assets}
	s.Reload()
	return s
}

// Reload rebuilds the catalog from the source files and publishes the new
// generation atomically. In-flight readers keep the generation they started
// with; a failed or partial source load still publishes whatever was read.
func (s *Store) Reload() {
	snapshot := s.loader.Load()

	for id, item := range snapshot.Items {
		item.ImageURL = s.assets.ResolveURL(AssetKindItem, id)
		item.CollectionImageURL = s.assets.ResolveURL(AssetKindCollection, id)
	}

	next := &generation{
		items:        snapshot.Items,
		itemOrder:    snapshot.ItemOrder,
		monsters:     snapshot.Monsters,
		monsterOrder: snapshot.MonsterOrder,
		seq:          s.seq.Add(1),
		generatedAt:  time.Now(),
	}
	s.gen.Store(next)

	log.Info().
		Int64("generation", next.seq).
		Int("items", len(next.items)).
		Int("monsters", len(next.monsters)).
		Msg("published catalog generation")
}

// Generation returns the sequence number of the current catalog snapshot.
// It increases by one on every reload and keys the derived-view caches.
func (s *Store) Generation() int64 {
	return s.gen.Load().seq
}

// GeneratedAt returns the publish time of the current catalog snapshot.
func (s *Store) GeneratedAt() time.Time {
	return s.gen.Load().generatedAt
}

// Counts returns the item and monster record counts of the current snapshot.
func (s *Store) Counts() (items, monsters int) {
	g := s.gen.Load()
	return len(g.items), len(g.monsters)
}

func (s *Store) ItemByID(id int) (*model.Item, bool) {
	item, ok := s.gen.Load().items[id]
	return item, ok
}

func (s *Store) MonsterByID(id int) (*model.Monster, bool) {
	monster, ok := s.gen.Load().monsters[id]
	return monster, ok
}

// Items returns all items in source order.
func (s *Store) Items() []*model.Item {
	g := s.gen.Load()
	items := make([]*model.Item, 0, len(g.itemOrder))
	for _, id := range g.itemOrder {
		items = append(items, g.items[id])
	}
	return items
}

// Monsters returns all monsters in source order.
func (s *Store) Monsters() []*model.Monster {
	g := s.gen.Load()
	monsters := make([]*model.Monster, 0, len(g.monsterOrder))
	for _, id := range g.monsterOrder {
		monsters = append(monsters, g.monsters[id])
	}
	return monsters
}

// SearchItemsByName returns items matching the query case-insensitively, in
// source order. exact requires full-name equality instead of substring.
func (s *Store) SearchItemsByName(query string, exact bool) []*model.Item {
	query = strings.ToLower(query)
	g := s.gen.Load()
	var matched []*model.Item
	for _, id := range g.itemOrder {
		item := g.items[id]
		if nameMatches(item.Name, query, exact) {
			matched = append(matched, item)
		}
	}
	return matched
}

// SearchMonstersByName returns monsters matching the query
// case-insensitively, in source order. exact requires full-name equality
// instead of substring.
func (s *Store) SearchMonstersByName(query string, exact bool) []*model.Monster {
	query = strings.ToLower(query)
	g := s.gen.Load()
	var matched []*model.Monster
	for _, id := range g.monsterOrder {
		monster := g.monsters[id]
		if nameMatches(monster.Name, query, exact) {
			matched = append(matched, monster)
		}
	}
	return matched
}

func nameMatches(name, loweredQuery string, exact bool) bool {
	name = strings.ToLower(name)
	if exact {
		return name == loweredQuery
	}
	return strings.Contains(name, loweredQuery)
}

// ItemsByType returns items of the given type, matched case-insensitively,
// in source order.
func (s *Store) ItemsByType(typ string) []*model.Item {
	typ = strings.ToLower(typ)
	g := s.gen.Load()
	var matched []*model.Item
	for _, id := range g.itemOrder {
		item := g.items[id]
		if strings.ToLower(item.Type) == typ {
			matched = append(matched, item)
		}
	}
	return matched
}

// MonstersByElement returns monsters of the given element, matched
// case-insensitively, in source order.
func (s *Store) MonstersByElement(element string) []*model.Monster {
	element = strings.ToLower(element)
	g := s.gen.Load()
	var matched []*model.Monster
	for _, id := range g.monsterOrder {
		monster := g.monsters[id]
		if strings.ToLower(monster.Element) == element {
			matched = append(matched, monster)
		}
	}
	return matched
}

// MvpMonsters returns all boss-class monsters in source order.
func (s *Store) MvpMonsters() []*model.Monster {
	g := s.gen.Load()
	var matched []*model.Monster
	for _, id := range g.monsterOrder {
		if monster := g.monsters[id]; monster.Mvp {
			matched = append(matched, monster)
		}
	}
	return matched
}

// ItemIDs returns every item id in source order; the startup asset fill
// walks this list.
func (s *Store) ItemIDs() []int {
	g := s.gen.Load()
	ids := make([]int, len(g.itemOrder))
	copy(ids, g.itemOrder)
	return ids
}
