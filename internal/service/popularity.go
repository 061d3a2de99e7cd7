package service

import (
	"sort"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/model"
	"github.com/midgard-statistics/backend/internal/model/cache"
	"github.com/midgard-statistics/backend/internal/pkg/dayspan"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/repo"
)

// Popularity tracks per-item view counts and serves the windowed rankings.
// Rankings are always computed from the full event history, never cached, so
// a just-recorded view is visible in the very next ranking query.
type Popularity struct {
	Config          *appconfig.Config
	ViewHistoryRepo *repo.ViewHistory
	StoreRepo       *repo.Store
}

func NewPopularity(conf *appconfig.Config, viewHistoryRepo *repo.ViewHistory, storeRepo *repo.Store) *Popularity {
	return &Popularity{
		Config:          conf,
		ViewHistoryRepo: viewHistoryRepo,
		StoreRepo:       storeRepo,
	}
}

// TrackView records one view of an item. A persistence failure is logged and
// swallowed: the event is retained in memory and the read path must not fail
// because the history file could not be rewritten.
func (s *Popularity) TrackView(id int) {
	if err := s.ViewHistoryRepo.Append(id, time.Now()); err != nil {
		log.Error().Err(err).Int("itemId", id).Msg("failed to persist view event")
	}
}

// GetPopular returns the top items of one window, most viewed first. Ties
// keep first-view order, which is stable across restarts. Entries are
// enriched with catalog fields when the item is present in the current
// generation.
func (s *Popularity) GetPopular(period string, limit int) ([]*model.PopularEntry, error) {
	start, end, ok := dayspan.Bounds(period, time.Now())
	if !ok {
		return nil, roerr.ErrInvalidRequest.WithMessage("invalid period: %s", period)
	}
	if limit < 1 || limit > MaxPageSize {
		return nil, roerr.ErrInvalidRequest
	}

	events, order := s.ViewHistoryRepo.Snapshot()
	itemsByID := s.itemsByID()

	entries := make([]*model.PopularEntry, 0, len(order))
	for _, id := range order {
		count := 0
		for _, ts := range events[id] {
			if dayspan.Contains(ts, start, end) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		entry := &model.PopularEntry{ItemID: id, ViewCount: count}
		if item, ok := itemsByID[id]; ok {
			entry.Name = item.Name
			entry.Type = item.Type
			entry.Sprite = item.Sprite
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ViewCount > entries[j].ViewCount
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetStats returns the view counts of one item over every window. The item
// must exist in the current catalog generation.
func (s *Popularity) GetStats(id int) (*model.ViewStats, error) {
	if _, ok := s.StoreRepo.ItemByID(id); !ok {
		return nil, roerr.ErrNotFound
	}

	events, _ := s.ViewHistoryRepo.Snapshot()
	stamps := events[id]

	now := time.Now()
	stats := &model.ViewStats{ItemID: id, AllTime: len(stamps)}
	for period, dest := range map[string]*int{
		dayspan.Today:      &stats.Today,
		dayspan.Yesterday:  &stats.Yesterday,
		dayspan.Last7Days:  &stats.Last7Days,
		dayspan.Last30Days: &stats.Last30Days,
	} {
		start, end, _ := dayspan.Bounds(period, now)
		for _, ts := range stamps {
			if dayspan.Contains(ts, start, end) {
				*dest++
			}
		}
	}
	return stats, nil
}

// itemsByID returns the id lookup table of the current catalog generation,
// rebuilt and re-cached whenever the generation has moved on.
func (s *Popularity) itemsByID() map[int]*model.Item {
	gen := s.StoreRepo.Generation()

	var idx model.ItemsIndex
	if err := cache.ItemsIndex.Get(&idx); err == nil && idx.Generation == gen {
		return idx.ByID
	}

	byID := make(map[int]*model.Item)
	linq.From(s.StoreRepo.Items()).
		ToMapByT(&byID,
			func(item *model.Item) int { return item.ID },
			func(item *model.Item) *model.Item { return item })

	_ = cache.ItemsIndex.Set(model.ItemsIndex{Generation: gen, ByID: byID}, time.Minute*10)
	return byID
}

// Cleanup drops view events older than the retention horizon and reports the
// number removed.
func (s *Popularity) Cleanup() (int, error) {
	horizon := time.Now().AddDate(0, 0, -s.Config.PopularityRetentionDays)
	return s.ViewHistoryRepo.Cleanup(horizon)
}
