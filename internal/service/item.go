package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/midgard-statistics/backend/internal/model"
	"github.com/midgard-statistics/backend/internal/model/cache"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/repo"
)

const (
	// DefaultPageSize and MaxPageSize bound the limit query parameter of the
	// listing endpoints.
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

type Item struct {
	StoreRepo         *repo.Store
	PopularityService *Popularity
}

func NewItem(storeRepo *repo.Store, popularityService *Popularity) *Item {
	return &Item{
		StoreRepo:         storeRepo,
		PopularityService: popularityService,
	}
}

// List returns one page of the item catalog in source order.
func (s *Item) List(skip, limit int) ([]*model.Item, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return page(s.StoreRepo.Items(), skip, limit), nil
}

// GetByID returns one item and records the view. Lookups that miss do not
// count as views.
func (s *Item) GetByID(id int) (*model.Item, error) {
	item, ok := s.StoreRepo.ItemByID(id)
	if !ok {
		return nil, roerr.ErrNotFound
	}
	s.PopularityService.TrackView(item.ID)
	return item, nil
}

// Search resolves a query universally: an all-digit query is first tried as
// an exact id, then both forms fall back to a case-insensitive name search.
func (s *Item) Search(query string, limit int) ([]*model.Item, error) {
	if query == "" || limit < 1 || limit > MaxPageSize {
		return nil, roerr.ErrInvalidRequest
	}
	if id, err := strconv.Atoi(query); err == nil {
		if item, ok := s.StoreRepo.ItemByID(id); ok {
			return []*model.Item{item}, nil
		}
	}
	matched := s.StoreRepo.SearchItemsByName(query, false)
	if len(matched) == 0 {
		return nil, roerr.ErrNotFound
	}
	return page(matched, 0, limit), nil
}

// SearchByName matches by name only, optionally requiring full-name
// equality.
func (s *Item) SearchByName(name string, exact bool, limit int) ([]*model.Item, error) {
	if name == "" || limit < 1 || limit > MaxPageSize {
		return nil, roerr.ErrInvalidRequest
	}
	matched := s.StoreRepo.SearchItemsByName(name, exact)
	if len(matched) == 0 {
		return nil, roerr.ErrNotFound
	}
	return page(matched, 0, limit), nil
}

// GetByType returns the items of one type, from the generation-keyed derived
// view cache.
func (s *Item) GetByType(typ string) ([]*model.Item, error) {
	if typ == "" {
		return nil, roerr.ErrInvalidRequest
	}

	key := fmt.Sprintf("%d|%s", s.StoreRepo.Generation(), typ)
	var items []*model.Item
	err := cache.ItemsByType.MutexGetSet(key, &items, func() ([]*model.Item, error) {
		_ = cache.LastModifiedTime.Set("[itemsByType#"+typ+"]", time.Now(), 0)
		return s.StoreRepo.ItemsByType(typ), nil
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, roerr.ErrNotFound
	}
	return items, nil
}

func validatePage(skip, limit int) error {
	if skip < 0 || limit < 1 || limit > MaxPageSize {
		return roerr.ErrInvalidRequest
	}
	return nil
}

func page[T any](all []T, skip, limit int) []T {
	if skip >= len(all) {
		return []T{}
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end]
}
