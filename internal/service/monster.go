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

type Monster struct {
	StoreRepo *repo.Store
}

func NewMonster(storeRepo *repo.Store) *Monster {
	return &Monster{StoreRepo: storeRepo}
}

// List returns one page of the monster catalog in source order.
func (s *Monster) List(skip, limit int) ([]*model.Monster, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return page(s.StoreRepo.Monsters(), skip, limit), nil
}

func (s *Monster) GetByID(id int) (*model.Monster, error) {
	monster, ok := s.StoreRepo.MonsterByID(id)
	if !ok {
		return nil, roerr.ErrNotFound
	}
	return monster, nil
}

// Search resolves a query universally: an all-digit query is first tried as
// an exact id, then both forms fall back to a case-insensitive name search.
func (s *Monster) Search(query string, limit int) ([]*model.Monster, error) {
	if query == "" || limit < 1 || limit > MaxPageSize {
		return nil, roerr.ErrInvalidRequest
	}
	if id, err := strconv.Atoi(query); err == nil {
		if monster, ok := s.StoreRepo.MonsterByID(id); ok {
			return []*model.Monster{monster}, nil
		}
	}
	matched := s.StoreRepo.SearchMonstersByName(query, false)
	if len(matched) == 0 {
		return nil, roerr.ErrNotFound
	}
	return page(matched, 0, limit), nil
}

// SearchByName matches by name only, optionally requiring full-name
// equality.
func (s *Monster) SearchByName(name string, exact bool, limit int) ([]*model.Monster, error) {
	if name == "" || limit < 1 || limit > MaxPageSize {
		return nil, roerr.ErrInvalidRequest
	}
	matched := s.StoreRepo.SearchMonstersByName(name, exact)
	if len(matched) == 0 {
		return nil, roerr.ErrNotFound
	}
	return page(matched, 0, limit), nil
}

// GetByElement returns the monsters of one element, from the generation-keyed
// derived view cache.
func (s *Monster) GetByElement(element string) ([]*model.Monster, error) {
	if element == "" {
		return nil, roerr.ErrInvalidRequest
	}

	key := fmt.Sprintf("%d|%s", s.StoreRepo.Generation(), element)
	var monsters []*model.Monster
	err := cache.MonstersByElement.MutexGetSet(key, &monsters, func() ([]*model.Monster, error) {
		return s.StoreRepo.MonstersByElement(element), nil
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, roerr.ErrNotFound
	}
	return monsters, nil
}

// GetMvps returns the boss-class monsters, from the generation-keyed derived
// view cache.
func (s *Monster) GetMvps() ([]*model.Monster, error) {
	key := strconv.FormatInt(s.StoreRepo.Generation(), 10)
	var monsters []*model.Monster
	err := cache.MvpMonsters.MutexGetSet(key, &monsters, func() ([]*model.Monster, error) {
		_ = cache.LastModifiedTime.Set("[mvpMonsters]", time.Now(), 0)
		return s.StoreRepo.MvpMonsters(), nil
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	return monsters, nil
}
