package service

import (
	"time"

	"github.com/midgard-statistics/backend/internal/repo"
)

// HealthStatus is the liveness report: the catalog is the only dependency,
// so health is simply the shape of the current generation.
type HealthStatus struct {
	Status      string    `json:"status"`
	Items       int       `json:"items"`
	Monsters    int       `json:"monsters"`
	Generation  int64     `json:"generation"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Health struct {
	StoreRepo *repo.Store
}

func NewHealth(storeRepo *repo.Store) *Health {
	return &Health{StoreRepo: storeRepo}
}

func (s *Health) Status() *HealthStatus {
	items, monsters := s.StoreRepo.Counts()
	return &HealthStatus{
		Status:      "ok",
		Items:       items,
		Monsters:    monsters,
		Generation:  s.StoreRepo.Generation(),
		GeneratedAt: s.StoreRepo.GeneratedAt(),
	}
}
