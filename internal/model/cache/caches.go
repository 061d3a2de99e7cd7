package cache

import (
	"sync"
	"time"

	"github.com/midgard-statistics/backend/internal/model"
	"github.com/midgard-statistics/backend/internal/pkg/cache"
)

type Flusher func() error

var (
	// Derived catalog views. Keys carry the catalog generation number, so a
	// reload implicitly invalidates every cached view without an explicit
	// flush; superseded generations age out by expiry.
	MvpMonsters       *cache.Set[[]*model.Monster]
	ItemsByType       *cache.Set[[]*model.Item]
	MonstersByElement *cache.Set[[]*model.Monster]

	// ItemsIndex is the id lookup table of the current catalog generation,
	// used by popularity enrichment.
	ItemsIndex *cache.Singular[model.ItemsIndex]

	LastModifiedTime *cache.Set[time.Time]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize() {
	once.Do(initializeCaches)
}

func initializeCaches() {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// monster
	MvpMonsters = cache.NewSet[[]*model.Monster]("mvpMonsters#generation")
	MonstersByElement = cache.NewSet[[]*model.Monster]("monstersByElement#generation|element")

	SetMap["mvpMonsters#generation"] = MvpMonsters.Flush
	SetMap["monstersByElement#generation|element"] = MonstersByElement.Flush

	// item
	ItemsByType = cache.NewSet[[]*model.Item]("itemsByType#generation|type")

	SetMap["itemsByType#generation|type"] = ItemsByType.Flush

	ItemsIndex = cache.NewSingular[model.ItemsIndex]("itemsIndex")

	SingularFlusherMap["itemsIndex"] = ItemsIndex.Delete

	// others
	LastModifiedTime = cache.NewSet[time.Time]("lastModifiedTime#key")

	SetMap["lastModifiedTime#key"] = LastModifiedTime.Flush
}
