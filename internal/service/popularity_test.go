package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/gamedb"
	"github.com/midgard-statistics/backend/internal/model/cache"
	"github.com/midgard-statistics/backend/internal/pkg/dayspan"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/repo"
)

const catalogFixture = `
Body:
  - Id: 501
    AegisName: Red_Potion
    Name: Red Potion
    Type: Healing
    Buy: 50
  - Id: 607
    AegisName: Yggdrasilberry
    Name: Yggdrasil Berry
    Type: Healing
    Buy: 5000
  - Id: 909
    AegisName: Jellopy
    Name: Jellopy
    Buy: 6
`

func newTestPopularity(t *testing.T) *Popularity {
	t.Helper()
	cache.Initialize()
	// each test builds its own store; drop the index of the previous one
	_ = cache.ItemsIndex.Delete()

	dataPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "item_db_usable.yml"), []byte(catalogFixture), 0o644))

	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		DataPath:                 dataPath,
		ItemInfoPath:             filepath.Join(dataPath, "itemInfo.lua"),
		AssetsPath:               t.TempDir(),
		AssetOriginItemURL:       "https://origin.example.com/item/%d.png",
		AssetOriginCollectionURL: "https://origin.example.com/collection/%d.png",
		PopularityPath:           filepath.Join(t.TempDir(), "popularity_data.json"),
		PopularityRetentionDays:  90,
	}}

	assets, err := repo.NewAsset(conf)
	require.NoError(t, err)
	store := repo.NewStore(conf, gamedb.NewLoader(conf), assets)

	history, err := repo.NewViewHistory(conf)
	require.NoError(t, err)

	return NewPopularity(conf, history, store)
}

func TestGetPopularOrderingAndEnrichment(t *testing.T) {
	s := newTestPopularity(t)

	now := time.Now()
	require.NoError(t, s.ViewHistoryRepo.Append(607, now))
	require.NoError(t, s.ViewHistoryRepo.Append(501, now))
	require.NoError(t, s.ViewHistoryRepo.Append(501, now))
	require.NoError(t, s.ViewHistoryRepo.Append(501, now))
	require.NoError(t, s.ViewHistoryRepo.Append(909, now))

	entries, err := s.GetPopular(dayspan.AllTime, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 501, entries[0].ItemID)
	assert.Equal(t, 3, entries[0].ViewCount)
	assert.Equal(t, "Red Potion", entries[0].Name)
	assert.Equal(t, "Healing", entries[0].Type)
	assert.Equal(t, "red_potion", entries[0].Sprite)

	// ties keep first-view order
	assert.Equal(t, 607, entries[1].ItemID)
	assert.Equal(t, 909, entries[2].ItemID)

	limited, err := s.GetPopular(dayspan.AllTime, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 501, limited[0].ItemID)
}

func TestGetPopularWindows(t *testing.T) {
	s := newTestPopularity(t)

	now := time.Now()
	yesterday := dayspan.Midnight(now).Add(-time.Hour)
	lastWeek := now.AddDate(0, 0, -5)
	longAgo := now.AddDate(0, 0, -60)

	require.NoError(t, s.ViewHistoryRepo.Append(501, now))
	require.NoError(t, s.ViewHistoryRepo.Append(501, yesterday))
	require.NoError(t, s.ViewHistoryRepo.Append(607, lastWeek))
	require.NoError(t, s.ViewHistoryRepo.Append(909, longAgo))

	today, err := s.GetPopular(dayspan.Today, 10)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, 1, today[0].ViewCount)

	yd, err := s.GetPopular(dayspan.Yesterday, 10)
	require.NoError(t, err)
	require.Len(t, yd, 1)
	assert.Equal(t, 501, yd[0].ItemID)

	week, err := s.GetPopular(dayspan.Last7Days, 10)
	require.NoError(t, err)
	assert.Len(t, week, 2)

	month, err := s.GetPopular(dayspan.Last30Days, 10)
	require.NoError(t, err)
	assert.Len(t, month, 2)

	all, err := s.GetPopular(dayspan.AllTime, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetPopularInvalidPeriod(t *testing.T) {
	s := newTestPopularity(t)

	_, err := s.GetPopular("fortnight", 10)
	require.Error(t, err)
	e, ok := err.(*roerr.MidgardError)
	require.True(t, ok)
	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, roerr.CodeInvalidRequest, e.ErrorCode)

	_, err = s.GetPopular(dayspan.AllTime, 0)
	assert.Error(t, err)
}

func TestTrackViewIsImmediatelyVisible(t *testing.T) {
	s := newTestPopularity(t)

	s.TrackView(501)
	entries, err := s.GetPopular(dayspan.AllTime, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ViewCount)
}

func TestGetStats(t *testing.T) {
	s := newTestPopularity(t)

	now := time.Now()
	require.NoError(t, s.ViewHistoryRepo.Append(501, now))
	require.NoError(t, s.ViewHistoryRepo.Append(501, dayspan.Midnight(now).Add(-time.Hour)))
	require.NoError(t, s.ViewHistoryRepo.Append(501, now.AddDate(0, 0, -60)))

	stats, err := s.GetStats(501)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Today)
	assert.Equal(t, 1, stats.Yesterday)
	assert.GreaterOrEqual(t, stats.Last7Days, 2)
	assert.Equal(t, 3, stats.AllTime)

	// ids outside the catalog are a lookup failure
	_, err = s.GetStats(424242)
	assert.ErrorIs(t, err, roerr.ErrNotFound)
}

func TestCleanup(t *testing.T) {
	s := newTestPopularity(t)

	now := time.Now()
	require.NoError(t, s.ViewHistoryRepo.Append(501, now.AddDate(0, 0, -120)))
	require.NoError(t, s.ViewHistoryRepo.Append(501, now))

	removed, err := s.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stats, err := s.GetStats(501)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AllTime)
}
