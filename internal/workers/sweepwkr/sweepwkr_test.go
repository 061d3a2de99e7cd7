package sweepwkr

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/gamedb"
	"github.com/midgard-statistics/backend/internal/repo"
	"github.com/midgard-statistics/backend/internal/service"
)

func TestStartSweepsAtStartup(t *testing.T) {
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		DataPath:                 t.TempDir(),
		ItemInfoPath:             filepath.Join(t.TempDir(), "itemInfo.lua"),
		AssetsPath:               t.TempDir(),
		AssetOriginItemURL:       "https://origin.example.com/item/%d.png",
		AssetOriginCollectionURL: "https://origin.example.com/collection/%d.png",
		PopularityPath:           filepath.Join(t.TempDir(), "popularity_data.json"),
		PopularityRetentionDays:  90,
		PopularitySweepInterval:  time.Hour,
	}}

	assets, err := repo.NewAsset(conf)
	require.NoError(t, err)
	store := repo.NewStore(conf, gamedb.NewLoader(conf), assets)

	history, err := repo.NewViewHistory(conf)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, history.Append(501, now.AddDate(0, 0, -120)))
	require.NoError(t, history.Append(501, now))

	Start(conf, service.NewPopularity(conf, history, store))

	events, order := history.Snapshot()
	assert.Equal(t, []int{501}, order)
	assert.Len(t, events[501], 1)
}
