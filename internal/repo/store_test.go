package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/gamedb"
)

const usableFixture = `
Body:
  - Id: 501
    AegisName: Red_Potion
    Name: Red Potion
    Type: Healing
    Buy: 50
`

const etcFixture = `
Body:
  - Id: 909
    AegisName: Jellopy
    Name: Jellopy
    Buy: 6
  - Id: 910
    AegisName: Garlet
    Name: Garlet
    Buy: 45
`

const mobFixtureStore = `
Body:
  - Id: 1002
    AegisName: PORING
    Name: Poring
    Level: 1
    Hp: 55
    Element: Water
  - Id: 1511
    AegisName: AMON_RA
    Name: Amon Ra
    Level: 88
    MvpExp: 143300
    Element: Earth
`

const itemInfoFixture = `
	[501] = {
		identifiedDescriptionName = { "A potion made of grapes." }
	}
`

func newTestStore(t *testing.T) (*Store, *appconfig.Config) {
	t.Helper()

	dataPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "item_db_usable.yml"), []byte(usableFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "item_db_etc.yml"), []byte(etcFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "mob_db.yml"), []byte(mobFixtureStore), 0o644))

	itemInfoPath := filepath.Join(dataPath, "itemInfo.lua")
	require.NoError(t, os.WriteFile(itemInfoPath, []byte(itemInfoFixture), 0o644))

	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		DataPath:                 dataPath,
		ItemInfoPath:             itemInfoPath,
		AssetsPath:               t.TempDir(),
		AssetOriginItemURL:       "https://origin.example.com/item/%d.png",
		AssetOriginCollectionURL: "https://origin.example.com/collection/%d.png",
	}}

	assets, err := NewAsset(conf)
	require.NoError(t, err)

	return NewStore(conf, gamedb.NewLoader(conf), assets), conf
}

func TestStoreLoadsBeforeReturning(t *testing.T) {
	store, _ := newTestStore(t)

	items, monsters := store.Counts()
	assert.Equal(t, 3, items)
	assert.Equal(t, 2, monsters)
	assert.EqualValues(t, 1, store.Generation())
	assert.False(t, store.GeneratedAt().IsZero())
}

func TestStoreLookupsAndOrder(t *testing.T) {
	store, _ := newTestStore(t)

	potion, ok := store.ItemByID(501)
	require.True(t, ok)
	assert.Equal(t, "Red Potion", potion.Name)
	assert.Equal(t, "A potion made of grapes.", potion.Description)
	// not cached locally yet, so URLs point at the remote origin
	assert.Equal(t, "https://origin.example.com/item/501.png", potion.ImageURL)

	_, ok = store.ItemByID(99999)
	assert.False(t, ok)

	items := store.Items()
	require.Len(t, items, 3)
	// listing follows source file order
	assert.Equal(t, []int{501, 909, 910}, []int{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, []int{501, 909, 910}, store.ItemIDs())
}

func TestStoreSearchIsCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)

	assert.Len(t, store.SearchItemsByName("POTION", false), 1)
	assert.Len(t, store.SearchItemsByName("e", false), 3)
	assert.Empty(t, store.SearchItemsByName("zzz", false))

	// exact requires the whole name, still case-insensitively
	assert.Empty(t, store.SearchItemsByName("potion", true))
	assert.Len(t, store.SearchItemsByName("red potion", true), 1)

	monsters := store.SearchMonstersByName("poring", false)
	require.Len(t, monsters, 1)
	assert.Equal(t, 1002, monsters[0].ID)
	assert.Len(t, store.SearchMonstersByName("Amon Ra", true), 1)
}

func TestStoreFilters(t *testing.T) {
	store, _ := newTestStore(t)

	healing := store.ItemsByType("healing")
	require.Len(t, healing, 1)
	assert.Equal(t, 501, healing[0].ID)

	water := store.MonstersByElement("Water")
	require.Len(t, water, 1)
	assert.Equal(t, 1002, water[0].ID)

	mvps := store.MvpMonsters()
	require.Len(t, mvps, 1)
	assert.Equal(t, 1511, mvps[0].ID)
}

func TestStoreReloadSwapsGeneration(t *testing.T) {
	store, conf := newTestStore(t)

	before := store.Items()
	require.Len(t, before, 3)

	// shrink the catalog on disk, then reload
	require.NoError(t, os.WriteFile(filepath.Join(conf.DataPath, "item_db_etc.yml"), []byte("Body: []"), 0o644))
	store.Reload()

	assert.EqualValues(t, 2, store.Generation())
	items, _ := store.Counts()
	assert.Equal(t, 1, items)

	// the slice captured before the reload still sees the old generation
	assert.Len(t, before, 3)
	assert.Equal(t, "Jellopy", before[1].Name)
}
