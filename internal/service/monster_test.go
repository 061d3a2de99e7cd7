package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/gamedb"
	"github.com/midgard-statistics/backend/internal/model/cache"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/repo"
)

const bestiaryFixture = `
Body:
  - Id: 1002
    AegisName: PORING
    Name: Poring
    Level: 1
    Hp: 55
    Element: Water
  - Id: 1113
    AegisName: DROPS
    Name: Drops
    Level: 3
    Hp: 81
    Element: Fire
  - Id: 1511
    AegisName: AMON_RA
    Name: Amon Ra
    Level: 88
    MvpExp: 143300
    Element: Earth
`

func newTestMonster(t *testing.T) *Monster {
	t.Helper()
	cache.Initialize()
	_ = cache.MvpMonsters.Flush()
	_ = cache.MonstersByElement.Flush()

	dataPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "mob_db.yml"), []byte(bestiaryFixture), 0o644))

	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		DataPath:                 dataPath,
		ItemInfoPath:             filepath.Join(dataPath, "itemInfo.lua"),
		AssetsPath:               t.TempDir(),
		AssetOriginItemURL:       "https://origin.example.com/item/%d.png",
		AssetOriginCollectionURL: "https://origin.example.com/collection/%d.png",
	}}

	assets, err := repo.NewAsset(conf)
	require.NoError(t, err)
	return NewMonster(repo.NewStore(conf, gamedb.NewLoader(conf), assets))
}

func TestMonsterListAndGet(t *testing.T) {
	s := newTestMonster(t)

	monsters, err := s.List(0, DefaultPageSize)
	require.NoError(t, err)
	assert.Len(t, monsters, 3)

	poring, err := s.GetByID(1002)
	require.NoError(t, err)
	assert.Equal(t, "Poring", poring.Name)

	_, err = s.GetByID(4242)
	assert.ErrorIs(t, err, roerr.ErrNotFound)
}

func TestMonsterSearchUniversal(t *testing.T) {
	s := newTestMonster(t)

	byID, err := s.Search("1511", DefaultPageSize)
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Amon Ra", byID[0].Name)

	byName, err := s.Search("ring", DefaultPageSize)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 1002, byName[0].ID)

	_, err = s.Search("zzz", DefaultPageSize)
	assert.ErrorIs(t, err, roerr.ErrNotFound)

	exact, err := s.SearchByName("drops", true, DefaultPageSize)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, 1113, exact[0].ID)
}

func TestMonsterGetByElement(t *testing.T) {
	s := newTestMonster(t)

	fire, err := s.GetByElement("fire")
	require.NoError(t, err)
	require.Len(t, fire, 1)
	assert.Equal(t, 1113, fire[0].ID)

	_, err = s.GetByElement("Void")
	assert.ErrorIs(t, err, roerr.ErrNotFound)
}

func TestMonsterGetMvps(t *testing.T) {
	s := newTestMonster(t)

	mvps, err := s.GetMvps()
	require.NoError(t, err)
	require.Len(t, mvps, 1)
	assert.Equal(t, 1511, mvps[0].ID)

	// repeat lookups come from the generation-keyed cache
	again, err := s.GetMvps()
	require.NoError(t, err)
	assert.Len(t, again, 1)
}
