package gamedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mobFixture = `
Header:
  Type: MOB_DB
  Version: 1
Body:
  - Id: 1002
    AegisName: PORING
    Name: Poring
    Level: 1
    Hp: 55
    BaseExp: 2
    JobExp: 1
    Attack: 7
    Attack2: 10
    Element: Water
    ElementLevel: 1
    Race: Plant
    Size: Medium
    Drops:
      - Item: Jellopy
        Rate: 7000
      - Item: Apple
      - Rate: 500
  - Id: 1511
    AegisName: AMON_RA
    Name: Amon Ra
    Level: 88
    Hp: 1214138
    MvpExp: 143300
    Element: Earth
    ElementLevel: 3
    Race: Demihuman
    Size: Large
    MvpDrops:
      - Item: Old_Blue_Box
        Rate: 5500
  - Id: 1000
    AegisName: BARE
    Name: Bare Monster
`

func TestDecodeMobFile(t *testing.T) {
	blocks, err := decodeMobFile([]byte(mobFixture))
	require.NoError(t, err)
	require.Len(t, blocks, 3)
}

func TestNormalizeMonster(t *testing.T) {
	blocks, err := decodeMobFile([]byte(mobFixture))
	require.NoError(t, err)

	poring, err := normalizeMonster(blocks[0])
	require.NoError(t, err)
	assert.Equal(t, 1002, poring.ID)
	assert.Equal(t, "poring", poring.Sprite)
	assert.False(t, poring.Mvp)
	require.NotNil(t, poring.Stats.Atk2)
	assert.Equal(t, 10, *poring.Stats.Atk2)
	// drop rates are per-myriad in the source, fractional percent here;
	// entries without an item name are dropped, absent rates default
	require.Len(t, poring.Drops, 2)
	assert.Equal(t, "Jellopy", poring.Drops[0].ItemName)
	assert.InDelta(t, 70.0, poring.Drops[0].Rate, 1e-9)
	assert.InDelta(t, 0.01, poring.Drops[1].Rate, 1e-9)

	amonRa, err := normalizeMonster(blocks[1])
	require.NoError(t, err)
	assert.True(t, amonRa.Mvp)
	require.Len(t, amonRa.MvpDrops, 1)
	assert.InDelta(t, 55.0, amonRa.MvpDrops[0].Rate, 1e-9)

	bare, err := normalizeMonster(blocks[2])
	require.NoError(t, err)
	assert.Equal(t, 1, bare.Level)
	assert.Equal(t, 1, bare.Stats.Hp)
	assert.Equal(t, 1, bare.Stats.Str)
	assert.Equal(t, "Neutral", bare.Element)
	assert.Equal(t, 1, bare.ElementLevel)
	assert.Equal(t, "Formless", bare.Race)
	assert.Equal(t, "Small", bare.Size)
	assert.False(t, bare.Mvp)
}

func TestNormalizeMonsterMvpExpOnly(t *testing.T) {
	id := 1086
	monster, err := normalizeMonster(mobBlock{ID: &id, AegisName: "GOLDEN_BUG", MvpExp: 9000})
	require.NoError(t, err)
	assert.True(t, monster.Mvp)
	assert.Empty(t, monster.MvpDrops)
}
