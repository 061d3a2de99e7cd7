package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
)

func newTestAsset(t *testing.T) *Asset {
	t.Helper()
	conf := &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{
		AssetsPath:               t.TempDir(),
		AssetOriginItemURL:       "https://origin.example.com/item/%d.png",
		AssetOriginCollectionURL: "https://origin.example.com/collection/%d.png",
	}}
	assets, err := NewAsset(conf)
	require.NoError(t, err)
	return assets
}

func TestAssetWriteAndExists(t *testing.T) {
	assets := newTestAsset(t)

	assert.False(t, assets.Exists(AssetKindItem, 501))
	require.NoError(t, assets.Write(AssetKindItem, 501, []byte("png")))
	assert.True(t, assets.Exists(AssetKindItem, 501))
	// kinds are separate namespaces
	assert.False(t, assets.Exists(AssetKindCollection, 501))

	data, err := os.ReadFile(assets.Path(AssetKindItem, 501))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestAssetFileNameSentinel(t *testing.T) {
	assets := newTestAsset(t)

	assert.Equal(t, NotFoundSprite, assets.FileName(AssetKindItem, 777))
	require.NoError(t, assets.Write(AssetKindItem, 777, []byte("png")))
	assert.Equal(t, "777.png", assets.FileName(AssetKindItem, 777))
}

func TestAssetResolveURL(t *testing.T) {
	assets := newTestAsset(t)

	assert.Equal(t, "https://origin.example.com/item/501.png", assets.ResolveURL(AssetKindItem, 501))
	assert.Equal(t, "https://origin.example.com/collection/501.png", assets.ResolveURL(AssetKindCollection, 501))

	require.NoError(t, assets.Write(AssetKindItem, 501, []byte("png")))
	assert.Equal(t, "/static/images/item/501.png", assets.ResolveURL(AssetKindItem, 501))
}

func TestAssetPlaceholderPath(t *testing.T) {
	assets := newTestAsset(t)
	path := assets.PlaceholderPath(AssetKindCollection)
	assert.Equal(t, NotFoundSprite, filepath.Base(path))
}
