package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
)

// AssetKind distinguishes the two image asset classes kept in the local
// cache, each in its own subdirectory.
type AssetKind string

const (
	AssetKindItem       AssetKind = "item"
	AssetKindCollection AssetKind = "collection"
)

// NotFoundSprite is the sentinel file name returned when an asset has no
// cached image, so clients can render a uniform placeholder.
const NotFoundSprite = "[not_found].png"

// Asset is the local image cache: a directory tree of <kind>/<id>.png files
// filled lazily from the remote origin. Presence of the file is the only
// cache state; no index is kept.
type Asset struct {
	conf *appconfig.Config
}

func NewAsset(conf *appconfig.Config) (*Asset, error) {
	for _, kind := range []AssetKind{AssetKindItem, AssetKindCollection} {
		dir := filepath.Join(conf.AssetsPath, string(kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create asset cache directory %s", dir)
		}
	}
	return &Asset{conf: conf}, nil
}

// Path returns the local cache file path for an asset.
func (r *Asset) Path(kind AssetKind, id int) string {
	return filepath.Join(r.conf.AssetsPath, string(kind), fmt.Sprintf("%d.png", id))
}

// Exists reports whether the asset is present in the local cache.
func (r *Asset) Exists(kind AssetKind, id int) bool {
	info, err := os.Stat(r.Path(kind, id))
	return err == nil && !info.IsDir()
}

// Write stores fetched asset bytes in the local cache.
func (r *Asset) Write(kind AssetKind, id int, data []byte) error {
	return errors.Wrap(os.WriteFile(r.Path(kind, id), data, 0o644), "failed to write asset file")
}

// FileName returns the served file name for an asset: the real file when
// cached, the placeholder sentinel otherwise.
func (r *Asset) FileName(kind AssetKind, id int) string {
	if r.Exists(kind, id) {
		return fmt.Sprintf("%d.png", id)
	}
	return NotFoundSprite
}

// PlaceholderPath returns the local path of the not-found placeholder for a
// kind. The placeholder ships with the deployment and is not fetched.
func (r *Asset) PlaceholderPath(kind AssetKind) string {
	return filepath.Join(r.conf.AssetsPath, string(kind), NotFoundSprite)
}

// LocalURL returns the URL path under which a cached asset is served.
func (r *Asset) LocalURL(kind AssetKind, id int) string {
	return fmt.Sprintf("/static/images/%s/%d.png", kind, id)
}

// RemoteURL returns the remote origin URL for an asset.
func (r *Asset) RemoteURL(kind AssetKind, id int) string {
	switch kind {
	case AssetKindCollection:
		return fmt.Sprintf(r.conf.AssetOriginCollectionURL, id)
	default:
		return fmt.Sprintf(r.conf.AssetOriginItemURL, id)
	}
}

// ResolveURL prefers the locally cached copy and falls back to the remote
// origin for assets not yet filled.
func (r *Asset) ResolveURL(kind AssetKind, id int) string {
	if r.Exists(kind, id) {
		return r.LocalURL(kind, id)
	}
	return r.RemoteURL(kind, id)
}
