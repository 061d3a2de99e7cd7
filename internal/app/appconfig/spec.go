package appconfig

import (
	"time"

	"github.com/midgard-statistics/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9030"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// game data source files

	// DataPath is the directory containing the tabular game database files
	// (item_db_usable.yml, item_db_equip.yml, item_db_etc.yml, mob_db.yml).
	DataPath string `split_words:"true" default:"data/pre-re"`

	// ItemInfoPath is the path to the client-side scripting-table blob from which
	// localized item descriptions are recovered.
	ItemInfoPath string `split_words:"true" default:"data/itemInfo.lua"`

	// image asset cache

	// AssetsPath is the local image cache root. Two subdirectories are kept
	// underneath it, one per asset kind: item/ and collection/.
	AssetsPath string `split_words:"true" default:"data/images"`

	// AssetOriginItemURL is the remote origin URL template for item sprites.
	// The single %d verb is substituted with the numeric item id.
	AssetOriginItemURL string `split_words:"true" default:"https://static.divine-pride.net/images/items/item/%d.png"`

	// AssetOriginCollectionURL is the remote origin URL template for collection images.
	AssetOriginCollectionURL string `split_words:"true" default:"https://static.divine-pride.net/images/items/collection/%d.png"`

	// AssetFillEnabled is whether to bulk-fill missing image assets from the remote
	// origin during startup. Disable for offline development and tests.
	AssetFillEnabled bool `split_words:"true" default:"true"`

	// AssetFillConcurrency bounds the number of concurrent fetches during the
	// startup cache fill.
	AssetFillConcurrency int `split_words:"true" default:"5"`

	// AssetFillDelay is the courtesy delay inserted after each fetch on every fill
	// worker, to avoid hammering the remote origin.
	AssetFillDelay time.Duration `split_words:"true" default:"100ms"`

	// AssetFetchTimeout is the per-request timeout for a single asset fetch.
	AssetFetchTimeout time.Duration `split_words:"true" default:"10s"`

	// popularity tracking

	// PopularityPath is the JSON file the view history is persisted to. The file
	// shape (string-encoded id keys mapping to ordered timestamp arrays) is a
	// contract for migration tooling; see internal/repo/view_history.go.
	PopularityPath string `split_words:"true" default:"data/popularity_data.json"`

	// PopularityRetentionDays is the horizon beyond which the retention sweep
	// drops view events.
	PopularityRetentionDays int `split_words:"true" default:"90"`

	// PopularitySweepInterval is how often the retention sweep runs after the
	// startup sweep.
	PopularitySweepInterval time.Duration `split_words:"true" default:"24h"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
