// Package assetwkr runs the startup image cache fill. It is invoked in the
// dependency graph before the lifecycle starts the HTTP listener, so the
// service begins accepting requests only after the fill pass has finished.
package assetwkr

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/repo"
	"github.com/midgard-statistics/backend/internal/service"
)

func Start(conf *appconfig.Config, storeRepo *repo.Store, assetService *service.Asset) {
	if !conf.AssetFillEnabled {
		log.Info().Msg("asset cache fill is disabled; skipping")
		return
	}

	ids := storeRepo.ItemIDs()
	for _, kind := range []repo.AssetKind{repo.AssetKindItem, repo.AssetKindCollection} {
		report, err := assetService.FillMissing(context.Background(), kind, ids)
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("asset cache fill encountered errors")
		}
		log.Info().
			Str("kind", string(kind)).
			Int("fetched", report.Fetched).
			Int("skipped", report.Skipped).
			Int("failed", report.Failed).
			Msg("asset cache fill finished")
	}

	// newly cached assets should be preferred over remote origin URLs
	storeRepo.Reload()
}
