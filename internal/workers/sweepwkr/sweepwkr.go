// Package sweepwkr runs the view history retention sweep: once at startup,
// then on a fixed interval for the lifetime of the process.
package sweepwkr

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/midgard-statistics/backend/internal/app/appconfig"
	"github.com/midgard-statistics/backend/internal/service"
)

func Start(conf *appconfig.Config, popularityService *service.Popularity) {
	sweep(popularityService)

	go func() {
		for {
			time.Sleep(conf.PopularitySweepInterval)
			sweep(popularityService)
		}
	}()
}

func sweep(popularityService *service.Popularity) {
	removed, err := popularityService.Cleanup()
	if err != nil {
		log.Error().Err(err).Msg("view history retention sweep failed")
		return
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("view history retention sweep finished")
	}
}
