package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/midgard-statistics/backend/cmd/app/server"
	"github.com/midgard-statistics/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "midgardbackend",
		Description: "The Midgard Statistics Backend. Serves the item & monster catalog parsed from on-disk game data, with cached image assets and view popularity statistics. Built with Go, fiber and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
