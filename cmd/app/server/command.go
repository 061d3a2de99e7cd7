package server

import "github.com/urfave/cli/v2"

// Command is the `start` subcommand: load the catalog, prime the asset
// cache, then serve the API.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "start the catalog API server",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}
