package v1

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	opts := []fx.Option{
		fx.Invoke(
			RegisterItem,
			RegisterAsset,
			RegisterMonster,
		),
	}
	return fx.Module("controllers.v1", opts...)
}
