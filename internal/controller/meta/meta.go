package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/midgard-statistics/backend/internal/pkg/bininfo"
	"github.com/midgard-statistics/backend/internal/pkg/cachectrl"
	"github.com/midgard-statistics/backend/internal/server/svr"
	"github.com/midgard-statistics/backend/internal/service"
)

type Meta struct {
	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, healthService *service.Health) {
	c := &Meta{
		HealthService: healthService,
	}

	meta.Get("/health", c.Health)
	meta.Get("/bininfo", c.BinInfo)
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	cachectrl.OptOut(ctx)
	return ctx.JSON(c.HealthService.Status())
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"version":   bininfo.Version,
		"buildTime": bininfo.BuildTime,
	})
}
