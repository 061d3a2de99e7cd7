package v1

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/midgard-statistics/backend/internal/pkg/cachectrl"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/repo"
	"github.com/midgard-statistics/backend/internal/server/svr"
	"github.com/midgard-statistics/backend/internal/service"
)

type Asset struct {
	AssetService *service.Asset
}

func RegisterAsset(v1 *svr.V1, assetService *service.Asset) {
	c := &Asset{
		AssetService: assetService,
	}

	v1.Get("/images/item/:file", c.GetItemImage)
	v1.Get("/images/collection/:file", c.GetCollectionImage)
}

func (c *Asset) GetItemImage(ctx *fiber.Ctx) error {
	return c.serveImage(ctx, repo.AssetKindItem)
}

func (c *Asset) GetCollectionImage(ctx *fiber.Ctx) error {
	return c.serveImage(ctx, repo.AssetKindCollection)
}

// serveImage sends the cached image for "<id>.png" (a bare "<id>" works
// too), falling back to the not-found placeholder. Real images are cacheable
// for a day; the placeholder only for an hour, as the fill worker may
// provide the real image later.
func (c *Asset) serveImage(ctx *fiber.Ctx, kind repo.AssetKind) error {
	file := strings.TrimSuffix(ctx.Params("file"), ".png")
	id, err := strconv.Atoi(file)
	if err != nil {
		return roerr.ErrInvalidRequest.WithMessage("invalid image name: %s", ctx.Params("file"))
	}

	path, cached, ok := c.AssetService.ServePath(kind, id)
	if !ok {
		return roerr.ErrAssetNotFound
	}

	if cached {
		cachectrl.OptInCustom(ctx, time.Now(), time.Hour*24)
	} else {
		cachectrl.OptInCustom(ctx, time.Now(), time.Hour)
	}
	return ctx.SendFile(path)
}
