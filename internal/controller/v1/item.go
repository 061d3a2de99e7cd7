package v1

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/midgard-statistics/backend/internal/model/cache"
	"github.com/midgard-statistics/backend/internal/pkg/cachectrl"
	"github.com/midgard-statistics/backend/internal/pkg/roerr"
	"github.com/midgard-statistics/backend/internal/server/svr"
	"github.com/midgard-statistics/backend/internal/service"
)

type Item struct {
	ItemService       *service.Item
	PopularityService *service.Popularity
}

func RegisterItem(v1 *svr.V1, itemService *service.Item, popularityService *service.Popularity) {
	c := &Item{
		ItemService:       itemService,
		PopularityService: popularityService,
	}

	// literal segments must be registered before the :itemId wildcard
	v1.Get("/items", c.GetItems)
	v1.Get("/items/search", c.SearchItems)
	v1.Get("/items/search/by-name", c.SearchItemsByName)
	v1.Get("/items/filter/by-type", c.GetItemsByType)
	v1.Get("/items/popular/:period", c.GetPopularItems)
	v1.Get("/items/:itemId", c.GetItemByID)
	v1.Get("/items/:itemId/stats", c.GetItemStats)
}

func (c *Item) GetItems(ctx *fiber.Ctx) error {
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", service.DefaultPageSize)

	items, err := c.ItemService.List(skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(items)
}

func (c *Item) GetItemByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("itemId"))
	if err != nil {
		return roerr.ErrInvalidRequest.WithMessage("invalid item id: %s", ctx.Params("itemId"))
	}

	item, err := c.ItemService.GetByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(item)
}

func (c *Item) SearchItems(ctx *fiber.Ctx) error {
	items, err := c.ItemService.Search(ctx.Query("query"), ctx.QueryInt("limit", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return ctx.JSON(items)
}

func (c *Item) SearchItemsByName(ctx *fiber.Ctx) error {
	items, err := c.ItemService.SearchByName(
		ctx.Query("name"),
		ctx.QueryBool("exact", false),
		ctx.QueryInt("limit", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return ctx.JSON(items)
}

func (c *Item) GetItemsByType(ctx *fiber.Ctx) error {
	typ := ctx.Query("type")
	items, err := c.ItemService.GetByType(typ)
	if err != nil {
		return err
	}
	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[itemsByType#"+typ+"]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)
	return ctx.JSON(items)
}

// GetPopularItems always computes from the live view history so a view
// recorded a moment ago is already reflected.
func (c *Item) GetPopularItems(ctx *fiber.Ctx) error {
	entries, err := c.PopularityService.GetPopular(ctx.Params("period"), ctx.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	cachectrl.OptOut(ctx)
	return ctx.JSON(entries)
}

func (c *Item) GetItemStats(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("itemId"))
	if err != nil {
		return roerr.ErrInvalidRequest.WithMessage("invalid item id: %s", ctx.Params("itemId"))
	}

	stats, err := c.PopularityService.GetStats(id)
	if err != nil {
		return err
	}
	cachectrl.OptOut(ctx)
	return ctx.JSON(stats)
}
