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

type Monster struct {
	MonsterService *service.Monster
}

func RegisterMonster(v1 *svr.V1, monsterService *service.Monster) {
	c := &Monster{
		MonsterService: monsterService,
	}

	// literal segments must be registered before the :monsterId wildcard
	v1.Get("/monsters", c.GetMonsters)
	v1.Get("/monsters/search", c.SearchMonsters)
	v1.Get("/monsters/search/by-name", c.SearchMonstersByName)
	v1.Get("/monsters/filter/by-element", c.GetMonstersByElement)
	v1.Get("/monsters/filter/mvp", c.GetMvpMonsters)
	v1.Get("/monsters/:monsterId", c.GetMonsterByID)
}

func (c *Monster) GetMonsters(ctx *fiber.Ctx) error {
	skip := ctx.QueryInt("skip", 0)
	limit := ctx.QueryInt("limit", service.DefaultPageSize)

	monsters, err := c.MonsterService.List(skip, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(monsters)
}

func (c *Monster) GetMonsterByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("monsterId"))
	if err != nil {
		return roerr.ErrInvalidRequest.WithMessage("invalid monster id: %s", ctx.Params("monsterId"))
	}

	monster, err := c.MonsterService.GetByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(monster)
}

func (c *Monster) SearchMonsters(ctx *fiber.Ctx) error {
	monsters, err := c.MonsterService.Search(ctx.Query("query"), ctx.QueryInt("limit", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return ctx.JSON(monsters)
}

func (c *Monster) SearchMonstersByName(ctx *fiber.Ctx) error {
	monsters, err := c.MonsterService.SearchByName(
		ctx.Query("name"),
		ctx.QueryBool("exact", false),
		ctx.QueryInt("limit", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return ctx.JSON(monsters)
}

func (c *Monster) GetMonstersByElement(ctx *fiber.Ctx) error {
	monsters, err := c.MonsterService.GetByElement(ctx.Query("element"))
	if err != nil {
		return err
	}
	return ctx.JSON(monsters)
}

func (c *Monster) GetMvpMonsters(ctx *fiber.Ctx) error {
	monsters, err := c.MonsterService.GetMvps()
	if err != nil {
		return err
	}
	var lastModifiedTime time.Time
	if err := cache.LastModifiedTime.Get("[mvpMonsters]", &lastModifiedTime); err != nil {
		lastModifiedTime = time.Now()
	}
	cachectrl.OptIn(ctx, lastModifiedTime)
	return ctx.JSON(monsters)
}
