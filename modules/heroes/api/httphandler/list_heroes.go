package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/herohall/registry/modules/heroes"
	"github.com/samber/lo"
)

type listHeroesResult struct {
	List        []heroes.HeroRecord `json:"list"`
	OccupiedIds []int               `json:"occupiedIds"`
}

type listHeroesResponse = HttpResponse[listHeroesResult]

func (h *HttpHandler) ListHeroes(ctx *fiber.Ctx) (err error) {
	records, err := h.usecase.ListHeroes(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during ListHeroes")
	}

	resp := listHeroesResponse{
		Result: &listHeroesResult{
			List: records,
			OccupiedIds: lo.Map(records, func(rec heroes.HeroRecord, _ int) int {
				return int(rec.HeroID)
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
