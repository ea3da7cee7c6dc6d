package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/modules/heroes"
)

type getHeroRequest struct {
	Id int `params:"id"`
}

func (r getHeroRequest) Validate() error {
	if r.Id < 0 || r.Id >= heroes.SlotCount {
		return errs.NewPublicError("'id' must be a valid slot id")
	}
	return nil
}

type getHeroResult struct {
	Hero heroes.HeroRecord `json:"hero"`
}

type getHeroResponse = HttpResponse[getHeroResult]

func (h *HttpHandler) GetHero(ctx *fiber.Ctx) (err error) {
	var req getHeroRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	hero, err := h.usecase.GetHero(ctx.UserContext(), uint8(req.Id))
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.WithPublicMessage(err, "hero not found")
		}
		return errors.Wrap(err, "error during GetHero")
	}

	resp := getHeroResponse{
		Result: &getHeroResult{
			Hero: hero,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
