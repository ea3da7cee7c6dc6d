package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Get("/heroes", h.ListHeroes)
	r.Get("/heroes/:id", h.GetHero)
	r.Post("/transactions", h.SubmitTransaction)
	return nil
}
