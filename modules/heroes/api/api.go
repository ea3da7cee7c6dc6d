package api

import (
	"github.com/herohall/registry/modules/heroes/api/httphandler"
	"github.com/herohall/registry/modules/heroes/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(usecase)
}
