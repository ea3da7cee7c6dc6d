package httphandler

import (
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/samber/lo"
)

type submitTransactionAccount struct {
	Address string `json:"address"`
	Signer  bool   `json:"signer"`
}

type submitTransactionRequest struct {
	Program  string                     `json:"program"`
	Accounts []submitTransactionAccount `json:"accounts"`
	Data     string                     `json:"data"` // base64 instruction payload
}

func (r submitTransactionRequest) Validate() error {
	var errList []error
	if r.Program == "" {
		errList = append(errList, errors.New("'program' is required"))
	}
	if r.Data == "" {
		errList = append(errList, errors.New("'data' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type submitTransactionResult struct {
	Committed bool `json:"committed"`
}

type submitTransactionResponse = HttpResponse[submitTransactionResult]

func (h *HttpHandler) SubmitTransaction(ctx *fiber.Ctx) (err error) {
	var req submitTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	program, err := types.AddressFromString(req.Program)
	if err != nil {
		return errs.WithPublicMessage(err, "invalid program address")
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return errs.WithPublicMessage(err, "invalid instruction data")
	}

	accounts := make([]runtime.AccountMeta, 0, len(req.Accounts))
	for _, meta := range req.Accounts {
		address, err := types.AddressFromString(meta.Address)
		if err != nil {
			return errs.WithPublicMessage(err, "invalid account address")
		}
		accounts = append(accounts, runtime.AccountMeta{Address: address, Signer: meta.Signer})
	}

	tx := runtime.Transaction{
		Program:  program,
		Accounts: accounts,
		Data:     data,
	}
	if err := h.usecase.SubmitTransaction(ctx.UserContext(), tx); err != nil {
		// every processor failure is terminal for the transaction and is
		// surfaced verbatim to the caller
		return errs.WithPublicMessage(err, "transaction aborted")
	}

	resp := submitTransactionResponse{
		Result: lo.ToPtr(submitTransactionResult{Committed: true}),
	}
	return errors.WithStack(ctx.JSON(resp))
}
