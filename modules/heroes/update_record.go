package heroes

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
)

// processUpdateRecord rewrites a record's listed price and content uri. The
// last settled price is left untouched.
//
// Accounts expected:
//
//	0. [signer]   the setter; must be the admin
//	1. [writable] the repository account
//	2. []         the nft mint account of the record being changed
//	3. []         the setter's token-holding account for that mint
//
// Note the dual gate: the setter must pass the admin derivation check AND
// must hold the record's token. The token holder alone cannot update.
func (p *Processor) processUpdateRecord(ctx context.Context, inv *runtime.Invocation, args *UpdateRecordArgs) error {
	setter, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if !setter.Signer {
		return errors.Wrapf(errs.MissingSignature, "setter %s", setter.Address)
	}

	repository, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if repository.Owner != p.programID {
		return errors.Wrapf(errs.WrongProgramOwner, "repository %s", repository.Address)
	}

	if err := verifyAdminAuthority(setter.Address, repository.Address, p.programID); err != nil {
		return err
	}

	mint, err := inv.NextAccount()
	if err != nil {
		return err
	}
	tokenAccount, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if err := verifyTokenHolder(tokenAccount, setter.Address, mint.Address); err != nil {
		return err
	}

	record, err := UnpackRecord(repository.Data, args.HeroID)
	if err != nil {
		return err
	}
	if record.KeyNFT != args.KeyNFT || record.KeyNFT != mint.Address {
		return errors.Wrapf(ErrInvalidTokenKey, "record key %s", record.KeyNFT)
	}

	record.ListedPrice = args.NewPrice
	record.ContentURI = args.ContentURI
	if err := record.Pack(repository.Data); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Record updated",
		slogx.Int("heroId", int(record.HeroID)),
		slogx.Uint64("listedPrice", record.ListedPrice))
	return nil
}
