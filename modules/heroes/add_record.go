package heroes

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
)

// processAddRecord writes a new record into the repository.
//
// Accounts expected:
//
//	0. [signer]   the account adding the record; must be the admin
//	1. [writable] the repository account
//
// The write is insert-or-replace: whatever the slot held before is
// overwritten unconditionally.
func (p *Processor) processAddRecord(ctx context.Context, inv *runtime.Invocation, args *AddRecordArgs) error {
	adder, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if !adder.Signer {
		return errors.Wrapf(errs.MissingSignature, "adder %s", adder.Address)
	}

	repository, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if repository.Owner != p.programID {
		return errors.Wrapf(errs.WrongProgramOwner, "repository %s", repository.Address)
	}

	if err := verifyAdminAuthority(adder.Address, repository.Address, p.programID); err != nil {
		return err
	}

	keyNFT, err := types.AddressFromString(args.KeyNFT)
	if err != nil {
		return errors.Wrapf(ErrInvalidInstruction, "nft key %q", args.KeyNFT)
	}

	record := HeroRecord{
		HeroID:      args.HeroID,
		ContentURI:  args.ContentURI,
		KeyNFT:      keyNFT,
		LastPrice:   args.LastPrice,
		ListedPrice: args.ListedPrice,
	}
	if err := record.Pack(repository.Data); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Record added",
		slogx.Int("heroId", int(record.HeroID)),
		slogx.Stringer("keyNft", record.KeyNFT),
		slogx.Uint64("listedPrice", record.ListedPrice))
	return nil
}
