package heroes

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
)

// processBuyRecord settles a purchase:
//
//  1. verify buyer signature, repository ownership and admin authority
//  2. verify the previous owner actually holds the old nft
//  3. transfer the replacement nft to the buyer
//  4. retire the old nft's metadata
//  5. settle the record: last price := listed price, bind the new mint
//  6. pay the listed price from buyer to previous owner
//
// Accounts expected:
//
//	 0. [signer]   the admin account holding transfer authority
//	 1. [signer]   the buyer, pays the listed price
//	 2. [writable] the previous owner, receives the payment
//	 3. [writable] the repository account
//	 4. []         the old (dead) nft mint
//	 5. []         the previous owner's token account for the old mint
//	 6. [writable] the old nft's metadata account
//	 7. []         the new nft mint
//	 8. [writable] the token account the new nft is sent from
//	 9. [writable] the token account the new nft is sent to
//	10. []         the token program
//	11. []         the token metadata program
//	12. []         the system program
//
// Every step must succeed; the first failure aborts the invocation and the
// runtime rolls back all earlier steps, so the token can never move without
// the payment settling.
func (p *Processor) processBuyRecord(ctx context.Context, inv *runtime.Invocation, args *BuyRecordArgs) error {
	admin, err := inv.NextAccount()
	if err != nil {
		return err
	}
	buyer, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if !buyer.Signer {
		return errors.Wrapf(errs.MissingSignature, "buyer %s", buyer.Address)
	}
	prevOwner, err := inv.NextAccount()
	if err != nil {
		return err
	}
	repository, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if repository.Owner != p.programID {
		return errors.Wrapf(errs.WrongProgramOwner, "repository %s", repository.Address)
	}

	// 1. verify admin authority
	if err := verifyAdminAuthority(admin.Address, repository.Address, p.programID); err != nil {
		return err
	}

	oldMint, err := inv.NextAccount()
	if err != nil {
		return err
	}
	oldTokenAccount, err := inv.NextAccount()
	if err != nil {
		return err
	}
	oldMetadata, err := inv.NextAccount()
	if err != nil {
		return err
	}

	// 2. the previous owner must genuinely hold the old nft
	if err := verifyTokenHolder(oldTokenAccount, prevOwner.Address, oldMint.Address); err != nil {
		return err
	}

	newMint, err := inv.NextAccount()
	if err != nil {
		return err
	}
	sendTokenAccount, err := inv.NextAccount()
	if err != nil {
		return err
	}
	receiveTokenAccount, err := inv.NextAccount()
	if err != nil {
		return err
	}
	tokenProgram, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if tokenProgram.Address != p.tokenGw.ProgramID() {
		return errors.Wrapf(errs.IncorrectProgramID, "token program %s", tokenProgram.Address)
	}

	// 3. move one token unit to the buyer, authorized by the admin
	if err := p.tokenGw.Transfer(ctx, sendTokenAccount, receiveTokenAccount, admin, 1); err != nil {
		return err
	}

	metadataProgram, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if metadataProgram.Address != p.metadataGw.ProgramID() {
		return errors.Wrapf(errs.IncorrectProgramID, "metadata program %s", metadataProgram.Address)
	}

	// 4. retire the old nft's metadata and flag its primary sale
	if err := p.metadataGw.Update(ctx, oldMetadata, admin, oldMint.Address, args.DeadURI, args.DeadName, true); err != nil {
		return err
	}

	// 5. settle the record and bind the freshly issued mint
	record, err := UnpackRecord(repository.Data, args.HeroID)
	if err != nil {
		return err
	}
	if record.KeyNFT != oldMint.Address {
		return errors.Wrapf(ErrInvalidNFTKey, "record key %s, old mint %s", record.KeyNFT, oldMint.Address)
	}
	record.LastPrice = record.ListedPrice
	record.KeyNFT = newMint.Address
	if err := record.Pack(repository.Data); err != nil {
		return err
	}

	systemProgram, err := inv.NextAccount()
	if err != nil {
		return err
	}
	if systemProgram.Address != runtime.SystemProgramID {
		return errors.Wrapf(errs.IncorrectProgramID, "system program %s", systemProgram.Address)
	}

	// 6. settle the payment at exactly the price the seller listed
	if err := inv.Pay(buyer.Account, prevOwner.Account, record.ListedPrice); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Record bought",
		slogx.Int("heroId", int(record.HeroID)),
		slogx.Uint64("price", record.ListedPrice),
		slogx.Stringer("newKeyNft", record.KeyNFT),
		slogx.Stringer("buyer", buyer.Address))
	return nil
}
