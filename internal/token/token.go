// Package token is the token-ledger collaborator of the registry program.
// Token-holding accounts are owned by the token program and carry a fixed
// binary layout associating a mint with a holder and a unit balance. For
// non-fungible tokens the balance of the live holding account is exactly 1.
package token

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/lib/borsh"
)

// AccountSize is the serialized size of a token-holding account:
// mint (32) | holder (32) | amount (8).
const AccountSize = 72

const (
	ErrHolderMismatch = errs.ErrorKind("token: authority is not the holder")
	ErrMintMismatch   = errs.ErrorKind("token: accounts belong to different mints")
)

// DefaultProgramAddress is the well-known address the token program is
// registered at.
var DefaultProgramAddress = types.DeriveAddress(types.ZeroAddress, "token-program", types.ZeroAddress)

// Account is the parsed state of a token-holding account.
type Account struct {
	Mint   types.Address
	Holder types.Address
	Amount uint64
}

// UnpackAccount parses a token-holding account's data region.
func UnpackAccount(data []byte) (Account, error) {
	r := borsh.NewReader(data)
	mint, err := r.ReadBytes32()
	if err != nil {
		return Account{}, errors.Wrap(errs.InvalidAccountData, "token account mint")
	}
	holder, err := r.ReadBytes32()
	if err != nil {
		return Account{}, errors.Wrap(errs.InvalidAccountData, "token account holder")
	}
	amount, err := r.ReadUint64()
	if err != nil {
		return Account{}, errors.Wrap(errs.InvalidAccountData, "token account amount")
	}
	return Account{Mint: mint, Holder: holder, Amount: amount}, nil
}

// Pack writes the account state into data, which must hold at least
// AccountSize bytes.
func (a Account) Pack(data []byte) error {
	if len(data) < AccountSize {
		return errors.Wrapf(errs.InvalidAccountData, "token account needs %d bytes, got %d", AccountSize, len(data))
	}
	w := borsh.NewWriter()
	w.WriteBytes32(a.Mint)
	w.WriteBytes32(a.Holder)
	w.WriteUint64(a.Amount)
	copy(data, w.Bytes())
	return nil
}

// Program implements the token-transfer primitive.
type Program struct {
	id types.Address
}

func NewProgram(id types.Address) *Program {
	return &Program{id: id}
}

func (p *Program) Name() string {
	return "token"
}

func (p *Program) ID() types.Address {
	return p.id
}

func (p *Program) ProgramID() types.Address {
	return p.id
}

// Process rejects direct invocations: the program is reached through
// Transfer by other programs, not by top-level transactions.
func (p *Program) Process(ctx context.Context, inv *runtime.Invocation) error {
	return errors.Wrap(errs.InvalidAccountData, "token program accepts no direct instructions")
}

// Transfer moves amount token units from src to dst. The authority must have
// signed the transaction and must be the recorded holder of src.
func (p *Program) Transfer(ctx context.Context, src, dst, authority *runtime.AccountInfo, amount uint64) error {
	if !authority.Signer {
		return errors.Wrapf(errs.MissingSignature, "transfer authority %s", authority.Address)
	}
	if src.Owner != p.id || dst.Owner != p.id {
		return errors.Wrap(errs.WrongProgramOwner, "token accounts must be owned by the token program")
	}

	srcState, err := UnpackAccount(src.Data)
	if err != nil {
		return errors.Wrap(err, "source account")
	}
	dstState, err := UnpackAccount(dst.Data)
	if err != nil {
		return errors.Wrap(err, "destination account")
	}
	if srcState.Holder != authority.Address {
		return errors.Wrapf(ErrHolderMismatch, "holder %s, authority %s", srcState.Holder, authority.Address)
	}
	if srcState.Mint != dstState.Mint {
		return errors.Wrapf(ErrMintMismatch, "source mint %s, destination mint %s", srcState.Mint, dstState.Mint)
	}
	if srcState.Amount < amount {
		return errors.Wrapf(errs.InsufficientFunds, "token balance %d, need %d", srcState.Amount, amount)
	}

	// a self-transfer is a no-op; writing both unpacked states back to the
	// same account would apply the credit over the debit
	if src.Address == dst.Address {
		return nil
	}

	srcState.Amount -= amount
	dstState.Amount += amount
	if err := srcState.Pack(src.Data); err != nil {
		return err
	}
	return dstState.Pack(dst.Data)
}

var _ runtime.Processor = (*Program)(nil)
