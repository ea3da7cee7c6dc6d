// Package runtime is the execution environment the registry program runs in:
// an account ledger that resolves a transaction's positional account list,
// dispatches to the addressed program and guarantees that all effects of one
// invocation persist or none do.
//
// The original host grants whole-transaction atomicity natively; outside such
// a host the guarantee has to be rebuilt explicitly. The ledger does so by
// snapshotting every account a transaction names before dispatch and
// restoring the snapshots when the processor returns an error.
package runtime

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/pkg/logger"
	"github.com/herohall/registry/pkg/logger/slogx"
	"github.com/samber/lo"
)

const (
	ErrUnknownProgram    = errs.ErrorKind("runtime: no program registered at address")
	ErrAccountExists     = errs.ErrorKind("runtime: account already exists")
	ErrProgramRegistered = errs.ErrorKind("runtime: program already registered")
)

// AccountStore persists the account registry between runs. Implementations
// must be safe to call from a single goroutine at a time.
type AccountStore interface {
	LoadAll(ctx context.Context) ([]*types.Account, error)
	Save(ctx context.Context, accounts []*types.Account) error
}

// Ledger is the account registry and transaction executor. A mutex serializes
// invocations, so no two transactions ever hold conflicting write access to
// the same account.
type Ledger struct {
	mu       sync.Mutex
	programs map[types.Address]Processor
	accounts map[types.Address]*types.Account
	store    AccountStore
}

// SystemProgramID is the address of the native currency program. Payment
// transfers name it in their account list.
var SystemProgramID = types.ZeroAddress

// NewLedger creates an empty ledger. store may be nil for a purely in-memory
// ledger.
func NewLedger(store AccountStore) *Ledger {
	l := &Ledger{
		programs: make(map[types.Address]Processor),
		accounts: make(map[types.Address]*types.Account),
		store:    store,
	}
	l.accounts[SystemProgramID] = &types.Account{Address: SystemProgramID}
	return l
}

// Restore loads all persisted accounts from the store.
func (l *Ledger) Restore(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts, err := l.store.LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load accounts")
	}
	for _, acc := range accounts {
		l.accounts[acc.Address] = acc
	}
	logger.InfoContext(ctx, "Restored accounts from store", slogx.Int("accounts", len(accounts)))
	return nil
}

// Register registers a program processor at its ID.
func (l *Ledger) Register(p Processor) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.programs[p.ID()]; ok {
		return errors.Wrapf(ErrProgramRegistered, "program %s", p.ID())
	}
	l.programs[p.ID()] = p
	// programs are accounts too, so transactions can name them positionally
	if _, ok := l.accounts[p.ID()]; !ok {
		l.accounts[p.ID()] = &types.Account{Address: p.ID()}
	}
	return nil
}

// CreateAccount provisions a new account. Fails if the address is taken.
func (l *Ledger) CreateAccount(ctx context.Context, acc *types.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createAccount(ctx, acc)
}

func (l *Ledger) createAccount(ctx context.Context, acc *types.Account) error {
	if _, ok := l.accounts[acc.Address]; ok {
		return errors.Wrapf(ErrAccountExists, "address %s", acc.Address)
	}
	clone := acc.Clone()
	l.accounts[clone.Address] = clone
	if l.store != nil {
		if err := l.store.Save(ctx, []*types.Account{clone}); err != nil {
			delete(l.accounts, clone.Address)
			return errors.Wrap(err, "failed to persist account")
		}
	}
	return nil
}

// CreateAccountWithSeed provisions a zero-initialized account at the address
// derived from (base, seed, owner), mirroring the derivation the registry
// program uses to verify authority. Returns the derived address.
func (l *Ledger) CreateAccountWithSeed(ctx context.Context, base types.Address, seed string, owner types.Address, space int, balance uint64) (types.Address, error) {
	addr := types.DeriveAddress(base, seed, owner)
	acc := &types.Account{
		Address: addr,
		Owner:   owner,
		Balance: balance,
		Data:    make([]byte, space),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.createAccount(ctx, acc); err != nil {
		return types.Address{}, err
	}
	return addr, nil
}

// Account returns a copy of the account at addr. The copy is detached from
// the ledger; readers cannot mutate live state through it.
func (l *Ledger) Account(addr types.Address) (*types.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[addr]
	if !ok {
		return nil, errors.Wrapf(errs.AccountNotFound, "address %s", addr)
	}
	return acc.Clone(), nil
}

// Invoke executes one transaction. Every account the transaction names is
// snapshotted first; if the processor (or persisting the result) fails, all
// snapshots are restored and the error is returned to the caller unchanged.
func (l *Ledger) Invoke(ctx context.Context, tx Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	program, ok := l.programs[tx.Program]
	if !ok {
		return errors.Wrapf(ErrUnknownProgram, "address %s", tx.Program)
	}
	ctx = logger.WithContext(ctx, slogx.String("program", program.Name()))

	infos := make([]*AccountInfo, 0, len(tx.Accounts))
	touched := make(map[types.Address]*types.Account)
	snapshots := make(map[types.Address]*types.Account)
	for _, meta := range tx.Accounts {
		acc, ok := l.accounts[meta.Address]
		if !ok {
			return errors.Wrapf(errs.AccountNotFound, "address %s", meta.Address)
		}
		if _, seen := snapshots[meta.Address]; !seen {
			snapshots[meta.Address] = acc.Clone()
			touched[meta.Address] = acc
		}
		infos = append(infos, &AccountInfo{Account: acc, Signer: meta.Signer})
	}

	inv := &Invocation{ledger: l, accounts: infos, Data: tx.Data}
	err := program.Process(ctx, inv)
	if err == nil && l.store != nil {
		err = errors.Wrap(l.store.Save(ctx, lo.Values(touched)), "failed to persist accounts")
	}
	if err != nil {
		for addr, snap := range snapshots {
			*l.accounts[addr] = *snap
		}
		logger.DebugContext(ctx, "Invocation aborted, accounts restored",
			slogx.Error(err), slogx.Int("accounts", len(snapshots)))
		return err
	}
	return nil
}

// pay moves native balance between two accounts already resolved by an
// invocation.
func (l *Ledger) pay(from, to *types.Account, amount uint64) error {
	if from.Balance < amount {
		return errors.Wrapf(errs.InsufficientFunds, "balance %d, need %d", from.Balance, amount)
	}
	if to.Balance+amount < to.Balance {
		return errors.Wrap(errs.Overflow, "destination balance")
	}
	from.Balance -= amount
	to.Balance += amount
	return nil
}
