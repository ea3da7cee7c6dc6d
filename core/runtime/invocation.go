package runtime

import (
	"context"

	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/types"
)

const ErrNotEnoughAccounts = errs.ErrorKind("runtime: not enough accounts supplied")

// Processor is a program registered on the ledger. Process receives every
// invocation addressed to the program's ID and returns nil only if all of
// its effects should persist.
type Processor interface {
	Name() string
	ID() types.Address
	Process(ctx context.Context, inv *Invocation) error
}

// AccountMeta names one account of a transaction's positional account list.
// Signer records the host-verified fact that the holder of the address
// authorized the transaction; signature verification itself happens before
// the runtime is reached.
type AccountMeta struct {
	Address types.Address `json:"address"`
	Signer  bool          `json:"signer"`
}

// Transaction is one instruction addressed to a program, together with the
// ordered account list the instruction operates on.
type Transaction struct {
	Program  types.Address `json:"program"`
	Accounts []AccountMeta `json:"accounts"`
	Data     []byte        `json:"data"`
}

// AccountInfo is a resolved account as seen by a processor during one
// invocation. Signer is positional: the same account may appear twice in a
// transaction with different signer flags.
type AccountInfo struct {
	*types.Account
	Signer bool
}

// Invocation carries the resolved accounts and raw instruction data of one
// transaction into a processor. Accounts are live: mutations are visible to
// the ledger and are rolled back wholesale if the processor errors.
type Invocation struct {
	ledger   *Ledger
	accounts []*AccountInfo
	cursor   int
	Data     []byte
}

// NextAccount returns the next account of the positional list, in the order
// the transaction supplied them.
func (inv *Invocation) NextAccount() (*AccountInfo, error) {
	if inv.cursor >= len(inv.accounts) {
		return nil, ErrNotEnoughAccounts
	}
	info := inv.accounts[inv.cursor]
	inv.cursor++
	return info, nil
}

// Accounts returns the full positional account list.
func (inv *Invocation) Accounts() []*AccountInfo {
	return inv.accounts
}

// Pay moves amount units of native currency from one invocation account to
// another. This is the runtime's payment primitive; callers are responsible
// for having verified that the source authorized the debit.
func (inv *Invocation) Pay(from, to *types.Account, amount uint64) error {
	return inv.ledger.pay(from, to, amount)
}
