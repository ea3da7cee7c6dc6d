package runtime

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProcessor runs an arbitrary function as a program.
type testProcessor struct {
	id      types.Address
	process func(ctx context.Context, inv *Invocation) error
}

func (p *testProcessor) Name() string      { return "test" }
func (p *testProcessor) ID() types.Address { return p.id }
func (p *testProcessor) Process(ctx context.Context, inv *Invocation) error {
	return p.process(ctx, inv)
}

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestInvokeDispatch(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)

	called := false
	program := &testProcessor{id: addr(1), process: func(ctx context.Context, inv *Invocation) error {
		called = true
		assert.Equal(t, []byte{42}, inv.Data)
		return nil
	}}
	require.NoError(t, ledger.Register(program))

	err := ledger.Invoke(ctx, Transaction{Program: addr(1), Data: []byte{42}})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestInvokeUnknownProgram(t *testing.T) {
	ledger := NewLedger(nil)
	err := ledger.Invoke(context.Background(), Transaction{Program: addr(9)})
	assert.ErrorIs(t, err, ErrUnknownProgram)
}

func TestInvokeUnknownAccount(t *testing.T) {
	ledger := NewLedger(nil)
	program := &testProcessor{id: addr(1), process: func(ctx context.Context, inv *Invocation) error { return nil }}
	require.NoError(t, ledger.Register(program))

	err := ledger.Invoke(context.Background(), Transaction{
		Program:  addr(1),
		Accounts: []AccountMeta{{Address: addr(7)}},
	})
	assert.ErrorIs(t, err, errs.AccountNotFound)
}

func TestInvokeRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{
		Address: addr(2),
		Balance: 100,
		Data:    []byte{1, 2, 3},
	}))

	boom := errors.New("boom")
	program := &testProcessor{id: addr(1), process: func(ctx context.Context, inv *Invocation) error {
		acc, err := inv.NextAccount()
		require.NoError(t, err)
		acc.Data[0] = 0xff
		acc.Balance = 0
		return boom
	}}
	require.NoError(t, ledger.Register(program))

	err := ledger.Invoke(ctx, Transaction{
		Program:  addr(1),
		Accounts: []AccountMeta{{Address: addr(2)}},
	})
	require.ErrorIs(t, err, boom)

	acc, err := ledger.Account(addr(2))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, acc.Data)
	assert.Equal(t, uint64(100), acc.Balance)
}

func TestInvokeCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{Address: addr(2), Data: []byte{0}}))

	program := &testProcessor{id: addr(1), process: func(ctx context.Context, inv *Invocation) error {
		acc, err := inv.NextAccount()
		require.NoError(t, err)
		acc.Data[0] = 0xff
		return nil
	}}
	require.NoError(t, ledger.Register(program))

	require.NoError(t, ledger.Invoke(ctx, Transaction{
		Program:  addr(1),
		Accounts: []AccountMeta{{Address: addr(2)}},
	}))

	acc, err := ledger.Account(addr(2))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, acc.Data)
}

func TestNextAccountExhausted(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{Address: addr(2)}))

	program := &testProcessor{id: addr(1), process: func(ctx context.Context, inv *Invocation) error {
		_, err := inv.NextAccount()
		require.NoError(t, err)
		_, err = inv.NextAccount()
		return err
	}}
	require.NoError(t, ledger.Register(program))

	err := ledger.Invoke(ctx, Transaction{
		Program:  addr(1),
		Accounts: []AccountMeta{{Address: addr(2)}},
	})
	assert.ErrorIs(t, err, ErrNotEnoughAccounts)
}

func TestInvocationPay(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{Address: addr(2), Balance: 100}))
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{Address: addr(3), Balance: 5}))

	var amount uint64
	program := &testProcessor{id: addr(10), process: func(ctx context.Context, inv *Invocation) error {
		from, err := inv.NextAccount()
		require.NoError(t, err)
		to, err := inv.NextAccount()
		require.NoError(t, err)
		return inv.Pay(from.Account, to.Account, amount)
	}}
	require.NoError(t, ledger.Register(program))

	pay := func(a uint64) error {
		amount = a
		return ledger.Invoke(ctx, Transaction{
			Program:  addr(10),
			Accounts: []AccountMeta{{Address: addr(2)}, {Address: addr(3)}},
		})
	}

	require.NoError(t, pay(40))
	from, _ := ledger.Account(addr(2))
	to, _ := ledger.Account(addr(3))
	assert.Equal(t, uint64(60), from.Balance)
	assert.Equal(t, uint64(45), to.Balance)

	// overdraw aborts and leaves balances untouched
	err := pay(1000)
	require.ErrorIs(t, err, errs.InsufficientFunds)
	from, _ = ledger.Account(addr(2))
	to, _ = ledger.Account(addr(3))
	assert.Equal(t, uint64(60), from.Balance)
	assert.Equal(t, uint64(45), to.Balance)
}

func TestCreateAccountWithSeed(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)

	base := addr(4)
	owner := addr(5)
	derived, err := ledger.CreateAccountWithSeed(ctx, base, "seed", owner, 64, 10)
	require.NoError(t, err)
	assert.Equal(t, types.DeriveAddress(base, "seed", owner), derived)

	acc, err := ledger.Account(derived)
	require.NoError(t, err)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, uint64(10), acc.Balance)
	assert.Len(t, acc.Data, 64)

	// double provisioning fails
	_, err = ledger.CreateAccountWithSeed(ctx, base, "seed", owner, 64, 10)
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestAccountReturnsDetachedCopy(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(nil)
	require.NoError(t, ledger.CreateAccount(ctx, &types.Account{Address: addr(2), Data: []byte{1}}))

	acc, err := ledger.Account(addr(2))
	require.NoError(t, err)
	acc.Data[0] = 0xff

	again, err := ledger.Account(addr(2))
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, again.Data)
}
