package types

// Account is one ledger account: a native balance plus an opaque byte region
// interpreted by the program that owns it.
type Account struct {
	Address Address
	Owner   Address // program that owns Data and may mutate it
	Balance uint64
	Data    []byte
}

// Clone returns a deep copy of the account. Used by the runtime to snapshot
// pre-invocation state.
func (a *Account) Clone() *Account {
	clone := *a
	clone.Data = make([]byte, len(a.Data))
	copy(clone.Data, a.Data)
	return &clone
}
