// Package store persists the ledger's account registry in a pebble database.
// Keys are raw account addresses; values are a borsh encoding of owner,
// balance and data region.
package store

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/lib/borsh"
)

type PebbleStore struct {
	db *pebble.DB
}

// NewPebble opens or creates the account store in directory.
func NewPebble(directory string) (*PebbleStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}
	db, err := pebble.Open(directory, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pebble db")
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error {
	return errors.WithStack(s.db.Close())
}

// LoadAll reads every persisted account.
func (s *PebbleStore) LoadAll(ctx context.Context) ([]*types.Account, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create iterator")
	}
	defer iter.Close()

	var accounts []*types.Account
	for iter.First(); iter.Valid(); iter.Next() {
		addr, err := types.AddressFromBytes(iter.Key())
		if err != nil {
			return nil, errors.Wrap(err, "corrupt account key")
		}
		acc, err := decodeAccount(addr, iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt account %s", addr)
		}
		accounts = append(accounts, acc)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterator error")
	}
	return accounts, nil
}

// Save writes the given accounts in one batch.
func (s *PebbleStore) Save(ctx context.Context, accounts []*types.Account) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	for _, acc := range accounts {
		if err := batch.Set(acc.Address.Bytes(), encodeAccount(acc), nil); err != nil {
			return errors.Wrapf(err, "failed to stage account %s", acc.Address)
		}
	}
	return errors.Wrap(batch.Commit(pebble.Sync), "failed to commit batch")
}

func encodeAccount(acc *types.Account) []byte {
	w := borsh.NewWriter()
	w.WriteBytes32(acc.Owner)
	w.WriteUint64(acc.Balance)
	w.WriteBytes(acc.Data)
	return w.Bytes()
}

func decodeAccount(addr types.Address, value []byte) (*types.Account, error) {
	r := borsh.NewReader(value)
	owner, err := r.ReadBytes32()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	balance, err := r.ReadUint64()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	data, err := r.ReadBytes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &types.Account{Address: addr, Owner: owner, Balance: balance, Data: data}, nil
}
