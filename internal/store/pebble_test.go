package store

import (
	"context"
	"testing"

	"github.com/herohall/registry/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func TestSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewPebble(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	accounts := []*types.Account{
		{Address: addr(1), Owner: addr(9), Balance: 500, Data: []byte{1, 2, 3}},
		{Address: addr(2), Owner: addr(9), Balance: 0, Data: make([]byte, 250)},
		{Address: addr(3), Owner: types.ZeroAddress, Balance: 42},
	}
	require.NoError(t, s.Save(ctx, accounts))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	byAddr := make(map[types.Address]*types.Account)
	for _, acc := range loaded {
		byAddr[acc.Address] = acc
	}
	for _, want := range accounts {
		got, ok := byAddr[want.Address]
		require.True(t, ok, "missing account %s", want.Address)
		assert.Equal(t, want.Owner, got.Owner)
		assert.Equal(t, want.Balance, got.Balance)
		assert.Equal(t, len(want.Data), len(got.Data))
		assert.Equal(t, append([]byte{}, want.Data...), append([]byte{}, got.Data...))
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s, err := NewPebble(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	acc := &types.Account{Address: addr(1), Owner: addr(9), Balance: 100, Data: []byte{1}}
	require.NoError(t, s.Save(ctx, []*types.Account{acc}))

	acc.Balance = 250
	acc.Data = []byte{7, 8}
	require.NoError(t, s.Save(ctx, []*types.Account{acc}))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, uint64(250), loaded[0].Balance)
	assert.Equal(t, []byte{7, 8}, loaded[0].Data)
}

func TestLoadAllEmpty(t *testing.T) {
	s, err := NewPebble(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
