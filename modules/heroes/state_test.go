package heroes

import (
	"strings"
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

func TestRecordPackUnpack(t *testing.T) {
	data := make([]byte, RepoAccountSize)
	record := HeroRecord{
		HeroID:      3,
		ContentURI:  "ipfs://hero3",
		KeyNFT:      addr(7),
		LastPrice:   100,
		ListedPrice: 150,
	}
	require.NoError(t, record.Pack(data))

	decoded, err := UnpackRecord(data, 3)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestRecordRepackIsByteIdentical(t *testing.T) {
	data := make([]byte, RepoAccountSize)
	record := HeroRecord{HeroID: 5, ContentURI: "ipfs://x", KeyNFT: addr(1), ListedPrice: 42}
	require.NoError(t, record.Pack(data))

	first := make([]byte, RepoAccountSize)
	copy(first, data)

	decoded, err := UnpackRecord(data, 5)
	require.NoError(t, err)
	require.NoError(t, decoded.Pack(data))
	assert.Equal(t, first, data)
}

func TestRecordPackLeavesOtherSlotsUntouched(t *testing.T) {
	data := make([]byte, RepoAccountSize)
	for i := range data {
		data[i] = 0xCC
	}
	record := HeroRecord{HeroID: 1, ContentURI: "u", KeyNFT: addr(2)}
	require.NoError(t, record.Pack(data))

	for i := 0; i < RecordSize; i++ {
		assert.Equal(t, byte(0xCC), data[i], "slot 0 byte %d", i)
	}
	for i := 2 * RecordSize; i < len(data); i++ {
		require.Equal(t, byte(0xCC), data[i], "byte %d past slot 1", i)
	}
}

func TestRecordPackTooLarge(t *testing.T) {
	data := make([]byte, RepoAccountSize)
	before := make([]byte, RepoAccountSize)
	copy(before, data)

	record := HeroRecord{HeroID: 0, ContentURI: strings.Repeat("a", RecordSize)}
	err := record.Pack(data)
	assert.ErrorIs(t, err, ErrRecordTooLarge)
	assert.Equal(t, before, data)
}

func TestRecordSlotOutOfRange(t *testing.T) {
	data := make([]byte, RepoAccountSize)

	_, err := UnpackRecord(data, SlotCount)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	record := HeroRecord{HeroID: SlotCount}
	assert.ErrorIs(t, record.Pack(data), ErrSlotOutOfRange)
}

func TestRecordLargestFittingURI(t *testing.T) {
	// 1 (id) + 4 (len) + uri + 32 (key) + 8 + 8 = RecordSize
	uri := strings.Repeat("a", RecordSize-53)
	data := make([]byte, RepoAccountSize)
	record := HeroRecord{HeroID: 0, ContentURI: uri, KeyNFT: addr(1)}
	require.NoError(t, record.Pack(data))

	decoded, err := UnpackRecord(data, 0)
	require.NoError(t, err)
	assert.Equal(t, uri, decoded.ContentURI)

	record.ContentURI = uri + "a"
	assert.ErrorIs(t, record.Pack(data), ErrRecordTooLarge)
}
