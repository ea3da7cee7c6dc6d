package borsh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(7)
	w.WriteUint32(1_000_000)
	w.WriteUint64(18_446_744_073_709_551_615)
	w.WriteString("ipfs://bafy")
	w.WriteBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	var arr [32]byte
	arr[0], arr[31] = 0x01, 0xff
	w.WriteBytes32(arr)

	r := NewReader(w.Bytes())

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), u8)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1_000_000), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(18_446_744_073_709_551_615), u64)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "ipfs://bafy", s)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	got, err := r.ReadBytes32()
	require.NoError(t, err)
	assert.Equal(t, arr, got)

	assert.Zero(t, r.Remaining())
}

func TestStringEncoding(t *testing.T) {
	w := NewWriter()
	w.WriteString("abc")
	// u32 little-endian length prefix followed by raw bytes
	assert.Equal(t, []byte{3, 0, 0, 0, 'a', 'b', 'c'}, w.Bytes())
}

func TestReadTruncated(t *testing.T) {
	test := func(name string, read func(r *Reader) error) {
		t.Run(name, func(t *testing.T) {
			r := NewReader([]byte{1})
			assert.ErrorIs(t, read(r), ErrUnexpectedEOF)
		})
	}

	test("uint32", func(r *Reader) error { _, err := r.ReadUint32(); return err })
	test("uint64", func(r *Reader) error { _, err := r.ReadUint64(); return err })
	test("bytes32", func(r *Reader) error { _, err := r.ReadBytes32(); return err })
}

func TestReadStringLengthExceedsInput(t *testing.T) {
	// length prefix claims 100 bytes, only 2 present
	r := NewReader([]byte{100, 0, 0, 0, 'a', 'b'})
	_, err := r.ReadString()
	assert.ErrorIs(t, err, ErrStringTooLarge)
}

func TestReadStringInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{2, 0, 0, 0, 0xff, 0xfe})
	_, err := r.ReadString()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestReaderOffset(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	_, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Offset())
	assert.Equal(t, 4, r.Remaining())
}
