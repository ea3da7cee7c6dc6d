// Package borsh implements the subset of the borsh serialization format used
// by the registry's account layouts: little-endian fixed-width integers,
// u32-length-prefixed UTF-8 strings and fixed 32-byte arrays.
package borsh

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/herohall/registry/common/errs"
)

const (
	ErrUnexpectedEOF  = errs.ErrorKind("borsh: unexpected end of input")
	ErrInvalidUTF8    = errs.ErrorKind("borsh: string is not valid utf-8")
	ErrStringTooLarge = errs.ErrorKind("borsh: string length exceeds input")
)

// Reader consumes borsh-encoded values from a byte slice.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadString reads a u32-length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if uint64(length) > uint64(r.Remaining()) {
		return "", ErrStringTooLarge
	}
	b, err := r.take(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// ReadBytes reads a u32-length-prefixed byte slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(length) > uint64(r.Remaining()) {
		return nil, ErrStringTooLarge
	}
	b, err := r.take(int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadBytes32 reads a fixed 32-byte array.
func (r *Reader) ReadBytes32() ([32]byte, error) {
	var out [32]byte
	b, err := r.take(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// Writer appends borsh-encoded values to a growing byte slice.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the encoded length written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// WriteString writes a u32-length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBytes writes a u32-length-prefixed byte slice.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteBytes32 writes a fixed 32-byte array.
func (w *Writer) WriteBytes32(b [32]byte) {
	w.buf = append(w.buf, b[:]...)
}
