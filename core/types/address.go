package types

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

// AddressLength is the byte length of every account address.
const AddressLength = 32

// Address identifies an account on the ledger.
type Address [AddressLength]byte

var ZeroAddress = Address{}

var ErrInvalidAddress = errors.New("invalid address")

func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, errors.Wrapf(ErrInvalidAddress, "expected %d bytes, got %d", AddressLength, len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

func AddressFromString(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	return AddressFromBytes(b)
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// DeriveAddress computes the address of an account provisioned with a seed:
// sha256(base || seed || namespace). The derivation is one-way, so holding
// an account at the derived address proves it was provisioned from base.
func DeriveAddress(base Address, seed string, namespace Address) Address {
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(namespace[:])
	var addr Address
	copy(addr[:], h.Sum(nil))
	return addr
}
