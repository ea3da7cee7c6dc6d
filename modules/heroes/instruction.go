package heroes

import (
	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/lib/borsh"
)

// Instruction opcode tags, encoded as the first byte of the instruction data.
const (
	OpAddRecord uint8 = iota
	OpUpdateRecord
	OpBuyRecord
	// OpNoop is a diagnostic instruction with no arguments and no effects.
	OpNoop
)

// AddRecordArgs adds (or overwrites) the record at HeroID's slot.
// KeyNFT is passed in its text form.
type AddRecordArgs struct {
	HeroID      uint8
	ContentURI  string
	KeyNFT      string
	LastPrice   uint64
	ListedPrice uint64
}

// UpdateRecordArgs re-prices and re-describes the record at HeroID's slot.
type UpdateRecordArgs struct {
	HeroID     uint8
	KeyNFT     types.Address
	NewPrice   uint64
	ContentURI string
}

// BuyRecordArgs purchases the record at HeroID's slot. DeadURI and DeadName
// replace the old token's metadata, marking it retired.
type BuyRecordArgs struct {
	HeroID   uint8
	DeadURI  string
	DeadName string
}

// Instruction is one decoded instruction. Exactly one args field is set,
// matching Op.
type Instruction struct {
	Op           uint8
	AddRecord    *AddRecordArgs
	UpdateRecord *UpdateRecordArgs
	BuyRecord    *BuyRecordArgs
}

// UnpackInstruction decodes the opcode tag and the tag-specific argument
// payload from the raw instruction data.
func UnpackInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, errors.Wrap(ErrInvalidInstruction, "empty instruction data")
	}
	tag, rest := data[0], data[1:]

	switch tag {
	case OpAddRecord:
		args, err := unpackAddRecordArgs(rest)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: tag, AddRecord: args}, nil
	case OpUpdateRecord:
		args, err := unpackUpdateRecordArgs(rest)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: tag, UpdateRecord: args}, nil
	case OpBuyRecord:
		args, err := unpackBuyRecordArgs(rest)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: tag, BuyRecord: args}, nil
	case OpNoop:
		return Instruction{Op: tag}, nil
	default:
		return Instruction{}, errors.Wrapf(ErrInvalidInstruction, "unknown tag %d", tag)
	}
}

func unpackAddRecordArgs(data []byte) (*AddRecordArgs, error) {
	r := borsh.NewReader(data)
	args := &AddRecordArgs{}
	var err error
	if args.HeroID, err = r.ReadUint8(); err != nil {
		return nil, errors.Wrap(err, "add-record hero id")
	}
	if args.ContentURI, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "add-record content uri")
	}
	if args.KeyNFT, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "add-record nft key")
	}
	if args.LastPrice, err = r.ReadUint64(); err != nil {
		return nil, errors.Wrap(err, "add-record last price")
	}
	if args.ListedPrice, err = r.ReadUint64(); err != nil {
		return nil, errors.Wrap(err, "add-record listed price")
	}
	return args, nil
}

func unpackUpdateRecordArgs(data []byte) (*UpdateRecordArgs, error) {
	r := borsh.NewReader(data)
	args := &UpdateRecordArgs{}
	var err error
	if args.HeroID, err = r.ReadUint8(); err != nil {
		return nil, errors.Wrap(err, "update-record hero id")
	}
	if args.KeyNFT, err = r.ReadBytes32(); err != nil {
		return nil, errors.Wrap(err, "update-record nft key")
	}
	if args.NewPrice, err = r.ReadUint64(); err != nil {
		return nil, errors.Wrap(err, "update-record new price")
	}
	if args.ContentURI, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "update-record content uri")
	}
	return args, nil
}

func unpackBuyRecordArgs(data []byte) (*BuyRecordArgs, error) {
	r := borsh.NewReader(data)
	args := &BuyRecordArgs{}
	var err error
	if args.HeroID, err = r.ReadUint8(); err != nil {
		return nil, errors.Wrap(err, "buy-record hero id")
	}
	if args.DeadURI, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "buy-record dead uri")
	}
	if args.DeadName, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "buy-record dead name")
	}
	return args, nil
}

// Pack encodes the args with their opcode tag, ready to submit.
func (a AddRecordArgs) Pack() []byte {
	w := borsh.NewWriter()
	w.WriteUint8(OpAddRecord)
	w.WriteUint8(a.HeroID)
	w.WriteString(a.ContentURI)
	w.WriteString(a.KeyNFT)
	w.WriteUint64(a.LastPrice)
	w.WriteUint64(a.ListedPrice)
	return w.Bytes()
}

// Pack encodes the args with their opcode tag, ready to submit.
func (a UpdateRecordArgs) Pack() []byte {
	w := borsh.NewWriter()
	w.WriteUint8(OpUpdateRecord)
	w.WriteUint8(a.HeroID)
	w.WriteBytes32(a.KeyNFT)
	w.WriteUint64(a.NewPrice)
	w.WriteString(a.ContentURI)
	return w.Bytes()
}

// Pack encodes the args with their opcode tag, ready to submit.
func (a BuyRecordArgs) Pack() []byte {
	w := borsh.NewWriter()
	w.WriteUint8(OpBuyRecord)
	w.WriteUint8(a.HeroID)
	w.WriteString(a.DeadURI)
	w.WriteString(a.DeadName)
	return w.Bytes()
}
