// Package tokenmeta is the metadata collaborator of the registry program.
// Each non-fungible token mint has one metadata account, owned by the
// metadata program, carrying the token's display name and content URI plus a
// flag recording whether its primary sale has happened.
package tokenmeta

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/lib/borsh"
)

// DefaultProgramAddress is the well-known address the metadata program is
// registered at.
var DefaultProgramAddress = types.DeriveAddress(types.ZeroAddress, "token-metadata-program", types.ZeroAddress)

// Metadata is the parsed state of a metadata account:
// mint (32) | primary sale flag (1) | name (string) | uri (string).
type Metadata struct {
	Mint                types.Address
	PrimarySaleHappened bool
	Name                string
	URI                 string
}

// UnpackMetadata parses a metadata account's data region.
func UnpackMetadata(data []byte) (Metadata, error) {
	r := borsh.NewReader(data)
	mint, err := r.ReadBytes32()
	if err != nil {
		return Metadata{}, errors.Wrap(errs.InvalidAccountData, "metadata mint")
	}
	flag, err := r.ReadUint8()
	if err != nil {
		return Metadata{}, errors.Wrap(errs.InvalidAccountData, "metadata primary sale flag")
	}
	name, err := r.ReadString()
	if err != nil {
		return Metadata{}, errors.Wrap(errs.InvalidAccountData, "metadata name")
	}
	uri, err := r.ReadString()
	if err != nil {
		return Metadata{}, errors.Wrap(errs.InvalidAccountData, "metadata uri")
	}
	return Metadata{Mint: mint, PrimarySaleHappened: flag != 0, Name: name, URI: uri}, nil
}

// Pack writes the metadata into data, zero-padding the remainder. Fails if
// the serialized form does not fit.
func (m Metadata) Pack(data []byte) error {
	w := borsh.NewWriter()
	w.WriteBytes32(m.Mint)
	if m.PrimarySaleHappened {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
	w.WriteString(m.Name)
	w.WriteString(m.URI)
	if w.Len() > len(data) {
		return errors.Wrapf(errs.InvalidAccountData, "metadata needs %d bytes, account holds %d", w.Len(), len(data))
	}
	copy(data, w.Bytes())
	for i := w.Len(); i < len(data); i++ {
		data[i] = 0
	}
	return nil
}

// Program implements the metadata-update primitive.
type Program struct {
	id types.Address
}

func NewProgram(id types.Address) *Program {
	return &Program{id: id}
}

func (p *Program) Name() string {
	return "token-metadata"
}

func (p *Program) ID() types.Address {
	return p.id
}

func (p *Program) ProgramID() types.Address {
	return p.id
}

// Process rejects direct invocations; the program is reached through Update.
func (p *Program) Process(ctx context.Context, inv *runtime.Invocation) error {
	return errors.Wrap(errs.InvalidAccountData, "metadata program accepts no direct instructions")
}

// Update rewrites the metadata account's uri and name and optionally marks
// the primary sale as having happened. The account must be owned by the
// metadata program and must belong to expectedMint, and the authority must
// have signed.
func (p *Program) Update(ctx context.Context, metadata, authority *runtime.AccountInfo, expectedMint types.Address, newURI, newName string, markPrimarySale bool) error {
	if !authority.Signer {
		return errors.Wrapf(errs.MissingSignature, "metadata update authority %s", authority.Address)
	}
	if metadata.Owner != p.id {
		return errors.Wrap(errs.InvalidAccountData, "metadata account not owned by metadata program")
	}

	state, err := UnpackMetadata(metadata.Data)
	if err != nil {
		return err
	}
	if state.Mint != expectedMint {
		return errors.Wrapf(errs.InvalidAccountData, "metadata mint %s, expected %s", state.Mint, expectedMint)
	}

	state.URI = newURI
	state.Name = newName
	if markPrimarySale {
		state.PrimarySaleHappened = true
	}
	return state.Pack(metadata.Data)
}

var _ runtime.Processor = (*Program)(nil)
