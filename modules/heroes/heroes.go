// Package heroes implements the hero-registry ledger program: a fixed-slot
// catalog of token-bound listings held in a single repository account, with
// instructions to add a record, re-price it and buy it.
package heroes

import "github.com/herohall/registry/common/errs"

const (
	// RecordSize is the fixed byte width of one catalog slot. It bounds the
	// worst-case serialized record, content uri included.
	RecordSize = 250

	// SlotCount is the repository's fixed capacity.
	SlotCount = 12

	// RepoAccountSeed is the seed string the repository account's address is
	// derived with. Authority checks recompute the derivation from the
	// candidate admin identity and compare.
	RepoAccountSeed = "hallofheros"

	// RepoAccountSize is the total size of the repository's data region.
	RepoAccountSize = RecordSize * SlotCount
)

const (
	ErrInvalidInstruction = errs.ErrorKind("heroes: invalid instruction")
	ErrNotAuthorized      = errs.ErrorKind("heroes: repository is not derived from signer, no authority")
	ErrOwnershipMismatch  = errs.ErrorKind("heroes: token is not held by expected owner")
	ErrInvalidTokenKey    = errs.ErrorKind("heroes: record token identity does not match supplied key")
	ErrInvalidNFTKey      = errs.ErrorKind("heroes: record token identity does not match nft key")
	ErrRecordTooLarge     = errs.ErrorKind("heroes: record does not fit its slot")
	ErrMalformedRecord    = errs.ErrorKind("heroes: malformed record")
	ErrSlotOutOfRange     = errs.ErrorKind("heroes: slot id out of range")
)
