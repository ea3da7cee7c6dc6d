// Package datagateway declares the collaborator primitives the registry
// processor delegates to. Implementations live with the host's builtin
// programs; the processor only sees these interfaces.
package datagateway

import (
	"context"

	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
)

// TokenTransferrer moves token units between token-holding accounts.
type TokenTransferrer interface {
	ProgramID() types.Address
	Transfer(ctx context.Context, src, dst, authority *runtime.AccountInfo, amount uint64) error
}

// MetadataUpdater rewrites a token's metadata account.
type MetadataUpdater interface {
	ProgramID() types.Address
	Update(ctx context.Context, metadata, authority *runtime.AccountInfo, expectedMint types.Address, newURI, newName string, markPrimarySale bool) error
}
