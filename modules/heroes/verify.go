package heroes

import (
	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/internal/token"
)

// verifyAdminAuthority recomputes the repository address the candidate admin
// identity would have provisioned and requires it to match the supplied
// repository account. Admin authority is structural: no roster is stored,
// only the identity the repository address was derived from can pass.
func verifyAdminAuthority(admin, repository, programID types.Address) error {
	expected := types.DeriveAddress(admin, RepoAccountSeed, programID)
	if expected != repository {
		return errors.Wrapf(ErrNotAuthorized, "admin %s", admin)
	}
	return nil
}

// verifyTokenHolder requires the token-holding account to record exactly the
// expected holder and mint, so a caller cannot substitute an unrelated token
// account to pass ownership checks.
func verifyTokenHolder(tokenAccount *runtime.AccountInfo, holder, mint types.Address) error {
	state, err := token.UnpackAccount(tokenAccount.Data)
	if err != nil {
		return err
	}
	if state.Holder != holder || state.Mint != mint {
		return errors.Wrapf(ErrOwnershipMismatch, "token account %s", tokenAccount.Address)
	}
	return nil
}
