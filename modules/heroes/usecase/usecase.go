package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/common/errs"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/modules/heroes"
)

// Usecase serves read queries against the repository account and forwards
// submitted transactions into the ledger.
type Usecase struct {
	ledger     *runtime.Ledger
	repository types.Address
}

func New(ledger *runtime.Ledger, repository types.Address) *Usecase {
	return &Usecase{
		ledger:     ledger,
		repository: repository,
	}
}

// GetHero returns the record at heroID's slot. Unpopulated slots report
// errs.NotFound.
func (u *Usecase) GetHero(ctx context.Context, heroID uint8) (heroes.HeroRecord, error) {
	repository, err := u.ledger.Account(u.repository)
	if err != nil {
		return heroes.HeroRecord{}, errors.Wrap(err, "failed to read repository account")
	}
	record, err := heroes.UnpackRecord(repository.Data, heroID)
	if err != nil {
		return heroes.HeroRecord{}, errors.Wrapf(err, "failed to unpack record %d", heroID)
	}
	if record.KeyNFT.IsZero() {
		return heroes.HeroRecord{}, errors.Wrapf(errs.NotFound, "hero %d", heroID)
	}
	return record, nil
}

// ListHeroes returns every populated slot of the repository.
func (u *Usecase) ListHeroes(ctx context.Context) ([]heroes.HeroRecord, error) {
	repository, err := u.ledger.Account(u.repository)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read repository account")
	}

	records := make([]heroes.HeroRecord, 0, heroes.SlotCount)
	for id := 0; id < heroes.SlotCount; id++ {
		record, err := heroes.UnpackRecord(repository.Data, uint8(id))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to unpack record %d", id)
		}
		if record.KeyNFT.IsZero() {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// SubmitTransaction executes one transaction against the ledger.
func (u *Usecase) SubmitTransaction(ctx context.Context, tx runtime.Transaction) error {
	return u.ledger.Invoke(ctx, tx)
}
