package ledger

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var ErrInsolvent = errors.New("ledger accounting is inconsistent")

type Solvency struct {
	Supply   *uint256.Int
	Balances *uint256.Int
	// Reserves is the external balance of the custodian, nil in the issuing variant.
	Reserves *uint256.Int
}

// CheckSolvency verifies that the balances sum up to the total supply and,
// in the custody variant, that the supply is backed by the custodian reserves.
func (l *Ledger) CheckSolvency(ctx context.Context) (*Solvency, error) {
	var supply, balances *uint256.Int

	q := l.db.New()
	err := q.Transaction(func() (err error) {
		if err = q.Lock(); err != nil {
			return err
		}

		if supply, err = q.Supply().Get(); err != nil {
			return errors.Wrap(err, "failed to get total supply")
		}
		balances, err = q.Balances().Sum()
		return errors.Wrap(err, "failed to sum balances")
	})
	if err != nil {
		return nil, err
	}

	result := &Solvency{Supply: supply, Balances: balances}
	if !supply.Eq(balances) {
		return result, errors.Wrapf(ErrInsolvent, "balances %s do not match supply %s", balances.Dec(), supply.Dec())
	}

	if l.asset == nil {
		return result, nil
	}

	if result.Reserves, err = l.asset.BalanceOf(ctx, l.asset.Custodian()); err != nil {
		return result, errors.Wrap(err, "failed to get custodian reserves")
	}
	if result.Reserves.Lt(supply) {
		return result, errors.Wrapf(ErrInsolvent, "reserves %s do not cover supply %s", result.Reserves.Dec(), supply.Dec())
	}

	return result, nil
}
