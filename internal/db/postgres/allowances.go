package pg

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	allowancesTable   = "allowances"
	allowancesOwner   = "owner"
	allowancesSpender = "spender"
	allowancesAmount  = "amount"
)

type allowancesQ struct {
	db *pgdb.DB
}

func (q *allowancesQ) Get(owner, spender common.Address) (*uint256.Int, error) {
	stmt := squirrel.
		Select(allowancesAmount).
		From(allowancesTable).
		Where(squirrel.Eq{
			allowancesOwner:   db.AddressKey(owner),
			allowancesSpender: db.AddressKey(spender),
		})

	amount, err := getAmount(q.db, stmt)
	return amount, errors.Wrap(err, "failed to get allowance")
}

func (q *allowancesQ) Set(owner, spender common.Address, amount *uint256.Int) error {
	stmt := squirrel.
		Insert(allowancesTable).
		SetMap(map[string]interface{}{
			allowancesOwner:   db.AddressKey(owner),
			allowancesSpender: db.AddressKey(spender),
			allowancesAmount:  amount.Dec(),
		}).
		Suffix("ON CONFLICT (owner, spender) DO UPDATE SET amount = EXCLUDED.amount")

	return errors.Wrap(q.db.Exec(stmt), "failed to set allowance")
}
