package pg

import (
	"github.com/Masterminds/squirrel"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	supplyTable  = "supply"
	supplyId     = "id"
	supplyAmount = "amount"

	supplyRowId = 1
)

type supplyQ struct {
	db *pgdb.DB
}

func (q *supplyQ) Get() (*uint256.Int, error) {
	stmt := squirrel.
		Select(supplyAmount).
		From(supplyTable).
		Where(squirrel.Eq{supplyId: supplyRowId})

	amount, err := getAmount(q.db, stmt)
	return amount, errors.Wrap(err, "failed to get supply")
}

func (q *supplyQ) Set(amount *uint256.Int) error {
	stmt := squirrel.
		Insert(supplyTable).
		SetMap(map[string]interface{}{
			supplyId:     supplyRowId,
			supplyAmount: amount.Dec(),
		}).
		Suffix("ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount")

	return errors.Wrap(q.db.Exec(stmt), "failed to set supply")
}
