package pg

import (
	"database/sql"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	balancesTable   = "balances"
	balancesAccount = "account"
	balancesAmount  = "amount"
)

type balancesQ struct {
	db *pgdb.DB
}

func (q *balancesQ) Get(account common.Address) (*uint256.Int, error) {
	stmt := squirrel.
		Select(balancesAmount).
		From(balancesTable).
		Where(squirrel.Eq{balancesAccount: db.AddressKey(account)})

	amount, err := getAmount(q.db, stmt)
	return amount, errors.Wrap(err, "failed to get balance")
}

func (q *balancesQ) Set(account common.Address, amount *uint256.Int) error {
	stmt := squirrel.
		Insert(balancesTable).
		SetMap(map[string]interface{}{
			balancesAccount: db.AddressKey(account),
			balancesAmount:  amount.Dec(),
		}).
		Suffix("ON CONFLICT (account) DO UPDATE SET amount = EXCLUDED.amount")

	return errors.Wrap(q.db.Exec(stmt), "failed to set balance")
}

func (q *balancesQ) Sum() (*uint256.Int, error) {
	stmt := squirrel.
		Select("COALESCE(SUM(amount), 0)").
		From(balancesTable)

	amount, err := getAmount(q.db, stmt)
	return amount, errors.Wrap(err, "failed to sum balances")
}

func getAmount(conn *pgdb.DB, stmt squirrel.SelectBuilder) (*uint256.Int, error) {
	var raw string
	err := conn.Get(&raw, stmt)
	if errors.Is(err, sql.ErrNoRows) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}

	amount, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed stored amount %q", raw)
	}

	return amount, nil
}
