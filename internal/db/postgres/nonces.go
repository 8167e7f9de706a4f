package pg

import (
	"database/sql"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	noncesTable   = "nonces"
	noncesAccount = "account"
	noncesNonce   = "nonce"
)

type noncesQ struct {
	db *pgdb.DB
}

func (q *noncesQ) Get(account common.Address) (uint64, error) {
	stmt := squirrel.
		Select(noncesNonce).
		From(noncesTable).
		Where(squirrel.Eq{noncesAccount: db.AddressKey(account)})

	var nonce int64
	err := q.db.Get(&nonce, stmt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to get nonce")
	}

	return uint64(nonce), nil
}

func (q *noncesQ) Set(account common.Address, nonce uint64) error {
	stmt := squirrel.
		Insert(noncesTable).
		SetMap(map[string]interface{}{
			noncesAccount: db.AddressKey(account),
			noncesNonce:   int64(nonce),
		}).
		Suffix("ON CONFLICT (account) DO UPDATE SET nonce = EXCLUDED.nonce")

	return errors.Wrap(q.db.Exec(stmt), "failed to set nonce")
}
