package pg

import (
	"strings"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	// arbitrary constant shared by every service instance working with the same database
	ledgerLockId = 0x7e5a_11ed

	uniqueViolationCode = "23505"
)

type stateQ struct {
	db *pgdb.DB
}

func NewStateQ(db *pgdb.DB) db.StateQ {
	return &stateQ{db: db.Clone()}
}

func (q *stateQ) New() db.StateQ {
	return NewStateQ(q.db)
}

func (q *stateQ) Balances() db.BalancesQ {
	return &balancesQ{db: q.db}
}

func (q *stateQ) Allowances() db.AllowancesQ {
	return &allowancesQ{db: q.db}
}

func (q *stateQ) Supply() db.SupplyQ {
	return &supplyQ{db: q.db}
}

func (q *stateQ) Roles() db.RolesQ {
	return &rolesQ{db: q.db}
}

func (q *stateQ) Nonces() db.NoncesQ {
	return &noncesQ{db: q.db}
}

func (q *stateQ) Requests() db.RequestsQ {
	return &requestsQ{db: q.db}
}

func (q *stateQ) Events() db.EventsQ {
	return &eventsQ{db: q.db}
}

func (q *stateQ) Lock() error {
	return errors.Wrap(
		q.db.ExecRaw("SELECT pg_advisory_xact_lock($1)", ledgerLockId),
		"failed to acquire ledger lock",
	)
}

func (q *stateQ) Transaction(f func() error) error {
	return q.db.Transaction(f)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}

	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
