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
	requestsTable      = "consumed_requests"
	requestsRequestId  = "request_id"
	requestsAccount    = "account"
	requestsConsumedAt = "consumed_at"
)

type requestsQ struct {
	db *pgdb.DB
}

func (q *requestsQ) Get(id common.Hash) (*db.ConsumedRequest, error) {
	stmt := squirrel.
		Select("*").
		From(requestsTable).
		Where(squirrel.Eq{requestsRequestId: db.RequestKey(id)})

	var request db.ConsumedRequest
	err := q.db.Get(&request, stmt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get consumed request")
	}

	return &request, nil
}

func (q *requestsQ) Insert(request db.ConsumedRequest) error {
	stmt := squirrel.
		Insert(requestsTable).
		SetMap(map[string]interface{}{
			requestsRequestId:  request.RequestId,
			requestsAccount:    request.Account,
			requestsConsumedAt: request.ConsumedAt,
		})

	if err := q.db.Exec(stmt); err != nil {
		if isUniqueViolation(err) {
			return db.ErrAlreadyConsumed
		}

		return errors.Wrap(err, "failed to insert consumed request")
	}

	return nil
}
