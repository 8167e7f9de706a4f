package pg

import (
	"fmt"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	eventsTable     = "events"
	eventsId        = "id"
	eventsType      = "type"
	eventsPayload   = "payload"
	eventsCreatedAt = "created_at"

	defaultEventsLimit = 100
)

type eventsQ struct {
	db *pgdb.DB
}

func (q *eventsQ) Insert(event db.Event) (int64, error) {
	stmt := squirrel.
		Insert(eventsTable).
		SetMap(map[string]interface{}{
			eventsType: event.Type,
			// jsonb does not accept bytea-encoded parameters
			eventsPayload:   string(event.Payload),
			eventsCreatedAt: event.CreatedAt,
		}).
		Suffix("RETURNING id")

	var id int64
	if err := q.db.Get(&id, stmt); err != nil {
		return 0, errors.Wrap(err, "failed to insert event")
	}

	return id, nil
}

func (q *eventsQ) Select(selector db.EventsSelector) ([]db.Event, error) {
	stmt := squirrel.
		Select("*").
		From(eventsTable).
		Where(squirrel.Gt{eventsId: selector.AfterId}).
		OrderBy(fmt.Sprintf("%s ASC", eventsId))

	if selector.Type != nil {
		stmt = stmt.Where(squirrel.Eq{eventsType: *selector.Type})
	}

	limit := selector.Limit
	if limit == 0 {
		limit = defaultEventsLimit
	}
	stmt = stmt.Limit(limit)

	var events []db.Event
	if err := q.db.Select(&events, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select events")
	}

	return events, nil
}
