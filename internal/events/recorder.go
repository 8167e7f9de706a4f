package events

import (
	"encoding/json"
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/pkg/errors"
)

// Recorder appends events to the audit log inside the current state transaction
// and keeps them so that they can be published once the transaction commits.
type Recorder struct {
	events   db.EventsQ
	recorded []db.Event
}

func NewRecorder(events db.EventsQ) *Recorder {
	return &Recorder{events: events}
}

func (r *Recorder) Record(eventType types.EventType, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event payload")
	}

	event := db.Event{
		Type:      eventType.String(),
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}

	if event.Id, err = r.events.Insert(event); err != nil {
		return errors.Wrapf(err, "failed to record %s event", eventType)
	}

	r.recorded = append(r.recorded, event)

	return nil
}

func (r *Recorder) Recorded() []db.Event {
	return r.recorded
}
