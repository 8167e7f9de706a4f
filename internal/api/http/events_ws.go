package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/ctx"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/requests"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/resources"
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/ape/problems"
	"gitlab.com/distributed_lab/logan/v3"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// EventsWs streams ledger events. Events recorded after `after_id` are sent
// first, then every newly committed event as it is published.
func EventsWs(w http.ResponseWriter, r *http.Request) {
	var (
		ctxt   = r.Context()
		ledger = ctx.Ledger(ctxt)
		logger = ctx.Logger(ctxt)
	)

	selector, err := requests.EventsSelector(r)
	if err != nil {
		ape.RenderErr(w, problems.BadRequest(err)...)
		return
	}

	// subscribing before reading the backlog so nothing committed in between is lost
	subscription := ledger.Hub().Subscribe()
	defer subscription.Close()

	// `limit` only sizes the backlog pages, the whole backlog is always sent
	page, err := ledger.Events(selector)
	if err != nil {
		logger.WithError(err).Error("failed to select events")
		ape.RenderErr(w, problems.InternalError())
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Debug("websocket upgrade error")
		return
	}
	defer func() { _ = ws.Close() }()

	gracefulClose := make(chan struct{})
	go watchConnectionClosing(ws, gracefulClose)

	lastId := selector.AfterId
	for len(page) > 0 {
		for _, event := range page {
			if err = writeEvent(ws, event); err != nil {
				logger.WithError(err).Debug("failed to write event to websocket")
				return
			}
			lastId = event.Id
		}

		next := selector
		next.AfterId = lastId
		if page, err = ledger.Events(next); err != nil {
			logger.WithError(err).Error("failed to select events")
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "Failed to read events"))
			return
		}
	}

	streamEvents(ctxt, ws, gracefulClose, subscription, selector, lastId, logger)
}

func watchConnectionClosing(ws *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		// collecting errors and close message to signalize writer.
		// note: `ReadMessage` is a blocking operation.
		// note: infinite loop will be broken either by close message or
		//       closed connection by writer goroutine, which immediately
		//       sends an error to a reader.
		mt, _, err := ws.ReadMessage()
		if err != nil || mt == websocket.CloseMessage {
			break
		}
	}
}

func streamEvents(
	ctxt context.Context,
	ws *websocket.Conn,
	connClosed chan struct{},
	subscription *events.Subscription,
	selector db.EventsSelector,
	lastId int64,
	logger *logan.Entry,
) {
	for {
		select {
		case <-connClosed:
			return
		case <-ctxt.Done():
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down"))
			return
		case event, ok := <-subscription.Events():
			if !ok {
				// the hub dropped a lagging subscriber or is shutting down
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "Subscription closed"))
				return
			}
			// already sent as a part of the backlog
			if event.Id <= lastId {
				continue
			}
			if selector.Type != nil && event.Type != *selector.Type {
				continue
			}

			if err := writeEvent(ws, event); err != nil {
				logger.WithError(err).Debug("failed to write event to websocket")
				return
			}
			lastId = event.Id
		}
	}
}

func writeEvent(ws *websocket.Conn, event db.Event) error {
	raw, err := json.Marshal(resources.NewEvent(event))
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	return ws.WriteMessage(websocket.TextMessage, raw)
}
