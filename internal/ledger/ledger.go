package ledger

import (
	"sync"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/replay"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
)

type Variant string

const (
	// VariantIssuing keeps the balances of an asset issued by the ledger itself.
	VariantIssuing Variant = "issuing"
	// VariantCustody keeps the balances of an external asset pooled in custody.
	VariantCustody Variant = "custody"
)

// Ledger is the custodial value ledger. Every mutation runs in a single
// state transaction under the ledger-wide lock, and the events it records
// are published only after the transaction commits.
type Ledger struct {
	mu sync.Mutex

	db         db.StateQ
	authorizer *signature.Authorizer
	asset      custody.Asset
	hub        *events.Hub
	logger     *logan.Entry
}

// New creates the ledger. A nil asset selects the issuing variant.
func New(
	state db.StateQ,
	authorizer *signature.Authorizer,
	asset custody.Asset,
	hub *events.Hub,
	logger *logan.Entry,
) *Ledger {
	if hub == nil {
		hub = events.NewHub()
	}

	return &Ledger{
		db:         state,
		authorizer: authorizer,
		asset:      asset,
		hub:        hub,
		logger:     logger.WithField("component", "ledger"),
	}
}

func (l *Ledger) Variant() Variant {
	if l.asset != nil {
		return VariantCustody
	}

	return VariantIssuing
}

// Address is the ledger instance address the authorizations are bound to.
func (l *Ledger) Address() common.Address {
	return l.authorizer.Domain().VerifyingContract
}

func (l *Ledger) Authorizer() *signature.Authorizer {
	return l.authorizer
}

func (l *Ledger) Hub() *events.Hub {
	return l.hub
}

// state is the set of components bound to one state transaction.
type state struct {
	q        db.StateQ
	recorder *events.Recorder
	roles    *access.Registry
	token    *token.Token
}

func (l *Ledger) bind(q db.StateQ, recorder *events.Recorder) *state {
	return &state{
		q:        q,
		recorder: recorder,
		roles:    access.NewRegistry(q.Roles(), recorder),
		token:    token.New(q, recorder),
	}
}

func (l *Ledger) mutate(f func(s *state) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.db.New()
	recorder := events.NewRecorder(q.Events())

	err := q.Transaction(func() error {
		if err := q.Lock(); err != nil {
			return err
		}

		return f(l.bind(q, recorder))
	})
	if err != nil {
		return err
	}

	l.hub.Publish(recorder.Recorded()...)

	return nil
}

func (l *Ledger) view() *state {
	return l.bind(l.db.New(), nil)
}

func (l *Ledger) replayGuard(s *state) (replay.Guard, error) {
	guard, err := replay.NewGuard(l.authorizer.Policy(), s.q)
	return guard, errors.Wrap(err, "failed to create replay guard")
}
