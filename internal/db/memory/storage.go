// Package memory implements the ledger state store in process memory.
// It backs tests and single-process deployments without Postgres.
package memory

import (
	"sync"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var errNestedTransaction = errors.New("nested transactions are not supported")

type allowanceKey struct {
	owner, spender common.Address
}

type snapshot struct {
	balances   map[common.Address]*uint256.Int
	allowances map[allowanceKey]*uint256.Int
	supply     *uint256.Int
	roles      map[common.Hash]map[common.Address]struct{}
	roleAdmins map[common.Hash]common.Hash
	nonces     map[common.Address]uint64
	requests   map[common.Hash]db.ConsumedRequest
	events     []db.Event
}

func newSnapshot() *snapshot {
	return &snapshot{
		balances:   make(map[common.Address]*uint256.Int),
		allowances: make(map[allowanceKey]*uint256.Int),
		supply:     new(uint256.Int),
		roles:      make(map[common.Hash]map[common.Address]struct{}),
		roleAdmins: make(map[common.Hash]common.Hash),
		nonces:     make(map[common.Address]uint64),
		requests:   make(map[common.Hash]db.ConsumedRequest),
	}
}

func (s *snapshot) clone() *snapshot {
	cp := newSnapshot()
	for k, v := range s.balances {
		cp.balances[k] = new(uint256.Int).Set(v)
	}
	for k, v := range s.allowances {
		cp.allowances[k] = new(uint256.Int).Set(v)
	}
	cp.supply = new(uint256.Int).Set(s.supply)
	for role, members := range s.roles {
		set := make(map[common.Address]struct{}, len(members))
		for member := range members {
			set[member] = struct{}{}
		}
		cp.roles[role] = set
	}
	for k, v := range s.roleAdmins {
		cp.roleAdmins[k] = v
	}
	for k, v := range s.nonces {
		cp.nonces[k] = v
	}
	for k, v := range s.requests {
		cp.requests[k] = v
	}
	cp.events = make([]db.Event, len(s.events))
	for i, event := range s.events {
		event.Payload = append([]byte(nil), event.Payload...)
		cp.events[i] = event
	}

	return cp
}

// Storage holds the committed state. Transactions work on a private copy
// that replaces the committed state only when the transaction function succeeds.
type Storage struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *snapshot
}

func NewStorage() *Storage {
	return &Storage{data: newSnapshot()}
}

func NewStateQ(storage *Storage) db.StateQ {
	return &stateQ{storage: storage}
}

type stateQ struct {
	storage *Storage
	tx      *snapshot
}

func (q *stateQ) New() db.StateQ {
	return NewStateQ(q.storage)
}

func (q *stateQ) Balances() db.BalancesQ {
	return &balancesQ{q}
}

func (q *stateQ) Allowances() db.AllowancesQ {
	return &allowancesQ{q}
}

func (q *stateQ) Supply() db.SupplyQ {
	return &supplyQ{q}
}

func (q *stateQ) Roles() db.RolesQ {
	return &rolesQ{q}
}

func (q *stateQ) Nonces() db.NoncesQ {
	return &noncesQ{q}
}

func (q *stateQ) Requests() db.RequestsQ {
	return &requestsQ{q}
}

func (q *stateQ) Events() db.EventsQ {
	return &eventsQ{q}
}

// Lock is a no-op: transactions are already serialized by the storage.
func (q *stateQ) Lock() error {
	return nil
}

func (q *stateQ) Transaction(f func() error) error {
	if q.tx != nil {
		return errNestedTransaction
	}

	q.storage.txMu.Lock()
	defer q.storage.txMu.Unlock()

	q.storage.mu.RLock()
	q.tx = q.storage.data.clone()
	q.storage.mu.RUnlock()

	defer func() { q.tx = nil }()

	if err := f(); err != nil {
		return err
	}

	q.storage.mu.Lock()
	q.storage.data = q.tx
	q.storage.mu.Unlock()

	return nil
}

func (q *stateQ) view(f func(s *snapshot) error) error {
	if q.tx != nil {
		return f(q.tx)
	}

	q.storage.mu.RLock()
	defer q.storage.mu.RUnlock()

	return f(q.storage.data)
}

// update applies f to the transaction copy, or commits immediately outside a transaction.
func (q *stateQ) update(f func(s *snapshot) error) error {
	if q.tx != nil {
		return f(q.tx)
	}

	q.storage.txMu.Lock()
	defer q.storage.txMu.Unlock()
	q.storage.mu.Lock()
	defer q.storage.mu.Unlock()

	return f(q.storage.data)
}
