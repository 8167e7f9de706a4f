package memory

import (
	"bytes"
	"sort"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const defaultEventsLimit = 100

func copyAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}

	return new(uint256.Int).Set(v)
}

type balancesQ struct{ q *stateQ }

func (b *balancesQ) Get(account common.Address) (amount *uint256.Int, err error) {
	err = b.q.view(func(s *snapshot) error {
		amount = copyAmount(s.balances[account])
		return nil
	})

	return amount, err
}

func (b *balancesQ) Set(account common.Address, amount *uint256.Int) error {
	return b.q.update(func(s *snapshot) error {
		s.balances[account] = copyAmount(amount)
		return nil
	})
}

func (b *balancesQ) Sum() (sum *uint256.Int, err error) {
	err = b.q.view(func(s *snapshot) error {
		sum = new(uint256.Int)
		for _, amount := range s.balances {
			if _, overflow := sum.AddOverflow(sum, amount); overflow {
				return errors.New("balances sum overflow")
			}
		}

		return nil
	})

	return sum, err
}

type allowancesQ struct{ q *stateQ }

func (a *allowancesQ) Get(owner, spender common.Address) (amount *uint256.Int, err error) {
	err = a.q.view(func(s *snapshot) error {
		amount = copyAmount(s.allowances[allowanceKey{owner: owner, spender: spender}])
		return nil
	})

	return amount, err
}

func (a *allowancesQ) Set(owner, spender common.Address, amount *uint256.Int) error {
	return a.q.update(func(s *snapshot) error {
		s.allowances[allowanceKey{owner: owner, spender: spender}] = copyAmount(amount)
		return nil
	})
}

type supplyQ struct{ q *stateQ }

func (sq *supplyQ) Get() (amount *uint256.Int, err error) {
	err = sq.q.view(func(s *snapshot) error {
		amount = copyAmount(s.supply)
		return nil
	})

	return amount, err
}

func (sq *supplyQ) Set(amount *uint256.Int) error {
	return sq.q.update(func(s *snapshot) error {
		s.supply = copyAmount(amount)
		return nil
	})
}

type rolesQ struct{ q *stateQ }

func (r *rolesQ) Has(role common.Hash, account common.Address) (has bool, err error) {
	err = r.q.view(func(s *snapshot) error {
		_, has = s.roles[role][account]
		return nil
	})

	return has, err
}

func (r *rolesQ) Insert(role common.Hash, account common.Address) error {
	return r.q.update(func(s *snapshot) error {
		members, ok := s.roles[role]
		if !ok {
			members = make(map[common.Address]struct{})
			s.roles[role] = members
		}
		members[account] = struct{}{}

		return nil
	})
}

func (r *rolesQ) Delete(role common.Hash, account common.Address) error {
	return r.q.update(func(s *snapshot) error {
		delete(s.roles[role], account)
		return nil
	})
}

func (r *rolesQ) Count(role common.Hash) (count int64, err error) {
	err = r.q.view(func(s *snapshot) error {
		count = int64(len(s.roles[role]))
		return nil
	})

	return count, err
}

func (r *rolesQ) Members(role common.Hash) (members []common.Address, err error) {
	err = r.q.view(func(s *snapshot) error {
		members = make([]common.Address, 0, len(s.roles[role]))
		for member := range s.roles[role] {
			members = append(members, member)
		}

		return nil
	})

	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i].Bytes(), members[j].Bytes()) < 0
	})

	return members, err
}

func (r *rolesQ) Admin(role common.Hash) (admin common.Hash, ok bool, err error) {
	err = r.q.view(func(s *snapshot) error {
		admin, ok = s.roleAdmins[role]
		return nil
	})

	return admin, ok, err
}

func (r *rolesQ) SetAdmin(role, admin common.Hash) error {
	return r.q.update(func(s *snapshot) error {
		s.roleAdmins[role] = admin
		return nil
	})
}

type noncesQ struct{ q *stateQ }

func (n *noncesQ) Get(account common.Address) (nonce uint64, err error) {
	err = n.q.view(func(s *snapshot) error {
		nonce = s.nonces[account]
		return nil
	})

	return nonce, err
}

func (n *noncesQ) Set(account common.Address, nonce uint64) error {
	return n.q.update(func(s *snapshot) error {
		s.nonces[account] = nonce
		return nil
	})
}

type requestsQ struct{ q *stateQ }

func (r *requestsQ) Get(id common.Hash) (request *db.ConsumedRequest, err error) {
	err = r.q.view(func(s *snapshot) error {
		if stored, ok := s.requests[id]; ok {
			request = &stored
		}

		return nil
	})

	return request, err
}

func (r *requestsQ) Insert(request db.ConsumedRequest) error {
	return r.q.update(func(s *snapshot) error {
		id := common.HexToHash(request.RequestId)
		if _, ok := s.requests[id]; ok {
			return db.ErrAlreadyConsumed
		}
		s.requests[id] = request

		return nil
	})
}

type eventsQ struct{ q *stateQ }

func (e *eventsQ) Insert(event db.Event) (id int64, err error) {
	err = e.q.update(func(s *snapshot) error {
		id = int64(len(s.events)) + 1
		event.Id = id
		event.Payload = append([]byte(nil), event.Payload...)
		s.events = append(s.events, event)

		return nil
	})

	return id, err
}

func (e *eventsQ) Select(selector db.EventsSelector) (events []db.Event, err error) {
	limit := selector.Limit
	if limit == 0 {
		limit = defaultEventsLimit
	}

	err = e.q.view(func(s *snapshot) error {
		for _, event := range s.events {
			if uint64(len(events)) >= limit {
				break
			}
			if event.Id <= selector.AfterId {
				continue
			}
			if selector.Type != nil && event.Type != *selector.Type {
				continue
			}
			events = append(events, event)
		}

		return nil
	})

	return events, err
}
