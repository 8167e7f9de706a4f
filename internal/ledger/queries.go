package ledger

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/replay"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

func (l *Ledger) Domain() signature.Domain {
	return l.authorizer.Domain()
}

func (l *Ledger) BalanceOf(account common.Address) (*uint256.Int, error) {
	return l.view().token.BalanceOf(account)
}

func (l *Ledger) Allowance(owner, spender common.Address) (*uint256.Int, error) {
	return l.view().token.Allowance(owner, spender)
}

func (l *Ledger) TotalSupply() (*uint256.Int, error) {
	return l.view().token.TotalSupply()
}

func (l *Ledger) HasRole(role common.Hash, account common.Address) (bool, error) {
	return l.view().roles.HasRole(role, account)
}

func (l *Ledger) RoleAdmin(role common.Hash) (common.Hash, error) {
	return l.view().roles.RoleAdmin(role)
}

func (l *Ledger) Members(role common.Hash) ([]common.Address, error) {
	return l.view().roles.Members(role)
}

// Nonce returns the nonce the next withdrawal of account must carry under the nonce policy.
func (l *Ledger) Nonce(account common.Address) (uint64, error) {
	return replay.NewNonceGuard(l.db.New().Nonces()).Current(account)
}

func (l *Ledger) IsConsumed(id common.Hash) (bool, error) {
	return replay.NewRequestGuard(l.db.New().Requests()).Consumed(id)
}

// ConsumedRequest returns nil if the request id was never used.
func (l *Ledger) ConsumedRequest(id common.Hash) (*db.ConsumedRequest, error) {
	request, err := l.db.New().Requests().Get(id)
	return request, errors.Wrap(err, "failed to get consumed request")
}

func (l *Ledger) Events(selector db.EventsSelector) ([]db.Event, error) {
	events, err := l.db.New().Events().Select(selector)
	return events, errors.Wrap(err, "failed to select events")
}
