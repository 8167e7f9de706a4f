package replay

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/pkg/errors"
)

// Guard decides whether the replay token of a withdrawal authorization is fresh.
// Consume must run in the same state transaction as the balance mutation it protects.
type Guard interface {
	Consume(request signature.WithdrawRequest) error
	Policy() types.ReplayPolicy
}

// NewGuard binds the guard of the given policy to the state q.
func NewGuard(policy types.ReplayPolicy, q db.StateQ) (Guard, error) {
	switch policy {
	case types.ReplayPolicyNonce:
		return NewNonceGuard(q.Nonces()), nil
	case types.ReplayPolicyRequestId:
		return NewRequestGuard(q.Requests()), nil
	default:
		return nil, errors.Errorf("unsupported replay policy %q", policy)
	}
}
