package replay

import (
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// RequestGuard accepts every one-time request id at most once, forever.
type RequestGuard struct {
	requests db.RequestsQ
}

func NewRequestGuard(requests db.RequestsQ) *RequestGuard {
	return &RequestGuard{requests: requests}
}

func (g *RequestGuard) Policy() types.ReplayPolicy {
	return types.ReplayPolicyRequestId
}

func (g *RequestGuard) Consumed(id common.Hash) (bool, error) {
	request, err := g.requests.Get(id)
	if err != nil {
		return false, errors.Wrap(err, "failed to get consumed request")
	}

	return request != nil, nil
}

func (g *RequestGuard) Consume(request signature.WithdrawRequest) error {
	return g.ConsumeId(request.User, request.RequestId)
}

func (g *RequestGuard) ConsumeId(account common.Address, id common.Hash) error {
	consumed, err := g.Consumed(id)
	if err != nil {
		return err
	}
	if consumed {
		return errors.Wrapf(types.ErrReplayedRequest, "request %s", id.Hex())
	}

	err = g.requests.Insert(db.ConsumedRequest{
		RequestId:  db.RequestKey(id),
		Account:    db.AddressKey(account),
		ConsumedAt: time.Now().UTC(),
	})
	if errors.Is(err, db.ErrAlreadyConsumed) {
		return errors.Wrapf(types.ErrReplayedRequest, "request %s", id.Hex())
	}

	return errors.Wrap(err, "failed to consume request")
}
