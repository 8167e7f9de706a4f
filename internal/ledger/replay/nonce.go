package replay

import (
	"math"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// NonceGuard accepts per-account nonces strictly in order, starting from zero.
type NonceGuard struct {
	nonces db.NoncesQ
}

func NewNonceGuard(nonces db.NoncesQ) *NonceGuard {
	return &NonceGuard{nonces: nonces}
}

func (g *NonceGuard) Policy() types.ReplayPolicy {
	return types.ReplayPolicyNonce
}

// Current returns the nonce the next authorization of account must carry.
func (g *NonceGuard) Current(account common.Address) (uint64, error) {
	nonce, err := g.nonces.Get(account)
	return nonce, errors.Wrap(err, "failed to get account nonce")
}

func (g *NonceGuard) Consume(request signature.WithdrawRequest) error {
	return g.ConsumeNonce(request.User, request.Nonce)
}

func (g *NonceGuard) ConsumeNonce(account common.Address, presented *uint256.Int) error {
	if presented == nil {
		return types.ErrStaleNonce
	}

	current, err := g.Current(account)
	if err != nil {
		return err
	}
	if !presented.IsUint64() || presented.Uint64() != current {
		return errors.Wrapf(types.ErrStaleNonce, "expected %d, got %s", current, presented.Dec())
	}
	if current == math.MaxUint64 {
		return types.ErrOverflow
	}

	return errors.Wrap(g.nonces.Set(account, current+1), "failed to increment account nonce")
}
