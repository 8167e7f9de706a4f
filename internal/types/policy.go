package types

import "github.com/pkg/errors"

// ReplayPolicy selects how withdrawal authorizations are protected from re-execution.
// Exactly one policy is active per deployment.
type ReplayPolicy string

const (
	// ReplayPolicyNonce requires per-account nonces to be presented strictly in order.
	ReplayPolicyNonce ReplayPolicy = "nonce"
	// ReplayPolicyRequestId accepts every opaque 32-byte request id at most once.
	ReplayPolicyRequestId ReplayPolicy = "request_id"
)

func (p ReplayPolicy) Validate() error {
	switch p {
	case ReplayPolicyNonce, ReplayPolicyRequestId:
		return nil
	default:
		return errors.Errorf("unsupported replay policy %q", p)
	}
}

func (p ReplayPolicy) String() string {
	return string(p)
}
