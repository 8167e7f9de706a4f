package types

import "github.com/pkg/errors"

var (
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrReplayedRequest       = errors.New("request already processed")
	ErrStaleNonce            = errors.New("invalid nonce")
	ErrOverflow              = errors.New("amount overflow")
	ErrUnsupported           = errors.New("operation is not supported by the ledger variant")
	ErrLastAdmin             = errors.New("cannot remove the last admin")
	ErrZeroAddress           = errors.New("zero address")
)

// IsRejection reports whether err is a ledger-level rejection of the operation
// rather than an infrastructure failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientAllowance) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrReplayedRequest) ||
		errors.Is(err, ErrStaleNonce) ||
		errors.Is(err, ErrOverflow) ||
		errors.Is(err, ErrUnsupported) ||
		errors.Is(err, ErrLastAdmin) ||
		errors.Is(err, ErrZeroAddress)
}

// IsReplay reports whether err was caused by an already used replay token.
func IsReplay(err error) bool {
	return errors.Is(err, ErrReplayedRequest) || errors.Is(err, ErrStaleNonce)
}
