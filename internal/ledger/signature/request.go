package signature

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// WithdrawRequest is the off-chain withdrawal authorization signed by the fund owner.
// Only one of Nonce and RequestId is meaningful, depending on the deployment replay policy.
type WithdrawRequest struct {
	User   common.Address
	Amount *uint256.Int
	To     common.Address

	Nonce     *uint256.Int
	RequestId common.Hash
}

var stringArguments = func() abi.Arguments {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(errors.Wrap(err, "failed to create abi string type"))
	}

	return abi.Arguments{{Type: stringType}}
}()

// RequestIdFromReference derives the one-time request id from a human-readable
// request reference as keccak256(abi.encode(reference)).
func RequestIdFromReference(reference string) (common.Hash, error) {
	packed, err := stringArguments.Pack(reference)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to abi-encode request reference")
	}

	return crypto.Keccak256Hash(packed), nil
}
