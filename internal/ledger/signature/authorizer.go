package signature

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

const (
	DefaultName    = "MezonTreasury"
	DefaultVersion = "1"

	domainType  = "EIP712Domain"
	primaryType = "WithdrawRequest"

	fieldUser      = "user"
	fieldAmount    = "amount"
	fieldTo        = "to"
	fieldNonce     = "nonce"
	fieldRequestId = "requestId"
)

// Domain scopes signatures to a single ledger deployment.
// Changing any field invalidates every outstanding authorization.
type Domain struct {
	Name              string
	Version           string
	ChainId           *big.Int
	VerifyingContract common.Address
}

func (d Domain) Validate() error {
	if d.Name == "" {
		return errors.New("domain name is required")
	}
	if d.Version == "" {
		return errors.New("domain version is required")
	}
	if d.ChainId == nil || d.ChainId.Sign() < 0 {
		return errors.New("domain chain id is required")
	}
	if d.VerifyingContract == (common.Address{}) {
		return errors.New("domain verifying contract is required")
	}

	return nil
}

func (d Domain) typed() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           (*math.HexOrDecimal256)(new(big.Int).Set(d.ChainId)),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

var domainFields = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

var requestFields = map[types.ReplayPolicy][]apitypes.Type{
	types.ReplayPolicyRequestId: {
		{Name: fieldUser, Type: "address"},
		{Name: fieldAmount, Type: "uint256"},
		{Name: fieldTo, Type: "address"},
		{Name: fieldRequestId, Type: "bytes32"},
	},
	types.ReplayPolicyNonce: {
		{Name: fieldUser, Type: "address"},
		{Name: fieldAmount, Type: "uint256"},
		{Name: fieldTo, Type: "address"},
		{Name: fieldNonce, Type: "uint256"},
	},
}

// Authorizer builds EIP-712 digests of withdrawal requests and checks who signed them.
// It is stateless and safe for concurrent use.
type Authorizer struct {
	domain Domain
	policy types.ReplayPolicy
}

func NewAuthorizer(domain Domain, policy types.ReplayPolicy) (*Authorizer, error) {
	if err := domain.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid signing domain")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &Authorizer{domain: domain, policy: policy}, nil
}

func (a *Authorizer) Domain() Domain {
	return a.domain
}

func (a *Authorizer) Policy() types.ReplayPolicy {
	return a.policy
}

func (a *Authorizer) TypedData(request WithdrawRequest) (apitypes.TypedData, error) {
	if request.Amount == nil {
		return apitypes.TypedData{}, errors.New("amount is required")
	}

	message := apitypes.TypedDataMessage{
		fieldUser:   request.User.Hex(),
		fieldAmount: request.Amount.Dec(),
		fieldTo:     request.To.Hex(),
	}

	switch a.policy {
	case types.ReplayPolicyNonce:
		if request.Nonce == nil {
			return apitypes.TypedData{}, errors.New("nonce is required")
		}
		message[fieldNonce] = request.Nonce.Dec()
	case types.ReplayPolicyRequestId:
		message[fieldRequestId] = hexutil.Encode(request.RequestId.Bytes())
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			domainType:  domainFields,
			primaryType: requestFields[a.policy],
		},
		PrimaryType: primaryType,
		Domain:      a.domain.typed(),
		Message:     message,
	}, nil
}

// Digest returns keccak256("\x19\x01" || domainSeparator || hashStruct(request)).
func (a *Authorizer) Digest(request WithdrawRequest) (common.Hash, error) {
	typed, err := a.TypedData(request)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to build typed data")
	}

	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to hash typed data")
	}

	return common.BytesToHash(digest), nil
}

func (a *Authorizer) DomainSeparator() (common.Hash, error) {
	typed := apitypes.TypedData{
		Types:  apitypes.Types{domainType: domainFields},
		Domain: a.domain.typed(),
	}

	separator, err := typed.HashStruct(domainType, typed.Domain.Map())
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to hash domain")
	}

	return common.BytesToHash(separator), nil
}

// Recover returns the address that produced sig over the request digest.
func (a *Authorizer) Recover(request WithdrawRequest, sig Signature) (common.Address, error) {
	if !sig.Valid() {
		return common.Address{}, errors.New("malformed signature values")
	}

	digest, err := a.Digest(request)
	if err != nil {
		return common.Address{}, err
	}

	pub, err := crypto.SigToPub(digest.Bytes(), sig[:])
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to recover public key")
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// Verify succeeds only if sig was produced by request.User over this authorizer's domain.
func (a *Authorizer) Verify(request WithdrawRequest, sig Signature) error {
	signer, err := a.Recover(request, sig)
	if err != nil {
		return errors.Wrap(types.ErrInvalidSignature, err.Error())
	}
	if signer != request.User {
		return types.ErrInvalidSignature
	}

	return nil
}

func (a *Authorizer) Sign(request WithdrawRequest, key *ecdsa.PrivateKey) (Signature, error) {
	digest, err := a.Digest(request)
	if err != nil {
		return Signature{}, err
	}

	raw, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to sign withdrawal request")
	}

	return ParseSignature(raw)
}
