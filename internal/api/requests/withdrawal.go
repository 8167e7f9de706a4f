package requests

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

var (
	hash32Pattern    = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")
	signaturePattern = regexp.MustCompile("^0x[0-9a-fA-F]{130}$")
)

// SubmitWithdrawal is a withdrawal authorization signed by the fund owner.
// The signature is given either as a single 65-byte blob or as split v, r, s components.
// Under the one-time policy the request id is given either directly or as a request reference.
type SubmitWithdrawal struct {
	User   string `json:"user"`
	Amount string `json:"amount"`
	To     string `json:"to"`

	Nonce     *string `json:"nonce,omitempty"`
	RequestId *string `json:"request_id,omitempty"`
	Reference *string `json:"reference,omitempty"`

	Signature *string `json:"signature,omitempty"`
	V         *uint8  `json:"v,omitempty"`
	R         *string `json:"r,omitempty"`
	S         *string `json:"s,omitempty"`
}

func NewSubmitWithdrawal(r *http.Request) (SubmitWithdrawal, error) {
	var request SubmitWithdrawal
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return request, errors.Wrap(err, "failed to decode request body")
	}

	return request, nil
}

func (r SubmitWithdrawal) Validate(policy types.ReplayPolicy) error {
	split := r.V != nil || r.R != nil || r.S != nil

	return validation.Errors{
		"user":   validation.Validate(r.User, validation.Required, validation.By(address)),
		"to":     validation.Validate(r.To, validation.Required, validation.By(address)),
		"amount": validation.Validate(r.Amount, validation.Required, validation.By(amount)),

		"nonce": validation.Validate(r.Nonce,
			validation.When(policy == types.ReplayPolicyNonce, validation.Required, validation.By(amountPtr)).
				Else(validation.Nil.Error("nonce is not used by the request id policy"))),
		"request_id": validation.Validate(r.RequestId,
			validation.When(policy == types.ReplayPolicyRequestId && r.Reference == nil, validation.Required, validation.Match(hash32Pattern)).
				Else(validation.Nil.Error("exactly one of request_id and reference is accepted"))),
		"reference": validation.Validate(r.Reference,
			validation.When(policy == types.ReplayPolicyRequestId && r.RequestId == nil, validation.NilOrNotEmpty).
				Else(validation.Nil)),

		"signature": validation.Validate(r.Signature,
			validation.When(!split, validation.Required, validation.Match(signaturePattern)).
				Else(validation.Nil.Error("signature must be given either whole or as v, r, s"))),
		"v": validation.Validate(r.V, validation.When(split, validation.NotNil, validation.In(uint8(0), uint8(1), uint8(27), uint8(28)))),
		"r": validation.Validate(r.R, validation.When(split, validation.Required, validation.Match(hash32Pattern))),
		"s": validation.Validate(r.S, validation.When(split, validation.Required, validation.Match(hash32Pattern))),
	}.Filter()
}

// Parse converts the validated request into the ledger authorization.
func (r SubmitWithdrawal) Parse(policy types.ReplayPolicy) (signature.WithdrawRequest, signature.Signature, error) {
	var (
		request signature.WithdrawRequest
		sig     signature.Signature
		err     error
	)

	if err = r.Validate(policy); err != nil {
		return request, sig, err
	}

	request.User = common.HexToAddress(r.User)
	request.To = common.HexToAddress(r.To)
	if request.Amount, err = types.ParseAmount(r.Amount); err != nil {
		return request, sig, errors.Wrap(err, "invalid amount")
	}

	switch {
	case r.Nonce != nil:
		if request.Nonce, err = types.ParseAmount(*r.Nonce); err != nil {
			return request, sig, errors.Wrap(err, "invalid nonce")
		}
	case r.RequestId != nil:
		request.RequestId = common.HexToHash(*r.RequestId)
	case r.Reference != nil:
		if request.RequestId, err = signature.RequestIdFromReference(*r.Reference); err != nil {
			return request, sig, errors.Wrap(err, "invalid reference")
		}
	}

	if r.Signature != nil {
		sig, err = signature.ParseSignatureHex(*r.Signature)
	} else {
		sig, err = signature.SignatureFromRSV(*r.V, common.HexToHash(*r.R), common.HexToHash(*r.S))
	}
	if err != nil {
		return request, sig, errors.Wrap(err, "invalid signature encoding")
	}

	return request, sig, nil
}

func address(value interface{}) error {
	raw, _ := value.(string)
	_, err := core.ParseAddress(raw)

	return err
}

func amount(value interface{}) error {
	raw, _ := value.(string)
	_, err := types.ParseAmount(raw)

	return err
}

func amountPtr(value interface{}) error {
	raw, ok := value.(*string)
	if !ok || raw == nil {
		return nil
	}

	return amount(*raw)
}
