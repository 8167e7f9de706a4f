package ledger

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
)

// Withdraw executes a withdrawal authorized by the signature of request.User.
// The checks run in order and the first failing one aborts the whole operation:
// executor role, amount, signature, replay token, balance.
func (l *Ledger) Withdraw(executor common.Address, request signature.WithdrawRequest, sig signature.Signature) error {
	logger := l.logger.WithFields(withdrawalFields(executor, request, l.authorizer.Policy()))

	err := l.mutate(func(s *state) error {
		if err := s.roles.Check(access.WithdrawerRole, executor); err != nil {
			return err
		}
		if request.Amount == nil || request.Amount.IsZero() {
			return errors.Wrap(types.ErrInvalidAmount, "withdrawal amount must be positive")
		}
		if err := l.authorizer.Verify(request, sig); err != nil {
			return err
		}

		guard, err := l.replayGuard(s)
		if err != nil {
			return err
		}
		if err = guard.Consume(request); err != nil {
			return err
		}

		if err = s.token.Move(request.User, request.To, request.Amount); err != nil {
			return err
		}

		return s.recorder.Record(types.EventWithdrawn, withdrawalEvent(executor, request, l.authorizer.Policy()))
	})
	logResult(logger, "withdrawal", err)

	return err
}

func withdrawalEvent(executor common.Address, request signature.WithdrawRequest, policy types.ReplayPolicy) types.WithdrawalEvent {
	event := types.WithdrawalEvent{
		Executor: executor.Hex(),
		User:     request.User.Hex(),
		To:       request.To.Hex(),
		Amount:   request.Amount.Dec(),
	}

	switch policy {
	case types.ReplayPolicyNonce:
		nonce := "0"
		if request.Nonce != nil {
			nonce = request.Nonce.Dec()
		}
		event.Nonce = &nonce
	default:
		id := request.RequestId.Hex()
		event.RequestId = &id
	}

	return event
}

func withdrawalFields(executor common.Address, request signature.WithdrawRequest, policy types.ReplayPolicy) logan.F {
	fields := logan.F{
		"executor": executor.Hex(),
		"user":     request.User.Hex(),
		"to":       request.To.Hex(),
		"amount":   types.CopyOrZero(request.Amount).Dec(),
	}
	if policy == types.ReplayPolicyNonce {
		fields["nonce"] = types.CopyOrZero(request.Nonce).Dec()
	} else {
		fields["request_id"] = request.RequestId.Hex()
	}

	return fields
}
