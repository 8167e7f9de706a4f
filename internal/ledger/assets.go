package ledger

import (
	"context"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
)

// Deposit moves amount of the asset from the caller into custody and credits the caller's ledger balance.
// In the custody variant the external pull is the last step of the transaction,
// so a failed pull leaves the ledger untouched.
func (l *Ledger) Deposit(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	logger := l.logger.WithFields(logan.F{
		"depositor": caller.Hex(),
		"amount":    types.CopyOrZero(amount).Dec(),
		"variant":   l.Variant(),
	})

	err := l.mutate(func(s *state) error {
		if amount == nil || amount.IsZero() {
			return errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
		}

		if l.asset == nil {
			if err := l.depositIssued(s, caller, amount); err != nil {
				return err
			}
		} else {
			if err := l.checkCustodyDeposit(ctx, caller, amount); err != nil {
				return err
			}
			if err := s.token.Issue(caller, amount); err != nil {
				return err
			}
		}

		if err := s.recorder.Record(types.EventDeposited, types.DepositEvent{
			Depositor: caller.Hex(),
			Amount:    amount.Dec(),
		}); err != nil {
			return err
		}

		if l.asset == nil {
			return nil
		}

		return errors.Wrap(l.asset.TransferFrom(ctx, caller, amount), "failed to pull deposited funds")
	})
	logResult(logger, "deposit", err)

	var pending *custody.PendingTransferError
	if errors.As(err, &pending) {
		logger.WithField("tx_hash", pending.TxHash.Hex()).
			Error("deposit rolled back while its transfer may still be mined, custody reserves need reconciliation")
	}

	return err
}

func (l *Ledger) depositIssued(s *state, caller common.Address, amount *uint256.Int) error {
	balance, err := s.token.BalanceOf(caller)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return errors.Wrapf(types.ErrInsufficientBalance, "balance %s, required %s", balance.Dec(), amount.Dec())
	}

	if err = s.token.SpendAllowance(caller, l.Address(), amount); err != nil {
		return err
	}

	return s.token.Move(caller, l.Address(), amount)
}

func (l *Ledger) checkCustodyDeposit(ctx context.Context, caller common.Address, amount *uint256.Int) error {
	balance, err := l.asset.BalanceOf(ctx, caller)
	if err != nil {
		return errors.Wrap(err, "failed to get external balance")
	}
	if balance.Lt(amount) {
		return errors.Wrapf(types.ErrInsufficientBalance, "external balance %s, required %s", balance.Dec(), amount.Dec())
	}

	allowance, err := l.asset.Allowance(ctx, caller, l.asset.Custodian())
	if err != nil {
		return errors.Wrap(err, "failed to get external allowance")
	}
	if allowance.Lt(amount) {
		return errors.Wrapf(types.ErrInsufficientAllowance, "external allowance %s, required %s", allowance.Dec(), amount.Dec())
	}

	return nil
}

// Mint issues new funds. Only available in the issuing variant and only to admins.
func (l *Ledger) Mint(caller, to common.Address, amount *uint256.Int) error {
	logger := l.logger.WithFields(logan.F{
		"sender": caller.Hex(),
		"to":     to.Hex(),
		"amount": types.CopyOrZero(amount).Dec(),
	})

	err := l.mutate(func(s *state) error {
		if err := l.requireIssuing("mint"); err != nil {
			return err
		}
		if err := s.roles.Check(access.AdminRole, caller); err != nil {
			return err
		}

		return s.token.Mint(to, amount)
	})
	logResult(logger, "mint", err)

	return err
}

func (l *Ledger) Transfer(caller, to common.Address, amount *uint256.Int) error {
	err := l.mutate(func(s *state) error {
		if err := l.requireIssuing("transfer"); err != nil {
			return err
		}

		return s.token.Transfer(caller, to, types.CopyOrZero(amount))
	})
	logResult(l.transferLogger(caller, caller, to, amount), "transfer", err)

	return err
}

func (l *Ledger) Approve(owner, spender common.Address, amount *uint256.Int) error {
	err := l.mutate(func(s *state) error {
		if err := l.requireIssuing("approve"); err != nil {
			return err
		}

		return s.token.Approve(owner, spender, amount)
	})
	logResult(l.logger.WithFields(logan.F{
		"owner":   owner.Hex(),
		"spender": spender.Hex(),
		"amount":  types.CopyOrZero(amount).Dec(),
	}), "approval", err)

	return err
}

func (l *Ledger) TransferFrom(spender, from, to common.Address, amount *uint256.Int) error {
	err := l.mutate(func(s *state) error {
		if err := l.requireIssuing("transferFrom"); err != nil {
			return err
		}

		return s.token.TransferFrom(spender, from, to, types.CopyOrZero(amount))
	})
	logResult(l.transferLogger(spender, from, to, amount), "transfer from", err)

	return err
}

func (l *Ledger) requireIssuing(operation string) error {
	if l.Variant() != VariantIssuing {
		return errors.Wrapf(types.ErrUnsupported, "%s is not available in the %s variant", operation, l.Variant())
	}

	return nil
}

func (l *Ledger) transferLogger(sender, from, to common.Address, amount *uint256.Int) *logan.Entry {
	return l.logger.WithFields(logan.F{
		"sender": sender.Hex(),
		"from":   from.Hex(),
		"to":     to.Hex(),
		"amount": types.CopyOrZero(amount).Dec(),
	})
}
