package token

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Token keeps the internal accounting of the ledger: balances, allowances and total supply.
// All mutations are expected to run inside a single state transaction.
type Token struct {
	balances   db.BalancesQ
	allowances db.AllowancesQ
	supply     db.SupplyQ
	recorder   *events.Recorder
}

// New binds the token to the state q. Recorder may be nil for read-only usage.
func New(q db.StateQ, recorder *events.Recorder) *Token {
	return &Token{
		balances:   q.Balances(),
		allowances: q.Allowances(),
		supply:     q.Supply(),
		recorder:   recorder,
	}
}

func (t *Token) BalanceOf(account common.Address) (*uint256.Int, error) {
	balance, err := t.balances.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return types.CopyOrZero(balance), nil
}

func (t *Token) Allowance(owner, spender common.Address) (*uint256.Int, error) {
	allowance, err := t.allowances.Get(owner, spender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}

	return types.CopyOrZero(allowance), nil
}

func (t *Token) TotalSupply() (*uint256.Int, error) {
	supply, err := t.supply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}

	return types.CopyOrZero(supply), nil
}

func (t *Token) Transfer(from, to common.Address, amount *uint256.Int) error {
	if err := t.Move(from, to, amount); err != nil {
		return err
	}

	return t.record(types.EventTransfer, types.TransferEvent{
		From:   from.Hex(),
		To:     to.Hex(),
		Amount: amount.Dec(),
	})
}

func (t *Token) Approve(owner, spender common.Address, amount *uint256.Int) error {
	if spender == (common.Address{}) {
		return errors.Wrap(types.ErrZeroAddress, "cannot approve zero address")
	}

	if err := t.allowances.Set(owner, spender, types.CopyOrZero(amount)); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}

	return t.record(types.EventApproval, types.ApprovalEvent{
		Owner:   owner.Hex(),
		Spender: spender.Hex(),
		Amount:  types.CopyOrZero(amount).Dec(),
	})
}

// TransferFrom moves funds of from on behalf of spender. The maximum allowance never decreases.
func (t *Token) TransferFrom(spender, from, to common.Address, amount *uint256.Int) error {
	if err := t.SpendAllowance(from, spender, amount); err != nil {
		return err
	}

	return t.Transfer(from, to, amount)
}

func (t *Token) SpendAllowance(owner, spender common.Address, amount *uint256.Int) error {
	allowance, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Eq(maxAmount) {
		return nil
	}

	left, underflow := new(uint256.Int).SubOverflow(allowance, amount)
	if underflow {
		return errors.Wrapf(types.ErrInsufficientAllowance, "allowance %s, required %s", allowance.Dec(), amount.Dec())
	}

	return errors.Wrap(t.allowances.Set(owner, spender, left), "failed to update allowance")
}

// Mint issues new funds to the account. Minting zero changes nothing.
func (t *Token) Mint(to common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}

	if err := t.Issue(to, amount); err != nil {
		return err
	}

	return t.record(types.EventMinted, types.MintEvent{
		To:     to.Hex(),
		Amount: amount.Dec(),
	})
}

// Issue credits the account and increases the total supply without recording any event.
func (t *Token) Issue(to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return errors.Wrap(types.ErrZeroAddress, "cannot issue to zero address")
	}

	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	if supply, err = types.Add(supply, amount); err != nil {
		return errors.Wrap(err, "total supply overflow")
	}

	if err = t.credit(to, amount); err != nil {
		return err
	}

	return errors.Wrap(t.supply.Set(supply), "failed to update total supply")
}

// Move debits from and credits to without recording any event.
func (t *Token) Move(from, to common.Address, amount *uint256.Int) error {
	if to == (common.Address{}) {
		return errors.Wrap(types.ErrZeroAddress, "cannot move funds to zero address")
	}

	if err := t.debit(from, amount); err != nil {
		return err
	}

	return t.credit(to, amount)
}

func (t *Token) debit(account common.Address, amount *uint256.Int) error {
	balance, err := t.BalanceOf(account)
	if err != nil {
		return err
	}

	left, err := types.Sub(balance, amount)
	if err != nil {
		return errors.Wrapf(err, "balance %s, required %s", balance.Dec(), amount.Dec())
	}

	return errors.Wrap(t.balances.Set(account, left), "failed to debit balance")
}

func (t *Token) credit(account common.Address, amount *uint256.Int) error {
	balance, err := t.BalanceOf(account)
	if err != nil {
		return err
	}

	if balance, err = types.Add(balance, amount); err != nil {
		return errors.Wrap(err, "balance overflow")
	}

	return errors.Wrap(t.balances.Set(account, balance), "failed to credit balance")
}

func (t *Token) record(eventType types.EventType, payload interface{}) error {
	if t.recorder == nil {
		return nil
	}

	return t.recorder.Record(eventType, payload)
}

var maxAmount = new(uint256.Int).SetAllOne()
