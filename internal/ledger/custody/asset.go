package custody

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Asset is the external fungible token held in custody by the ledger.
type Asset interface {
	// Custodian is the account holding the pooled funds and spending user allowances.
	Custodian() common.Address
	BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error)
	Allowance(ctx context.Context, owner, spender common.Address) (*uint256.Int, error)
	// TransferFrom pulls amount from the owner into the custodian account.
	TransferFrom(ctx context.Context, from common.Address, amount *uint256.Int) error
}

// PendingTransferError reports a transfer that was broadcast but whose outcome is unknown.
// The transaction may still be mined after the ledger has rolled back.
type PendingTransferError struct {
	TxHash common.Hash
	Err    error
}

func (e *PendingTransferError) Error() string {
	return "transaction " + e.TxHash.Hex() + " outcome unknown: " + e.Err.Error()
}

func (e *PendingTransferError) Unwrap() error {
	return e.Err
}
