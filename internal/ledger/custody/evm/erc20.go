package evm

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	methodBalanceOf    = "balanceOf"
	methodAllowance    = "allowance"
	methodDecimals     = "decimals"
	methodTransferFrom = "transferFrom"
)

var parsedABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(errors.Wrap(err, "failed to parse ERC20 ABI"))
	}

	return parsed
}()

// ERC20 is a custody.Asset backed by an ERC-20 token contract.
// Transactions are sent from the custodian account and wait for inclusion.
type ERC20 struct {
	client   *ethclient.Client
	token    common.Address
	contract *bind.BoundContract

	signer    *ecdsa.PrivateKey
	custodian common.Address
	chainId   *big.Int
}

func NewERC20(ctx context.Context, client *ethclient.Client, token common.Address, signer *ecdsa.PrivateKey) (*ERC20, error) {
	if signer == nil {
		return nil, errors.New("custodian signer key is required")
	}

	chainId, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain id")
	}

	return &ERC20{
		client:    client,
		token:     token,
		contract:  bind.NewBoundContract(token, parsedABI, client, client, client),
		signer:    signer,
		custodian: crypto.PubkeyToAddress(signer.PublicKey),
		chainId:   chainId,
	}, nil
}

func (e *ERC20) Token() common.Address {
	return e.token
}

func (e *ERC20) Custodian() common.Address {
	return e.custodian
}

func (e *ERC20) Decimals(ctx context.Context) (uint8, error) {
	var out []interface{}
	if err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, methodDecimals); err != nil {
		return 0, errors.Wrap(err, "failed to call decimals")
	}
	if len(out) != 1 {
		return 0, errors.New("unexpected decimals output")
	}

	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected decimals type %T", out[0])
	}

	return decimals, nil
}

func (e *ERC20) BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error) {
	amount, err := e.callAmount(ctx, methodBalanceOf, account)
	return amount, errors.Wrap(err, "failed to get token balance")
}

func (e *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*uint256.Int, error) {
	amount, err := e.callAmount(ctx, methodAllowance, owner, spender)
	return amount, errors.Wrap(err, "failed to get token allowance")
}

func (e *ERC20) TransferFrom(ctx context.Context, from common.Address, amount *uint256.Int) error {
	opts, err := bind.NewKeyedTransactorWithChainID(e.signer, e.chainId)
	if err != nil {
		return errors.Wrap(err, "failed to create transactor")
	}
	opts.Context = ctx

	tx, err := e.contract.Transact(opts, methodTransferFrom, from, e.custodian, amount.ToBig())
	if err != nil {
		return errors.Wrap(err, "failed to send transferFrom transaction")
	}

	receipt, err := bind.WaitMined(ctx, e.client, tx)
	if err != nil {
		return &custody.PendingTransferError{TxHash: tx.Hash(), Err: errors.Wrap(err, "failed to wait for transaction")}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.Errorf("transferFrom transaction %s reverted", tx.Hash().Hex())
	}

	return nil
}

func (e *ERC20) callAmount(ctx context.Context, method string, args ...interface{}) (*uint256.Int, error) {
	var out []interface{}
	if err := e.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, errors.Wrapf(err, "failed to call %s", method)
	}
	if len(out) != 1 {
		return nil, errors.Errorf("unexpected %s output length %d", method, len(out))
	}

	raw, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected %s output type %T", method, out[0])
	}

	amount, overflow := uint256.FromBig(raw)
	if overflow {
		return nil, errors.Errorf("%s output does not fit 256 bits", method)
	}

	return amount, nil
}
