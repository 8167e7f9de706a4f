package config

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody/evm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

const (
	custodyConfigKey = "custody"

	chainIdTimeout = 10 * time.Second
)

type Custodier interface {
	// CustodyAsset returns nil when no external asset is configured,
	// which selects the issuing ledger variant.
	CustodyAsset() custody.Asset
}

type custodier struct {
	getter kv.Getter
	once   comfig.Once
}

func NewCustodier(getter kv.Getter) Custodier {
	return &custodier{getter: getter}
}

func (c *custodier) CustodyAsset() custody.Asset {
	asset := c.once.Do(func() interface{} {
		raw, err := c.getter.GetStringMap(custodyConfigKey)
		if err != nil {
			panic(errors.Wrap(err, "failed to get custody config"))
		}
		if len(raw) == 0 {
			return (*evm.ERC20)(nil)
		}

		var cfg struct {
			Rpc       *ethclient.Client `fig:"rpc,required"`
			Token     common.Address    `fig:"token,required"`
			SignerKey *ecdsa.PrivateKey `fig:"signer_key,required"`
		}

		err = figure.
			Out(&cfg).
			With(figure.BaseHooks, figure.EthereumHooks).
			From(raw).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out custody config"))
		}

		ctx, cancel := context.WithTimeout(context.Background(), chainIdTimeout)
		defer cancel()

		erc20, err := evm.NewERC20(ctx, cfg.Rpc, cfg.Token, cfg.SignerKey)
		if err != nil {
			panic(errors.Wrap(err, "failed to create custody asset"))
		}

		return erc20
	}).(*evm.ERC20)

	if asset == nil {
		return nil
	}

	return asset
}
