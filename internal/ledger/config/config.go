package config

import (
	"cmp"
	"math/big"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

const ledgerConfigKey = "ledger"

// DefaultInitialSupply is 100 000 000 tokens with 18 decimals.
var DefaultInitialSupply = new(uint256.Int).Mul(
	uint256.NewInt(100_000_000),
	new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18)),
)

type Params struct {
	Domain        signature.Domain
	Deployer      common.Address
	ReplayPolicy  types.ReplayPolicy
	InitialSupply *uint256.Int
}

type Ledgerer interface {
	LedgerParams() Params
}

type ledgerer struct {
	getter kv.Getter
	once   comfig.Once
}

func NewLedgerer(getter kv.Getter) Ledgerer {
	return &ledgerer{getter: getter}
}

func (l *ledgerer) LedgerParams() Params {
	return l.once.Do(func() interface{} {
		var cfg struct {
			Name          string         `fig:"name"`
			Version       string         `fig:"version"`
			ChainId       uint64         `fig:"chain_id,required"`
			Address       common.Address `fig:"address,required"`
			Deployer      common.Address `fig:"deployer,required"`
			ReplayPolicy  string         `fig:"replay_policy"`
			InitialSupply *uint256.Int   `fig:"initial_supply"`
		}

		err := figure.
			Out(&cfg).
			With(figure.BaseHooks, figure.EthereumHooks, types.AmountHook).
			From(kv.MustGetStringMap(l.getter, ledgerConfigKey)).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out ledger config"))
		}

		params := Params{
			Domain: signature.Domain{
				Name:              cmp.Or(cfg.Name, signature.DefaultName),
				Version:           cmp.Or(cfg.Version, signature.DefaultVersion),
				ChainId:           new(big.Int).SetUint64(cfg.ChainId),
				VerifyingContract: cfg.Address,
			},
			Deployer:      cfg.Deployer,
			ReplayPolicy:  types.ReplayPolicy(cmp.Or(cfg.ReplayPolicy, string(types.ReplayPolicyRequestId))),
			InitialSupply: cfg.InitialSupply,
		}
		if params.InitialSupply == nil {
			params.InitialSupply = new(uint256.Int).Set(DefaultInitialSupply)
		}

		if err = params.Domain.Validate(); err != nil {
			panic(errors.Wrap(err, "invalid ledger domain"))
		}
		if err = params.ReplayPolicy.Validate(); err != nil {
			panic(errors.Wrap(err, "invalid ledger replay policy"))
		}

		return params
	}).(Params)
}
