package utils

import (
	"context"
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/config"
	pg "github.com/Bridgeless-Project/treasury-svc/internal/db/postgres"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/custody/evm"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
)

const tokenLookupTimeout = 10 * time.Second

// NewLedger wires the Postgres-backed ledger described by the config.
// The custody variant is selected when the custody section is present.
func NewLedger(cfg config.Config) (*ledger.Ledger, error) {
	params := cfg.LedgerParams()

	authorizer, err := signature.NewAuthorizer(params.Domain, params.ReplayPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create withdrawal authorizer")
	}

	asset := cfg.CustodyAsset()
	if erc20, ok := asset.(*evm.ERC20); ok {
		if err = logCustodyToken(cfg.Log(), erc20); err != nil {
			return nil, err
		}
	}

	return ledger.New(
		pg.NewStateQ(cfg.DB()),
		authorizer,
		asset,
		events.NewHub(),
		cfg.Log(),
	), nil
}

func logCustodyToken(logger *logan.Entry, erc20 *evm.ERC20) error {
	ctx, cancel := context.WithTimeout(context.Background(), tokenLookupTimeout)
	defer cancel()

	decimals, err := erc20.Decimals(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get custody token decimals")
	}

	logger.WithFields(logan.F{
		"token":     erc20.Token().Hex(),
		"decimals":  decimals,
		"custodian": erc20.Custodian().Hex(),
	}).Info("custody asset configured")

	return nil
}

// Bootstrap seeds the configured deployer on an empty ledger.
func Bootstrap(cfg config.Config, l *ledger.Ledger) error {
	params := cfg.LedgerParams()

	bootstrapped, err := l.Bootstrap(params.Deployer, params.InitialSupply)
	if err != nil {
		return errors.Wrap(err, "failed to bootstrap ledger")
	}
	if bootstrapped {
		cfg.Log().WithField("deployer", params.Deployer.Hex()).Info("ledger bootstrapped")
	}

	return nil
}
