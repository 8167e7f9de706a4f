package ledger

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/logan/v3"
)

// Bootstrap initializes a fresh ledger: the deployer receives both the admin
// and the withdrawer roles, and in the issuing variant the initial supply.
// It does nothing if the ledger already has an admin.
func (l *Ledger) Bootstrap(deployer common.Address, initialSupply *uint256.Int) (bool, error) {
	if deployer == (common.Address{}) {
		return false, errors.Wrap(types.ErrZeroAddress, "deployer is required")
	}

	logger := l.logger.WithFields(logan.F{
		"deployer":       deployer.Hex(),
		"initial_supply": types.CopyOrZero(initialSupply).Dec(),
	})

	bootstrapped := false
	err := l.mutate(func(s *state) error {
		admins, err := s.q.Roles().Count(access.AdminRole)
		if err != nil {
			return errors.Wrap(err, "failed to count admins")
		}
		if admins > 0 {
			return nil
		}

		if err = s.roles.Seed(access.AdminRole, deployer); err != nil {
			return errors.Wrap(err, "failed to seed admin role")
		}
		if err = s.roles.Seed(access.WithdrawerRole, deployer); err != nil {
			return errors.Wrap(err, "failed to seed withdrawer role")
		}

		if l.Variant() == VariantIssuing {
			if err = s.token.Mint(deployer, initialSupply); err != nil {
				return errors.Wrap(err, "failed to mint initial supply")
			}
		} else if initialSupply != nil && !initialSupply.IsZero() {
			logger.Warn("initial supply is ignored by the custody ledger")
		}

		bootstrapped = true
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("failed to bootstrap ledger")
		return false, err
	}

	if bootstrapped {
		logger.Info("ledger bootstrapped")
	} else {
		logger.Debug("ledger is already bootstrapped")
	}

	return bootstrapped, nil
}
