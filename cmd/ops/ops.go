package ops

import (
	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const keyFlag = "key"

func init() {
	registerOpsCommands(Cmd)
	utils.RegisterConfigFlag(Cmd)
	Cmd.PersistentFlags().String(keyFlag, "", "Hex private key of the account sending the operation")
	_ = Cmd.MarkPersistentFlagRequired(keyFlag)
}

var Cmd = &cobra.Command{
	Use:               "ops",
	Short:             "Command for running ledger operations on behalf of an account",
	PersistentPreRunE: utils.LoadConfig,
}

func registerOpsCommands(cmd *cobra.Command) {
	cmd.AddCommand(
		grantRoleCmd,
		revokeRoleCmd,
		renounceRoleCmd,
		setRoleAdminCmd,
		grantWithdrawerCmd,
		revokeWithdrawerCmd,
		mintCmd,
		depositCmd,
		transferCmd,
		approveCmd,
	)
}

// prepare returns the ledger and the operation sender.
func prepare(cmd *cobra.Command) (*ledger.Ledger, common.Address, error) {
	key, err := cmd.Flags().GetString(keyFlag)
	if err != nil {
		return nil, common.Address{}, errors.Wrap(err, "failed to get key flag")
	}

	sender, err := core.NewAccount(key)
	if err != nil {
		return nil, common.Address{}, errors.Wrap(err, "failed to parse sender key")
	}

	l, err := utils.NewLedger(utils.Config(cmd))
	if err != nil {
		return nil, common.Address{}, err
	}

	return l, sender.Address(), nil
}

func parseAddress(raw string) (common.Address, error) {
	addr, err := core.ParseAddress(raw)
	return addr, errors.Wrapf(err, "failed to parse address %q", raw)
}

func parseAmount(raw string) (*uint256.Int, error) {
	amount, err := types.ParseAmount(raw)
	return amount, errors.Wrapf(err, "failed to parse amount %q", raw)
}

func done(cmd *cobra.Command, operation string) {
	utils.Config(cmd).Log().WithField("operation", operation).Info("operation executed")
}
