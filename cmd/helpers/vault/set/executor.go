package set

import (
	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var executorCmd = &cobra.Command{
	Use:   "executor [priv-key]",
	Short: "Stores the withdrawal executor account key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := core.NewAccount(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse executor account")
		}

		config, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		storage := config.SecretsStorage()
		if err = storage.SaveExecutorAccount(acc); err != nil {
			return errors.Wrap(err, "failed to save account to vault")
		}

		config.Log().WithField("address", acc.Address().Hex()).Info("Executor account was successfully saved")

		return nil
	},
}
