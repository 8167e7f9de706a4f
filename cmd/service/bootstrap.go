package service

import (
	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Seeds the deployer roles and the initial supply of an empty ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		l, err := utils.NewLedger(cfg)
		if err != nil {
			return err
		}

		return utils.Bootstrap(cfg, l)
	},
}
