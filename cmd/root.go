package cmd

import (
	"os"

	"github.com/Bridgeless-Project/treasury-svc/cmd/helpers"
	"github.com/Bridgeless-Project/treasury-svc/cmd/ops"
	"github.com/Bridgeless-Project/treasury-svc/cmd/service"
	"github.com/spf13/cobra"
)

func Execute() {
	root := &cobra.Command{
		Use:   "treasury-svc",
		Short: "Custodial value ledger service",
	}

	root.AddCommand(service.Cmd, ops.Cmd, helpers.Cmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
