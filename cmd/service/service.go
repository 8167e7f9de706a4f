package service

import (
	"github.com/Bridgeless-Project/treasury-svc/cmd/service/migrate"
	"github.com/Bridgeless-Project/treasury-svc/cmd/service/run"
	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/spf13/cobra"
)

func init() {
	registerServiceCommands(Cmd)
	utils.RegisterConfigFlag(Cmd)
}

func registerServiceCommands(cmd *cobra.Command) {
	cmd.AddCommand(migrate.Cmd)
	cmd.AddCommand(run.Cmd)
	cmd.AddCommand(bootstrapCmd)
}

var Cmd = &cobra.Command{
	Use:   "service",
	Short: "Command for running service operations",
}
