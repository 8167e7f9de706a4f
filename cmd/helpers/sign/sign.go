package sign

import (
	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/spf13/cobra"
)

func init() {
	registerSignCommands(Cmd)
	utils.RegisterConfigFlag(Cmd)
}

var Cmd = &cobra.Command{
	Use:   "sign",
	Short: "Command for signing authorizations",
}

func registerSignCommands(cmd *cobra.Command) {
	cmd.AddCommand(withdrawalCmd)
}
