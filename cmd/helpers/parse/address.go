package parse

import (
	"fmt"

	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var parseAddressCmd = &cobra.Command{
	Use:   "address [address-or-private-key]",
	Short: "Validates an address or derives it from a private key, printing its checksummed form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if address, err := core.ParseAddress(args[0]); err == nil {
			fmt.Println("Address:", address.Hex())
			return nil
		}

		account, err := core.NewAccount(args[0])
		if err != nil {
			return errors.New("neither a valid address nor a private key")
		}

		fmt.Println("Address:", account.Address().Hex())

		return nil
	},
}
