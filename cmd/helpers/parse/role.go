package parse

import (
	"fmt"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var parseRoleCmd = &cobra.Command{
	Use:   "role [name-or-hash]",
	Short: "Prints the role identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := access.ParseRole(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse role")
		}

		fmt.Println("Role:", role.Hex())
		fmt.Println("Name:", access.RoleName(role))

		return nil
	},
}

var parseRequestIdCmd = &cobra.Command{
	Use:   "request-id [reference]",
	Short: "Derives the one-time request id from a request reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := signature.RequestIdFromReference(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to derive request id")
		}

		fmt.Println("Request id:", id.Hex())

		return nil
	},
}
