package ops

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var grantRoleCmd = &cobra.Command{
	Use:   "grant-role [role] [account]",
	Short: "Grants the role to the account, the sender must hold the role admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		role, err := access.ParseRole(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse role")
		}
		account, err := parseAddress(args[1])
		if err != nil {
			return err
		}

		if err = l.GrantRole(sender, role, account); err != nil {
			return errors.Wrap(err, "failed to grant role")
		}

		done(cmd, "grant-role")
		return nil
	},
}

var revokeRoleCmd = &cobra.Command{
	Use:   "revoke-role [role] [account]",
	Short: "Revokes the role from the account, the sender must hold the role admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		role, err := access.ParseRole(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse role")
		}
		account, err := parseAddress(args[1])
		if err != nil {
			return err
		}

		if err = l.RevokeRole(sender, role, account); err != nil {
			return errors.Wrap(err, "failed to revoke role")
		}

		done(cmd, "revoke-role")
		return nil
	},
}

var renounceRoleCmd = &cobra.Command{
	Use:   "renounce-role [role]",
	Short: "Removes the role from the sender",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		role, err := access.ParseRole(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse role")
		}

		if err = l.RenounceRole(sender, role); err != nil {
			return errors.Wrap(err, "failed to renounce role")
		}

		done(cmd, "renounce-role")
		return nil
	},
}

var setRoleAdminCmd = &cobra.Command{
	Use:   "set-role-admin [role] [admin-role]",
	Short: "Changes the role which administers the given role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		role, err := access.ParseRole(args[0])
		if err != nil {
			return errors.Wrap(err, "failed to parse role")
		}
		admin, err := access.ParseRole(args[1])
		if err != nil {
			return errors.Wrap(err, "failed to parse admin role")
		}

		if err = l.SetRoleAdmin(sender, role, admin); err != nil {
			return errors.Wrap(err, "failed to set role admin")
		}

		done(cmd, "set-role-admin")
		return nil
	},
}

var grantWithdrawerCmd = &cobra.Command{
	Use:   "grant-withdrawer [account]",
	Short: "Allows the account to execute signed withdrawals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		account, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		if err = l.GrantWithdrawer(sender, account); err != nil {
			return errors.Wrap(err, "failed to grant withdrawer")
		}

		done(cmd, "grant-withdrawer")
		return nil
	},
}

var revokeWithdrawerCmd = &cobra.Command{
	Use:   "revoke-withdrawer [account]",
	Short: "Disallows the account to execute signed withdrawals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		account, err := parseAddress(args[0])
		if err != nil {
			return err
		}

		if err = l.RevokeWithdrawer(sender, account); err != nil {
			return errors.Wrap(err, "failed to revoke withdrawer")
		}

		done(cmd, "revoke-withdrawer")
		return nil
	},
}
