package ops

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const depositTimeout = 2 * time.Minute

var mintCmd = &cobra.Command{
	Use:   "mint [to] [amount]",
	Short: "Issues new tokens to the account, the sender must be an admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		to, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		if err = l.Mint(sender, to, amount); err != nil {
			return errors.Wrap(err, "failed to mint")
		}

		done(cmd, "mint")
		return nil
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit [amount]",
	Short: "Deposits the sender funds into the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), depositTimeout)
		defer cancel()

		if err = l.Deposit(ctx, sender, amount); err != nil {
			return errors.Wrap(err, "failed to deposit")
		}

		done(cmd, "deposit")
		return nil
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer [to] [amount]",
	Short: "Transfers the sender ledger balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		to, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		if err = l.Transfer(sender, to, amount); err != nil {
			return errors.Wrap(err, "failed to transfer")
		}

		done(cmd, "transfer")
		return nil
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve [spender] [amount]",
	Short: "Allows the spender to transfer the sender ledger balance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, sender, err := prepare(cmd)
		if err != nil {
			return err
		}
		spender, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		if err = l.Approve(sender, spender, amount); err != nil {
			return errors.Wrap(err, "failed to approve")
		}

		done(cmd, "approve")
		return nil
	},
}
