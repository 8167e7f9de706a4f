package sign

import (
	"encoding/json"
	"fmt"

	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/requests"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	key       string
	to        string
	amount    string
	nonce     string
	reference string
)

func init() {
	withdrawalCmd.Flags().StringVar(&key, "key", "", "Hex private key of the fund owner")
	withdrawalCmd.Flags().StringVar(&to, "to", "", "Withdrawal recipient address")
	withdrawalCmd.Flags().StringVar(&amount, "amount", "", "Amount in base units")
	withdrawalCmd.Flags().StringVar(&nonce, "nonce", "", "Owner nonce (nonce replay policy)")
	withdrawalCmd.Flags().StringVar(&reference, "reference", "", "Request reference (request id replay policy)")
	for _, flag := range []string{"key", "to", "amount"} {
		_ = withdrawalCmd.MarkFlagRequired(flag)
	}
	withdrawalCmd.MarkFlagsMutuallyExclusive("nonce", "reference")
	withdrawalCmd.MarkFlagsOneRequired("nonce", "reference")
}

var withdrawalCmd = &cobra.Command{
	Use:   "withdrawal",
	Short: "Signs a withdrawal authorization for the configured ledger and prints the submission body",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}
		params := cfg.LedgerParams()

		owner, err := core.NewAccount(key)
		if err != nil {
			return errors.Wrap(err, "failed to parse owner key")
		}

		body := requests.SubmitWithdrawal{
			User:   owner.Address().Hex(),
			Amount: amount,
			To:     to,
		}
		if nonce != "" {
			body.Nonce = &nonce
		} else {
			body.Reference = &reference
		}

		// validating the body the same way the API does, with the placeholder signature
		placeholder := signature.Signature{}.Hex()
		body.Signature = &placeholder
		request, _, err := body.Parse(params.ReplayPolicy)
		if err != nil {
			return errors.Wrap(err, "invalid withdrawal")
		}

		authorizer, err := signature.NewAuthorizer(params.Domain, params.ReplayPolicy)
		if err != nil {
			return errors.Wrap(err, "failed to create authorizer")
		}

		sig, err := authorizer.Sign(request, owner.PrivateKey())
		if err != nil {
			return errors.Wrap(err, "failed to sign withdrawal")
		}

		encoded := sig.Hex()
		body.Signature = &encoded
		if params.ReplayPolicy == types.ReplayPolicyRequestId {
			id := request.RequestId.Hex()
			body.RequestId, body.Reference = &id, nil
		}

		raw, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal withdrawal")
		}

		fmt.Println(string(raw))

		return nil
	},
}
