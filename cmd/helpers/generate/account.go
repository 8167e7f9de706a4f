package generate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	utils.RegisterOutputFlags(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Generates a new secp256k1 account",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !utils.OutputValid() {
			return errors.New("invalid output type")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := core.GenerateAccount()
		if err != nil {
			return errors.Wrap(err, "failed to generate account")
		}

		return storeAccount(cmd, account)
	},
}

func storeAccount(cmd *cobra.Command, account *core.Account) error {
	switch utils.OutputType {
	case utils.OutputConsole:
		fmt.Println("Private key:", account.PrivateKeyHex())
		fmt.Println("Address:", account.Address().Hex())
	case utils.OutputFile:
		raw, _ := json.Marshal(map[string]string{
			"private_key": account.PrivateKeyHex(),
			"address":     account.Address().Hex(),
		})
		if err := os.WriteFile(utils.FilePath, raw, 0600); err != nil {
			return errors.Wrap(err, "failed to write account to file")
		}
	case utils.OutputVault:
		config, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		storage := config.SecretsStorage()
		if err = storage.SaveExecutorAccount(account); err != nil {
			return errors.Wrap(err, "failed to save account to vault")
		}
	}

	return nil
}
