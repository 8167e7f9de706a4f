package utils

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/distributed_lab/kit/kv"
)

const (
	configFlag = "config"

	OutputConsole = "console"
	OutputFile    = "file"
	OutputVault   = "vault"
)

var (
	OutputType string
	FilePath   string
)

func RegisterOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&OutputType, "output", "o", OutputConsole, "Output type: console, file, or vault")
	cmd.Flags().StringVar(&FilePath, "path", "account.json", "Path to save the output file (used when output type is 'file')")
	RegisterConfigFlag(cmd)
}

func RegisterConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(configFlag, "c", "config.yaml", "Path to the config file")
}

func OutputValid() bool {
	return OutputType == OutputConsole || OutputType == OutputFile || OutputType == OutputVault
}

func ConfigFromFlags(cmd *cobra.Command) (config.Config, error) {
	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config flag")
	}

	// ensure that the viper is loaded
	viper := kv.NewViperFile(configPath)
	if _, err = viper.GetStringMap("ping"); err != nil {
		return nil, errors.Wrap(err, "failed to ping viper")
	}

	return config.New(viper), nil
}
