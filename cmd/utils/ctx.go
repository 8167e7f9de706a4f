package utils

import (
	"context"

	"github.com/Bridgeless-Project/treasury-svc/internal/config"
	"github.com/spf13/cobra"
)

type ctxKey int

const cfgKey ctxKey = iota

func WithConfig(cmd *cobra.Command, cfg config.Config) *cobra.Command {
	cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, cfg))

	return cmd
}

func Config(cmd *cobra.Command) config.Config {
	return cmd.Context().Value(cfgKey).(config.Config)
}

// LoadConfig is a PersistentPreRunE hook putting the config from flags into the command context.
func LoadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := ConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	WithConfig(cmd, cfg)

	return nil
}
