package run

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Bridgeless-Project/treasury-svc/cmd/utils"
	"github.com/Bridgeless-Project/treasury-svc/internal/api"
	"github.com/Bridgeless-Project/treasury-svc/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/distributed_lab/logan/v3"
	"golang.org/x/sync/errgroup"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Starts the service API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.ConfigFromFlags(cmd)
		if err != nil {
			return errors.Wrap(err, "failed to get config from flags")
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer cancel()

		err = runServiceApiMode(ctx, cfg)

		return errors.Wrap(err, "failed to run service api")
	},
}

func runServiceApiMode(ctx context.Context, cfg config.Config) error {
	logger := cfg.Log()

	l, err := utils.NewLedger(cfg)
	if err != nil {
		return err
	}
	defer l.Hub().Close()

	if err = utils.Bootstrap(cfg, l); err != nil {
		return err
	}

	executor := cfg.ExecutorAccount()
	logger.WithFields(logan.F{
		"executor": executor.Address().Hex(),
		"variant":  l.Variant(),
		"policy":   l.Authorizer().Policy().String(),
	}).Info("ledger ready")

	apiServer := api.NewServer(
		cfg.ApiGrpcListener(),
		cfg.ApiHttpListener(),
		l,
		executor,
		logger.WithField("component", "api_server"),
	)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return errors.Wrap(apiServer.RunHTTP(ctx), "error while running API HTTP server") })
	eg.Go(func() error { return errors.Wrap(apiServer.RunGRPC(ctx), "error while running API GRPC server") })

	return eg.Wait()
}
