package ctx

import (
	"context"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/health"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"gitlab.com/distributed_lab/logan/v3"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	ledgerKey
	executorKey
	healthCheckerKey
)

func LoggerProvider(logger *logan.Entry) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, loggerKey, logger)
	}
}

func Logger(ctx context.Context) *logan.Entry {
	return ctx.Value(loggerKey).(*logan.Entry)
}

func LedgerProvider(l *ledger.Ledger) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, ledgerKey, l)
	}
}

func Ledger(ctx context.Context) *ledger.Ledger {
	return ctx.Value(ledgerKey).(*ledger.Ledger)
}

// ExecutorProvider sets the account the service submits withdrawals from.
func ExecutorProvider(account *core.Account) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, executorKey, account)
	}
}

func Executor(ctx context.Context) *core.Account {
	return ctx.Value(executorKey).(*core.Account)
}

func HealthCheckerProvider(checker *health.Checker) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, healthCheckerKey, checker)
	}
}

func HealthChecker(ctx context.Context) *health.Checker {
	return ctx.Value(healthCheckerKey).(*health.Checker)
}
