package config

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/secrets"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

const executorConfigKey = "executor"

// Executorer provides the account the service executes withdrawals from.
type Executorer interface {
	ExecutorAccount() *core.Account
}

type executorer struct {
	getter  kv.Getter
	storage func() secrets.Storage
	once    comfig.Once
}

func NewExecutorer(getter kv.Getter, storage func() secrets.Storage) Executorer {
	return &executorer{getter: getter, storage: storage}
}

func (e *executorer) ExecutorAccount() *core.Account {
	return e.once.Do(func() interface{} {
		var cfg struct {
			FromVault bool          `fig:"from_vault"`
			Key       *core.Account `fig:"key"`
		}

		err := figure.
			Out(&cfg).
			With(figure.BaseHooks, core.AccountHook).
			From(kv.MustGetStringMap(e.getter, executorConfigKey)).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out executor config"))
		}

		if !cfg.FromVault {
			if cfg.Key == nil {
				panic(errors.New("executor key is required when it is not stored in vault"))
			}

			return cfg.Key
		}

		account, err := e.storage().GetExecutorAccount()
		if err != nil {
			panic(errors.Wrap(err, "failed to get executor account from vault"))
		}

		return account
	}).(*core.Account)
}
