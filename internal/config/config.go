package config

import (
	api "github.com/Bridgeless-Project/treasury-svc/internal/api/config"
	ledger "github.com/Bridgeless-Project/treasury-svc/internal/ledger/config"
	vault "github.com/Bridgeless-Project/treasury-svc/internal/secrets/vault/config"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/kit/pgdb"
)

type Config interface {
	comfig.Logger
	pgdb.Databaser
	vault.Vaulter
	api.Listenerer
	ledger.Ledgerer
	ledger.Custodier
	Executorer
}

type config struct {
	getter kv.Getter

	comfig.Logger
	pgdb.Databaser
	vault.Vaulter
	api.Listenerer
	ledger.Ledgerer
	ledger.Custodier
	Executorer
}

func New(getter kv.Getter) Config {
	vaulter := vault.NewVaulter()

	return &config{
		getter: getter,

		Logger:     comfig.NewLogger(getter, comfig.LoggerOpts{}),
		Databaser:  pgdb.NewDatabaser(getter),
		Vaulter:    vaulter,
		Listenerer: api.NewListenerer(getter),
		Ledgerer:   ledger.NewLedgerer(getter),
		Custodier:  ledger.NewCustodier(getter),
		Executorer: NewExecutorer(getter, vaulter.SecretsStorage),
	}
}
