package config

import (
	"cmp"
	"os"

	"github.com/Bridgeless-Project/treasury-svc/internal/secrets"
	"github.com/Bridgeless-Project/treasury-svc/internal/secrets/vault"
	vaultapi "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/comfig"
)

const (
	VaultPathEnv   = "VAULT_PATH"
	VaultTokenEnv  = "VAULT_TOKEN"
	VaultMountPath = "MOUNT_PATH"

	defaultMountPath = "secret"
)

type Vaulter interface {
	VaultClient() *vaultapi.KVv2
	SecretsStorage() secrets.Storage
}

type vaulter struct {
	clientOnce  comfig.Once
	storageOnce comfig.Once
}

func NewVaulter() Vaulter {
	return &vaulter{}
}

func (v *vaulter) VaultClient() *vaultapi.KVv2 {
	return v.clientOnce.Do(func() interface{} {
		conf := vaultapi.DefaultConfig()
		conf.Address = os.Getenv(VaultPathEnv)

		client, err := vaultapi.NewClient(conf)
		if err != nil {
			panic(errors.Wrap(err, "failed to create vault client"))
		}

		client.SetToken(os.Getenv(VaultTokenEnv))

		return client.KVv2(cmp.Or(os.Getenv(VaultMountPath), defaultMountPath))
	}).(*vaultapi.KVv2)
}

func (v *vaulter) SecretsStorage() secrets.Storage {
	return v.storageOnce.Do(func() interface{} {
		return vault.NewStorage(v.VaultClient())
	}).(secrets.Storage)
}
