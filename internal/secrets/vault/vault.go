package vault

import (
	"context"

	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	client "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

const (
	keyExecutor = "executor"
	valueKey    = "value"
)

type Storage struct {
	client *client.KVv2
}

func NewStorage(client *client.KVv2) *Storage {
	return &Storage{
		client: client,
	}
}

func (s *Storage) GetExecutorAccount() (*core.Account, error) {
	kvData, err := s.client.Get(context.Background(), keyExecutor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load executor account")
	}
	if kvData == nil {
		return nil, errors.New("executor account not found")
	}

	val, ok := kvData.Data[valueKey].(string)
	if !ok {
		return nil, errors.New("executor account value not found")
	}

	account, err := core.NewAccount(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode executor account")
	}

	return account, nil
}

func (s *Storage) SaveExecutorAccount(account *core.Account) error {
	_, err := s.client.Put(context.Background(), keyExecutor, map[string]interface{}{
		valueKey: account.PrivateKeyHex(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to save executor account")
	}

	return nil
}
