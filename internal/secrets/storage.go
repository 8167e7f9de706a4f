package secrets

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
)

type Storage interface {
	// GetExecutorAccount returns the account the service submits withdrawals from.
	GetExecutorAccount() (*core.Account, error)
	SaveExecutorAccount(account *core.Account) error
}
