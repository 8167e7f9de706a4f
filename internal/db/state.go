package db

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var ErrAlreadyConsumed = errors.New("request already consumed")

// StateQ gives access to the whole persisted ledger state.
// Every sub-query obtained from the same StateQ shares its transaction.
type StateQ interface {
	New() StateQ

	Balances() BalancesQ
	Allowances() AllowancesQ
	Supply() SupplyQ
	Roles() RolesQ
	Nonces() NoncesQ
	Requests() RequestsQ
	Events() EventsQ

	// Lock takes the ledger-wide exclusive lock until the end of the current transaction.
	Lock() error
	Transaction(f func() error) error
}

type BalancesQ interface {
	Get(account common.Address) (*uint256.Int, error)
	Set(account common.Address, amount *uint256.Int) error
	Sum() (*uint256.Int, error)
}

type AllowancesQ interface {
	Get(owner, spender common.Address) (*uint256.Int, error)
	Set(owner, spender common.Address, amount *uint256.Int) error
}

type SupplyQ interface {
	Get() (*uint256.Int, error)
	Set(amount *uint256.Int) error
}

type RolesQ interface {
	Has(role common.Hash, account common.Address) (bool, error)
	Insert(role common.Hash, account common.Address) error
	Delete(role common.Hash, account common.Address) error
	Count(role common.Hash) (int64, error)
	Members(role common.Hash) ([]common.Address, error)

	// Admin returns the admin role of the given role and whether it was set explicitly.
	Admin(role common.Hash) (common.Hash, bool, error)
	SetAdmin(role, admin common.Hash) error
}

type NoncesQ interface {
	Get(account common.Address) (uint64, error)
	Set(account common.Address, nonce uint64) error
}

type RequestsQ interface {
	Get(id common.Hash) (*ConsumedRequest, error)
	// Insert fails with ErrAlreadyConsumed if the request id is already present.
	Insert(request ConsumedRequest) error
}

type EventsQ interface {
	Insert(event Event) (int64, error)
	Select(selector EventsSelector) ([]Event, error)
}

type ConsumedRequest struct {
	RequestId  string    `structs:"request_id" db:"request_id"`
	Account    string    `structs:"account" db:"account"`
	ConsumedAt time.Time `structs:"consumed_at" db:"consumed_at"`
}

type Event struct {
	Id        int64     `structs:"-" db:"id"`
	Type      string    `structs:"type" db:"type"`
	Payload   []byte    `structs:"payload" db:"payload"`
	CreatedAt time.Time `structs:"created_at" db:"created_at"`
}

type EventsSelector struct {
	// AfterId selects events with id strictly greater than the given one
	AfterId int64
	Type    *string
	Limit   uint64
}

// AddressKey is the canonical storage representation of an account.
func AddressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// RoleKey is the canonical storage representation of a role.
func RoleKey(role common.Hash) string {
	return role.Hex()
}

// RequestKey is the canonical storage representation of a request id.
func RequestKey(id common.Hash) string {
	return id.Hex()
}
