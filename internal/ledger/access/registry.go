package access

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Registry maps roles to the accounts holding them.
// Every role is managed by its admin role, which defaults to AdminRole.
type Registry struct {
	roles    db.RolesQ
	recorder *events.Recorder
}

// NewRegistry creates a registry over the given roles storage.
// Recorder may be nil for read-only usage.
func NewRegistry(roles db.RolesQ, recorder *events.Recorder) *Registry {
	return &Registry{roles: roles, recorder: recorder}
}

func (r *Registry) HasRole(role common.Hash, account common.Address) (bool, error) {
	has, err := r.roles.Has(role, account)
	if err != nil {
		return false, errors.Wrap(err, "failed to check role")
	}

	return has, nil
}

// Check fails with ErrPermissionDenied if the account does not hold the role.
func (r *Registry) Check(role common.Hash, account common.Address) error {
	has, err := r.HasRole(role, account)
	if err != nil {
		return err
	}
	if !has {
		return errors.Wrapf(types.ErrPermissionDenied, "account %s is missing role %s", account.Hex(), RoleName(role))
	}

	return nil
}

func (r *Registry) RoleAdmin(role common.Hash) (common.Hash, error) {
	admin, set, err := r.roles.Admin(role)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to get role admin")
	}
	if !set {
		return AdminRole, nil
	}

	return admin, nil
}

func (r *Registry) Members(role common.Hash) ([]common.Address, error) {
	members, err := r.roles.Members(role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get role members")
	}

	return members, nil
}

// Grant gives the role to the account. Granting a role the account already holds is a no-op.
func (r *Registry) Grant(sender common.Address, role common.Hash, account common.Address) error {
	if err := r.checkAdmin(sender, role); err != nil {
		return err
	}

	return r.grant(sender, role, account)
}

// Seed grants the role without checking the sender permissions.
// Used only to initialize a freshly deployed ledger.
func (r *Registry) Seed(role common.Hash, account common.Address) error {
	return r.grant(account, role, account)
}

// Revoke takes the role away from the account. Revoking a missing role is a no-op.
func (r *Registry) Revoke(sender common.Address, role common.Hash, account common.Address) error {
	if err := r.checkAdmin(sender, role); err != nil {
		return err
	}

	return r.revoke(sender, role, account)
}

// Renounce lets the sender drop its own role.
func (r *Registry) Renounce(sender common.Address, role common.Hash) error {
	return r.revoke(sender, role, sender)
}

func (r *Registry) SetRoleAdmin(sender common.Address, role, admin common.Hash) error {
	if err := r.checkAdmin(sender, role); err != nil {
		return err
	}

	previous, err := r.RoleAdmin(role)
	if err != nil {
		return err
	}
	if previous == admin {
		return nil
	}

	if err = r.roles.SetAdmin(role, admin); err != nil {
		return errors.Wrap(err, "failed to set role admin")
	}

	return r.record(types.EventRoleAdminChanged, types.RoleAdminEvent{
		Role:          RoleName(role),
		PreviousAdmin: RoleName(previous),
		NewAdmin:      RoleName(admin),
	})
}

func (r *Registry) checkAdmin(sender common.Address, role common.Hash) error {
	admin, err := r.RoleAdmin(role)
	if err != nil {
		return err
	}

	return r.Check(admin, sender)
}

func (r *Registry) grant(sender common.Address, role common.Hash, account common.Address) error {
	if account == (common.Address{}) {
		return errors.Wrap(types.ErrZeroAddress, "cannot grant role to zero address")
	}

	has, err := r.HasRole(role, account)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	if err = r.roles.Insert(role, account); err != nil {
		return errors.Wrap(err, "failed to grant role")
	}

	return r.record(types.EventRoleGranted, types.RoleEvent{
		Role:    RoleName(role),
		Account: account.Hex(),
		Sender:  sender.Hex(),
	})
}

func (r *Registry) revoke(sender common.Address, role common.Hash, account common.Address) error {
	has, err := r.HasRole(role, account)
	if err != nil {
		return err
	}
	if !has {
		return nil
	}

	if role == AdminRole {
		count, err := r.roles.Count(AdminRole)
		if err != nil {
			return errors.Wrap(err, "failed to count admins")
		}
		if count <= 1 {
			return errors.Wrapf(types.ErrLastAdmin, "account %s", account.Hex())
		}
	}

	if err = r.roles.Delete(role, account); err != nil {
		return errors.Wrap(err, "failed to revoke role")
	}

	return r.record(types.EventRoleRevoked, types.RoleEvent{
		Role:    RoleName(role),
		Account: account.Hex(),
		Sender:  sender.Hex(),
	})
}

func (r *Registry) record(eventType types.EventType, payload interface{}) error {
	if r.recorder == nil {
		return nil
	}

	return r.recorder.Record(eventType, payload)
}
