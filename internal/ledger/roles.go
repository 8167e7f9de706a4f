package ledger

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

func (l *Ledger) GrantRole(sender common.Address, role common.Hash, account common.Address) error {
	err := l.mutate(func(s *state) error {
		return s.roles.Grant(sender, role, account)
	})
	logResult(l.roleLogger(sender, role, account), "role grant", err)

	return err
}

func (l *Ledger) RevokeRole(sender common.Address, role common.Hash, account common.Address) error {
	err := l.mutate(func(s *state) error {
		return s.roles.Revoke(sender, role, account)
	})
	logResult(l.roleLogger(sender, role, account), "role revocation", err)

	return err
}

func (l *Ledger) RenounceRole(sender common.Address, role common.Hash) error {
	err := l.mutate(func(s *state) error {
		return s.roles.Renounce(sender, role)
	})
	logResult(l.roleLogger(sender, role, sender), "role renouncement", err)

	return err
}

func (l *Ledger) SetRoleAdmin(sender common.Address, role, admin common.Hash) error {
	err := l.mutate(func(s *state) error {
		return s.roles.SetRoleAdmin(sender, role, admin)
	})
	logResult(l.logger.WithFields(logan.F{
		"sender":     sender.Hex(),
		"role":       access.RoleName(role),
		"admin_role": access.RoleName(admin),
	}), "role admin change", err)

	return err
}

func (l *Ledger) GrantWithdrawer(sender, account common.Address) error {
	return l.GrantRole(sender, access.WithdrawerRole, account)
}

func (l *Ledger) RevokeWithdrawer(sender, account common.Address) error {
	return l.RevokeRole(sender, access.WithdrawerRole, account)
}

func (l *Ledger) roleLogger(sender common.Address, role common.Hash, account common.Address) *logan.Entry {
	return l.logger.WithFields(logan.F{
		"sender":  sender.Hex(),
		"role":    access.RoleName(role),
		"account": account.Hex(),
	})
}
