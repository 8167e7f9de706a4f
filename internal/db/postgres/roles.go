package pg

import (
	"database/sql"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/kit/pgdb"
)

const (
	rolesTable   = "roles"
	rolesRole    = "role"
	rolesAccount = "account"

	roleAdminsTable     = "role_admins"
	roleAdminsRole      = "role"
	roleAdminsAdminRole = "admin_role"
)

type rolesQ struct {
	db *pgdb.DB
}

func (q *rolesQ) Has(role common.Hash, account common.Address) (bool, error) {
	stmt := squirrel.
		Select("COUNT(*)").
		From(rolesTable).
		Where(squirrel.Eq{
			rolesRole:    db.RoleKey(role),
			rolesAccount: db.AddressKey(account),
		})

	var count int64
	if err := q.db.Get(&count, stmt); err != nil {
		return false, errors.Wrap(err, "failed to check role membership")
	}

	return count > 0, nil
}

func (q *rolesQ) Insert(role common.Hash, account common.Address) error {
	stmt := squirrel.
		Insert(rolesTable).
		SetMap(map[string]interface{}{
			rolesRole:    db.RoleKey(role),
			rolesAccount: db.AddressKey(account),
		}).
		Suffix("ON CONFLICT DO NOTHING")

	return errors.Wrap(q.db.Exec(stmt), "failed to insert role member")
}

func (q *rolesQ) Delete(role common.Hash, account common.Address) error {
	stmt := squirrel.
		Delete(rolesTable).
		Where(squirrel.Eq{
			rolesRole:    db.RoleKey(role),
			rolesAccount: db.AddressKey(account),
		})

	return errors.Wrap(q.db.Exec(stmt), "failed to delete role member")
}

func (q *rolesQ) Count(role common.Hash) (int64, error) {
	stmt := squirrel.
		Select("COUNT(*)").
		From(rolesTable).
		Where(squirrel.Eq{rolesRole: db.RoleKey(role)})

	var count int64
	if err := q.db.Get(&count, stmt); err != nil {
		return 0, errors.Wrap(err, "failed to count role members")
	}

	return count, nil
}

func (q *rolesQ) Members(role common.Hash) ([]common.Address, error) {
	stmt := squirrel.
		Select(rolesAccount).
		From(rolesTable).
		Where(squirrel.Eq{rolesRole: db.RoleKey(role)}).
		OrderBy(rolesAccount + " ASC")

	var raw []string
	if err := q.db.Select(&raw, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select role members")
	}

	members := make([]common.Address, len(raw))
	for i, account := range raw {
		members[i] = common.HexToAddress(account)
	}

	return members, nil
}

func (q *rolesQ) Admin(role common.Hash) (common.Hash, bool, error) {
	stmt := squirrel.
		Select(roleAdminsAdminRole).
		From(roleAdminsTable).
		Where(squirrel.Eq{roleAdminsRole: db.RoleKey(role)})

	var raw string
	err := q.db.Get(&raw, stmt)
	if errors.Is(err, sql.ErrNoRows) {
		return common.Hash{}, false, nil
	}
	if err != nil {
		return common.Hash{}, false, errors.Wrap(err, "failed to get role admin")
	}

	return common.HexToHash(raw), true, nil
}

func (q *rolesQ) SetAdmin(role, admin common.Hash) error {
	stmt := squirrel.
		Insert(roleAdminsTable).
		SetMap(map[string]interface{}{
			roleAdminsRole:      db.RoleKey(role),
			roleAdminsAdminRole: db.RoleKey(admin),
		}).
		Suffix("ON CONFLICT (role) DO UPDATE SET admin_role = EXCLUDED.admin_role")

	return errors.Wrap(q.db.Exec(stmt), "failed to set role admin")
}
