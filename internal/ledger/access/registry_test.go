package access

import (
	"testing"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/db/memory"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	alice    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob      = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func newRegistry(t *testing.T) (*Registry, db.StateQ) {
	t.Helper()

	q := memory.NewStateQ(memory.NewStorage())
	registry := NewRegistry(q.Roles(), events.NewRecorder(q.Events()))
	require.NoError(t, registry.Seed(AdminRole, deployer))

	return registry, q
}

func countEvents(t *testing.T, q db.StateQ, eventType types.EventType) int {
	t.Helper()

	raw := eventType.String()
	selected, err := q.Events().Select(db.EventsSelector{Type: &raw})
	require.NoError(t, err)

	return len(selected)
}

func Test_WithdrawerRole(t *testing.T) {
	require.Equal(t,
		common.HexToHash("0x10dac8c06a04bec0b551627dad28bc00d6516b0caacd1c7b345fcdb5211334e4"),
		WithdrawerRole,
	)
}

func Test_ParseRole(t *testing.T) {
	type tc struct {
		raw      string
		expected common.Hash
		valid    bool
	}

	testCases := map[string]tc{
		"admin name":      {raw: "admin", expected: AdminRole, valid: true},
		"withdrawer name": {raw: "WITHDRAWER", expected: WithdrawerRole, valid: true},
		"hex role":        {raw: WithdrawerRole.Hex(), expected: WithdrawerRole, valid: true},
		"unknown name":    {raw: "minter"},
		"short hex":       {raw: "0x01"},
		"malformed hex":   {raw: "0x" + string(make([]byte, 64))},
	}

	for name, tCase := range testCases {
		t.Run(name, func(t *testing.T) {
			role, err := ParseRole(tCase.raw)
			if !tCase.valid {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tCase.expected, role)
		})
	}
}

func Test_Registry_Grant(t *testing.T) {
	registry, q := newRegistry(t)

	require.ErrorIs(t, registry.Grant(alice, WithdrawerRole, bob), types.ErrPermissionDenied)

	require.NoError(t, registry.Grant(deployer, WithdrawerRole, alice))
	require.NoError(t, registry.Grant(deployer, WithdrawerRole, alice))
	require.Equal(t, 1, countEvents(t, q, types.EventRoleGranted), "repeated grant must not emit")

	has, err := registry.HasRole(WithdrawerRole, alice)
	require.NoError(t, err)
	require.True(t, has)

	// withdrawers do not manage the role they hold
	require.ErrorIs(t, registry.Grant(alice, WithdrawerRole, bob), types.ErrPermissionDenied)
	require.ErrorIs(t, registry.Grant(deployer, WithdrawerRole, common.Address{}), types.ErrZeroAddress)
}

func Test_Registry_Revoke(t *testing.T) {
	registry, q := newRegistry(t)
	require.NoError(t, registry.Grant(deployer, WithdrawerRole, alice))

	require.ErrorIs(t, registry.Revoke(bob, WithdrawerRole, alice), types.ErrPermissionDenied)

	require.NoError(t, registry.Revoke(deployer, WithdrawerRole, alice))
	require.NoError(t, registry.Revoke(deployer, WithdrawerRole, alice))
	require.Equal(t, 1, countEvents(t, q, types.EventRoleRevoked), "repeated revoke must not emit")

	require.ErrorIs(t, registry.Check(WithdrawerRole, alice), types.ErrPermissionDenied)
}

func Test_Registry_LastAdmin(t *testing.T) {
	registry, _ := newRegistry(t)

	require.ErrorIs(t, registry.Revoke(deployer, AdminRole, deployer), types.ErrLastAdmin)
	require.ErrorIs(t, registry.Renounce(deployer, AdminRole), types.ErrLastAdmin)

	require.NoError(t, registry.Grant(deployer, AdminRole, alice))
	require.NoError(t, registry.Renounce(deployer, AdminRole))
	require.ErrorIs(t, registry.Revoke(alice, AdminRole, alice), types.ErrLastAdmin)

	members, err := registry.Members(AdminRole)
	require.NoError(t, err)
	require.Equal(t, []common.Address{alice}, members)
}

func Test_Registry_SetRoleAdmin(t *testing.T) {
	registry, q := newRegistry(t)
	operators := common.HexToHash("0x0a")

	require.ErrorIs(t, registry.SetRoleAdmin(alice, WithdrawerRole, operators), types.ErrPermissionDenied)

	require.NoError(t, registry.SetRoleAdmin(deployer, WithdrawerRole, operators))
	require.NoError(t, registry.SetRoleAdmin(deployer, operators, operators))
	require.Equal(t, 2, countEvents(t, q, types.EventRoleAdminChanged))

	admin, err := registry.RoleAdmin(WithdrawerRole)
	require.NoError(t, err)
	require.Equal(t, operators, admin)

	// deployer no longer manages withdrawers
	require.ErrorIs(t, registry.Grant(deployer, WithdrawerRole, alice), types.ErrPermissionDenied)

	require.NoError(t, registry.Seed(operators, bob))
	require.NoError(t, registry.Grant(bob, WithdrawerRole, alice))
}
