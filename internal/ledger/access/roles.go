package access

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

var (
	// AdminRole is the default admin of every role, including itself.
	AdminRole = common.Hash{}
	// WithdrawerRole allows executing signed withdrawals on behalf of users.
	WithdrawerRole = crypto.Keccak256Hash([]byte("WITHDRAWER_ROLE"))
)

var knownRoles = map[string]common.Hash{
	"admin":      AdminRole,
	"withdrawer": WithdrawerRole,
}

// ParseRole accepts either a well-known role name or a 32-byte hex role id.
func ParseRole(raw string) (common.Hash, error) {
	raw = strings.TrimSpace(raw)
	if role, ok := knownRoles[strings.ToLower(raw)]; ok {
		return role, nil
	}

	if !strings.HasPrefix(raw, "0x") || len(raw) != 2+2*common.HashLength {
		return common.Hash{}, errors.Errorf("unknown role %q", raw)
	}
	decoded, err := hexutil.Decode(raw)
	if err != nil {
		return common.Hash{}, errors.Wrapf(err, "invalid role %q", raw)
	}

	return common.BytesToHash(decoded), nil
}

func RoleName(role common.Hash) string {
	switch role {
	case AdminRole:
		return "admin"
	case WithdrawerRole:
		return "withdrawer"
	default:
		return role.Hex()
	}
}
