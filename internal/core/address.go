package core

import (
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
)

var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress accepts only well-formed 20-byte hex addresses.
// Mixed-case input must carry a valid EIP-55 checksum.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}

	addr := common.HexToAddress(s)
	if hasMixedCase(s) && addr.Hex() != withPrefix(s) {
		return common.Address{}, errors.Wrap(ErrInvalidAddress, "checksum mismatch")
	}

	return addr, nil
}

func withPrefix(s string) string {
	return "0x" + digits(s)
}

func digits(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}

	return s
}

func hasMixedCase(s string) bool {
	var lower, upper bool
	for _, c := range digits(s) {
		switch {
		case c >= 'a' && c <= 'f':
			lower = true
		case c >= 'A' && c <= 'F':
			upper = true
		}
	}

	return lower && upper
}

var AccountHook = figure.Hooks{
	"*core.Account": func(value interface{}) (reflect.Value, error) {
		switch v := value.(type) {
		case string:
			account, err := NewAccount(v)
			if err != nil {
				return reflect.Value{}, errors.Wrap(err, "failed to unmarshal account")
			}

			return reflect.ValueOf(account), nil
		case nil:
			return reflect.ValueOf((*Account)(nil)), nil
		default:
			return reflect.Value{}, fmt.Errorf("unexpected type %T for core.Account", value)
		}
	},
}
