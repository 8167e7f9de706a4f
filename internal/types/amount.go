package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
)

const HexPrefix = "0x"

// ParseAmount parses a base-unit amount given either in decimal or in 0x-prefixed hex.
func ParseAmount(raw string) (*uint256.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty amount")
	}

	if strings.HasPrefix(raw, HexPrefix) {
		amount, err := uint256.FromHex(raw)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse hex amount")
		}

		return amount, nil
	}

	amount, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse decimal amount")
	}

	return amount, nil
}

// Add returns a+b or ErrOverflow.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}

	return sum, nil
}

// Sub returns a-b or ErrInsufficientBalance when b > a.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrInsufficientBalance
	}

	return diff, nil
}

// CopyOrZero never returns nil, so callers can mutate the result freely.
func CopyOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}

	return new(uint256.Int).Set(v)
}

var AmountHook = figure.Hooks{
	"*uint256.Int": func(value interface{}) (reflect.Value, error) {
		switch v := value.(type) {
		case string:
			amount, err := ParseAmount(v)
			if err != nil {
				return reflect.Value{}, errors.Wrap(err, "failed to unmarshal amount")
			}

			return reflect.ValueOf(amount), nil
		case int:
			if v < 0 {
				return reflect.Value{}, errors.New("amount cannot be negative")
			}

			return reflect.ValueOf(uint256.NewInt(uint64(v))), nil
		case nil:
			return reflect.ValueOf((*uint256.Int)(nil)), nil
		default:
			return reflect.Value{}, fmt.Errorf("unexpected type %T for amount", value)
		}
	},
}
