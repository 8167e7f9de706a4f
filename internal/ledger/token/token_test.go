package token

import (
	"testing"

	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/db/memory"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob   = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	carol = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func newToken(t *testing.T) (*Token, db.StateQ) {
	t.Helper()

	q := memory.NewStateQ(memory.NewStorage())
	tok := New(q, events.NewRecorder(q.Events()))
	require.NoError(t, tok.Mint(alice, uint256.NewInt(1_000)))

	return tok, q
}

func requireBalance(t *testing.T, tok *Token, account common.Address, expected uint64) {
	t.Helper()

	balance, err := tok.BalanceOf(account)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(expected), balance)
}

func Test_Mint(t *testing.T) {
	tok, q := newToken(t)

	requireBalance(t, tok, alice, 1_000)
	supply, err := tok.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(1_000), supply)

	require.NoError(t, tok.Mint(bob, new(uint256.Int)))
	raw := types.EventMinted.String()
	minted, err := q.Events().Select(db.EventsSelector{Type: &raw})
	require.NoError(t, err)
	require.Len(t, minted, 1, "zero mint must not emit")

	huge := new(uint256.Int).SetAllOne()
	require.ErrorIs(t, tok.Mint(bob, huge), types.ErrOverflow)
	requireBalance(t, tok, bob, 0)

	require.ErrorIs(t, tok.Mint(common.Address{}, uint256.NewInt(1)), types.ErrZeroAddress)
}

func Test_Transfer(t *testing.T) {
	type tc struct {
		from, to common.Address
		amount   uint64
		err      error
		expected map[common.Address]uint64
	}

	testCases := map[string]tc{
		"should transfer part of balance": {
			from: alice, to: bob, amount: 400,
			expected: map[common.Address]uint64{alice: 600, bob: 400},
		},
		"should transfer whole balance": {
			from: alice, to: bob, amount: 1_000,
			expected: map[common.Address]uint64{alice: 0, bob: 1_000},
		},
		"should transfer to self": {
			from: alice, to: alice, amount: 300,
			expected: map[common.Address]uint64{alice: 1_000},
		},
		"should fail on insufficient balance": {
			from: alice, to: bob, amount: 1_001,
			err:      types.ErrInsufficientBalance,
			expected: map[common.Address]uint64{alice: 1_000, bob: 0},
		},
		"should fail on zero recipient": {
			from: alice, to: common.Address{}, amount: 1,
			err:      types.ErrZeroAddress,
			expected: map[common.Address]uint64{alice: 1_000},
		},
	}

	for name, tCase := range testCases {
		t.Run(name, func(t *testing.T) {
			tok, _ := newToken(t)

			err := tok.Transfer(tCase.from, tCase.to, uint256.NewInt(tCase.amount))
			if tCase.err != nil {
				require.ErrorIs(t, err, tCase.err)
			} else {
				require.NoError(t, err)
			}

			for account, balance := range tCase.expected {
				requireBalance(t, tok, account, balance)
			}
		})
	}
}

func Test_TransferFrom(t *testing.T) {
	tok, _ := newToken(t)

	require.ErrorIs(t, tok.TransferFrom(bob, alice, carol, uint256.NewInt(1)), types.ErrInsufficientAllowance)

	require.NoError(t, tok.Approve(alice, bob, uint256.NewInt(300)))
	require.NoError(t, tok.TransferFrom(bob, alice, carol, uint256.NewInt(200)))

	allowance, err := tok.Allowance(alice, bob)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(100), allowance)
	requireBalance(t, tok, carol, 200)

	require.ErrorIs(t, tok.TransferFrom(bob, alice, carol, uint256.NewInt(101)), types.ErrInsufficientAllowance)

	require.NoError(t, tok.Approve(alice, bob, new(uint256.Int).SetAllOne()))
	require.NoError(t, tok.TransferFrom(bob, alice, carol, uint256.NewInt(800)))
	allowance, err = tok.Allowance(alice, bob)
	require.NoError(t, err)
	require.True(t, allowance.Eq(new(uint256.Int).SetAllOne()), "maximum allowance is never spent")

	require.ErrorIs(t, tok.Approve(alice, common.Address{}, uint256.NewInt(1)), types.ErrZeroAddress)
}
