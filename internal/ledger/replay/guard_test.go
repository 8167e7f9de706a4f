package replay

import (
	"math"
	"testing"

	"github.com/Bridgeless-Project/treasury-svc/internal/db/memory"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob   = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func Test_NewGuard(t *testing.T) {
	q := memory.NewStateQ(memory.NewStorage())

	guard, err := NewGuard(types.ReplayPolicyNonce, q)
	require.NoError(t, err)
	require.Equal(t, types.ReplayPolicyNonce, guard.Policy())

	guard, err = NewGuard(types.ReplayPolicyRequestId, q)
	require.NoError(t, err)
	require.Equal(t, types.ReplayPolicyRequestId, guard.Policy())

	_, err = NewGuard("timestamp", q)
	require.Error(t, err)
}

func Test_NonceGuard(t *testing.T) {
	q := memory.NewStateQ(memory.NewStorage())
	guard := NewNonceGuard(q.Nonces())

	consume := func(account common.Address, nonce uint64) error {
		return guard.Consume(signature.WithdrawRequest{User: account, Nonce: uint256.NewInt(nonce)})
	}

	require.NoError(t, consume(alice, 0))
	require.NoError(t, consume(alice, 1))

	require.ErrorIs(t, consume(alice, 1), types.ErrStaleNonce, "replayed nonce")
	require.ErrorIs(t, consume(alice, 0), types.ErrStaleNonce, "older nonce")
	require.ErrorIs(t, consume(alice, 5), types.ErrStaleNonce, "skipped nonce")
	require.ErrorIs(t, guard.Consume(signature.WithdrawRequest{User: alice}), types.ErrStaleNonce, "missing nonce")

	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	require.ErrorIs(t, guard.ConsumeNonce(alice, huge), types.ErrStaleNonce, "nonce beyond counter range")

	current, err := guard.Current(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(2), current)

	// counters are independent per account
	require.NoError(t, consume(bob, 0))
	current, err = guard.Current(bob)
	require.NoError(t, err)
	require.Equal(t, uint64(1), current)

	require.NoError(t, q.Nonces().Set(bob, math.MaxUint64))
	require.ErrorIs(t, consume(bob, math.MaxUint64), types.ErrOverflow)
}

func Test_RequestGuard(t *testing.T) {
	q := memory.NewStateQ(memory.NewStorage())
	guard := NewRequestGuard(q.Requests())

	first := common.HexToHash("0x01")
	second := common.HexToHash("0x02")

	consumed, err := guard.Consumed(first)
	require.NoError(t, err)
	require.False(t, consumed)

	require.NoError(t, guard.Consume(signature.WithdrawRequest{User: alice, RequestId: first}))
	require.ErrorIs(t, guard.Consume(signature.WithdrawRequest{User: alice, RequestId: first}), types.ErrReplayedRequest)
	// the id is global, not scoped to the account
	require.ErrorIs(t, guard.Consume(signature.WithdrawRequest{User: bob, RequestId: first}), types.ErrReplayedRequest)

	require.NoError(t, guard.ConsumeId(bob, second))

	consumed, err = guard.Consumed(first)
	require.NoError(t, err)
	require.True(t, consumed)
}
