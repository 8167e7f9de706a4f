package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	policies = []types.ReplayPolicy{types.ReplayPolicyNonce, types.ReplayPolicyRequestId}
	variants = map[string]func() *fakeAsset{
		"issuing": func() *fakeAsset { return nil },
		"custody": newFakeAsset,
	}
)

func Test_Withdraw(t *testing.T) {
	for _, policy := range policies {
		for variant, newAsset := range variants {
			t.Run(string(policy)+"/"+variant, func(t *testing.T) {
				testCases := map[string]struct {
					executor common.Address
					amount   uint64
					signer   account
					err      error
				}{
					"should withdraw with valid authorization": {
						executor: executor.address,
						amount:   50,
						signer:   user,
					},
					"should withdraw the whole balance": {
						executor: executor.address,
						amount:   100,
						signer:   user,
					},
					"should reject executor without withdrawer role": {
						executor: stranger.address,
						amount:   50,
						signer:   user,
						err:      types.ErrPermissionDenied,
					},
					"should reject authorization signed by another account": {
						executor: executor.address,
						amount:   50,
						signer:   stranger,
						err:      types.ErrInvalidSignature,
					},
					"should reject amount exceeding the balance": {
						executor: executor.address,
						amount:   101,
						signer:   user,
						err:      types.ErrInsufficientBalance,
					},
					"should reject zero amount": {
						executor: executor.address,
						amount:   0,
						signer:   user,
						err:      types.ErrInvalidAmount,
					},
					"should check the executor role before the amount": {
						executor: stranger.address,
						amount:   0,
						signer:   stranger,
						err:      types.ErrPermissionDenied,
					},
				}

				for name, tCase := range testCases {
					t.Run(name, func(t *testing.T) {
						asset := newAsset()
						l := newLedger(t, policy, asset)
						fund(t, l, asset, user.address, 100)

						request := withdrawRequest(l, tCase.amount, 0)
						sig := sign(t, l, request, tCase.signer.key)

						err := l.Withdraw(tCase.executor, request, sig)
						if tCase.err != nil {
							require.ErrorIs(t, err, tCase.err)
							requireBalance(t, l, user.address, 100)
							requireBalance(t, l, recipient.address, 0)
							return
						}

						require.NoError(t, err)
						requireBalance(t, l, user.address, 100-tCase.amount)
						requireBalance(t, l, recipient.address, tCase.amount)

						err = l.Withdraw(tCase.executor, request, sig)
						require.True(t, types.IsReplay(err), "resubmission must be rejected as replay, got %v", err)
						requireBalance(t, l, user.address, 100-tCase.amount)
					})
				}
			})
		}
	}
}

func Test_Withdraw_FailedAttemptKeepsReplayToken(t *testing.T) {
	for _, policy := range policies {
		t.Run(string(policy), func(t *testing.T) {
			l := newLedger(t, policy, nil)
			fund(t, l, nil, user.address, 10)

			tooMuch := withdrawRequest(l, 20, 0)
			require.ErrorIs(t, l.Withdraw(executor.address, tooMuch, sign(t, l, tooMuch, user.key)), types.ErrInsufficientBalance)

			// the token of the rolled back attempt is still usable
			request := withdrawRequest(l, 10, 0)
			require.NoError(t, l.Withdraw(executor.address, request, sign(t, l, request, user.key)))

			if policy == types.ReplayPolicyNonce {
				nonce, err := l.Nonce(user.address)
				require.NoError(t, err)
				require.Equal(t, uint64(1), nonce)
			} else {
				consumed, err := l.IsConsumed(request.RequestId)
				require.NoError(t, err)
				require.True(t, consumed)
			}
		})
	}
}

func Test_Withdraw_ZeroRecipient(t *testing.T) {
	// the recipient is checked after the replay token and before the balance
	for _, policy := range policies {
		for name, amount := range map[string]uint64{
			"within balance":    50,
			"exceeding balance": 101,
		} {
			t.Run(string(policy)+"/"+name, func(t *testing.T) {
				l := newLedger(t, policy, nil)
				fund(t, l, nil, user.address, 100)

				request := withdrawRequest(l, amount, 0)
				request.To = common.Address{}

				err := l.Withdraw(executor.address, request, sign(t, l, request, user.key))
				require.ErrorIs(t, err, types.ErrZeroAddress)
				requireBalance(t, l, user.address, 100)

				if policy == types.ReplayPolicyNonce {
					nonce, err := l.Nonce(user.address)
					require.NoError(t, err)
					require.Equal(t, uint64(0), nonce)
				} else {
					consumed, err := l.IsConsumed(request.RequestId)
					require.NoError(t, err)
					require.False(t, consumed)
				}
			})
		}
	}
}

func Test_Withdraw_Nonces(t *testing.T) {
	l := newLedger(t, types.ReplayPolicyNonce, nil)
	fund(t, l, nil, user.address, 100)

	skipped := withdrawRequest(l, 10, 1)
	require.ErrorIs(t, l.Withdraw(executor.address, skipped, sign(t, l, skipped, user.key)), types.ErrStaleNonce)

	for nonce := uint64(0); nonce < 3; nonce++ {
		request := withdrawRequest(l, 10, nonce)
		require.NoError(t, l.Withdraw(executor.address, request, sign(t, l, request, user.key)))
	}

	stale := withdrawRequest(l, 10, 1)
	require.ErrorIs(t, l.Withdraw(executor.address, stale, sign(t, l, stale, user.key)), types.ErrStaleNonce)
	requireBalance(t, l, user.address, 70)
}

func Test_Withdraw_DomainBinding(t *testing.T) {
	l := newLedger(t, types.ReplayPolicyRequestId, nil)
	fund(t, l, nil, user.address, 100)

	request := withdrawRequest(l, 10, 0)

	for name, mutate := range map[string]func(d *signature.Domain){
		"another chain":    func(d *signature.Domain) { d.ChainId.SetInt64(1) },
		"another instance": func(d *signature.Domain) { d.VerifyingContract = custodian },
		"another version":  func(d *signature.Domain) { d.Version = "2" },
	} {
		t.Run(name, func(t *testing.T) {
			domain := testDomain()
			mutate(&domain)

			foreign, err := signature.NewAuthorizer(domain, types.ReplayPolicyRequestId)
			require.NoError(t, err)
			sig, err := foreign.Sign(request, user.key)
			require.NoError(t, err)

			require.ErrorIs(t, l.Withdraw(executor.address, request, sig), types.ErrInvalidSignature)
		})
	}

	requireBalance(t, l, user.address, 100)
}

func Test_Withdraw_Concurrent(t *testing.T) {
	const (
		attempts = 25
		amount   = 10
	)

	l := newLedger(t, types.ReplayPolicyRequestId, nil)
	fund(t, l, nil, user.address, 100)

	supplyBefore, err := l.TotalSupply()
	require.NoError(t, err)

	requests := make([]signature.WithdrawRequest, attempts)
	signatures := make([]signature.Signature, attempts)
	for i := range requests {
		requests[i] = withdrawRequest(l, amount, uint64(i))
		signatures[i] = sign(t, l, requests[i], user.key)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			err := l.Withdraw(executor.address, requests[i], signatures[i])
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, types.ErrInsufficientBalance)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 10, succeeded)
	requireBalance(t, l, user.address, 0)
	requireBalance(t, l, recipient.address, 100)

	supplyAfter, err := l.TotalSupply()
	require.NoError(t, err)
	require.Equal(t, supplyBefore, supplyAfter)

	_, err = l.CheckSolvency(context.Background())
	require.NoError(t, err)
}
