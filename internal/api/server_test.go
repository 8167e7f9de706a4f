package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bridgeless-Project/treasury-svc/internal/api/requests"
	"github.com/Bridgeless-Project/treasury-svc/internal/api/resources"
	"github.com/Bridgeless-Project/treasury-svc/internal/core"
	"github.com/Bridgeless-Project/treasury-svc/internal/db"
	"github.com/Bridgeless-Project/treasury-svc/internal/db/memory"
	"github.com/Bridgeless-Project/treasury-svc/internal/events"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/access"
	"github.com/Bridgeless-Project/treasury-svc/internal/ledger/signature"
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

var instance = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

type fixture struct {
	ledger   *ledger.Ledger
	router   http.Handler
	deployer *core.Account
	executor *core.Account
	user     *core.Account
	to       common.Address
}

func newFixture(t *testing.T, ctxt context.Context, policy types.ReplayPolicy) *fixture {
	t.Helper()

	authorizer, err := signature.NewAuthorizer(signature.Domain{
		Name:              signature.DefaultName,
		Version:           signature.DefaultVersion,
		ChainId:           big.NewInt(31337),
		VerifyingContract: instance,
	}, policy)
	require.NoError(t, err)

	f := &fixture{to: common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")}
	for _, acc := range []**core.Account{&f.deployer, &f.executor, &f.user} {
		*acc, err = core.GenerateAccount()
		require.NoError(t, err)
	}

	f.ledger = ledger.New(memory.NewStateQ(memory.NewStorage()), authorizer, nil, events.NewHub(), logan.New())
	_, err = f.ledger.Bootstrap(f.deployer.Address(), uint256.NewInt(1_000_000))
	require.NoError(t, err)
	require.NoError(t, f.ledger.GrantWithdrawer(f.deployer.Address(), f.executor.Address()))
	require.NoError(t, f.ledger.Transfer(f.deployer.Address(), f.user.Address(), uint256.NewInt(1000)))

	f.router = NewServer(nil, nil, f.ledger, f.executor, logan.New()).httpRouter(ctxt)

	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))

	return recorder
}

func (f *fixture) withdrawal(t *testing.T, amount uint64, reference string, signer *core.Account) requests.SubmitWithdrawal {
	t.Helper()

	id, err := signature.RequestIdFromReference(reference)
	require.NoError(t, err)

	request := signature.WithdrawRequest{
		User:      f.user.Address(),
		Amount:    uint256.NewInt(amount),
		To:        f.to,
		RequestId: id,
	}
	sig, err := f.ledger.Authorizer().Sign(request, signer.PrivateKey())
	require.NoError(t, err)

	encoded := sig.Hex()
	return requests.SubmitWithdrawal{
		User:      request.User.Hex(),
		Amount:    request.Amount.Dec(),
		To:        request.To.Hex(),
		Reference: &reference,
		Signature: &encoded,
	}
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))

	return result
}

func Test_Queries(t *testing.T) {
	f := newFixture(t, context.Background(), types.ReplayPolicyRequestId)

	t.Run("domain", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/domain", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		domain := decode[resources.DomainResponse](t, recorder)
		require.Equal(t, signature.DefaultName, domain.Name)
		require.Equal(t, "31337", domain.ChainId)
		require.Equal(t, instance.Hex(), domain.VerifyingContract)
		require.Equal(t, "request_id", domain.ReplayPolicy)
		require.Equal(t, "issuing", domain.Variant)
	})

	t.Run("supply", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/supply", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "1000000", decode[resources.SupplyResponse](t, recorder).TotalSupply)
	})

	t.Run("balance", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/balances/"+f.user.Address().Hex(), nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "1000", decode[resources.BalanceResponse](t, recorder).Balance)
	})

	t.Run("balance of malformed address", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/balances/0x1234", nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("role", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/roles/withdrawer/"+f.executor.Address().Hex(), nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		role := decode[resources.RoleResponse](t, recorder)
		require.True(t, role.HasRole)
		require.Equal(t, access.WithdrawerRole.Hex(), role.Role)

		recorder = f.do(t, http.MethodGet, "/v1/roles/withdrawer/"+f.user.Address().Hex(), nil)
		require.False(t, decode[resources.RoleResponse](t, recorder).HasRole)
	})

	t.Run("role members", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/roles/admin/members", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, []string{f.deployer.Address().Hex()}, decode[resources.RoleMembersResponse](t, recorder).Members)
	})

	t.Run("unknown role", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/roles/operator/members", nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("events filtered by type", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/events?type=transfer", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		list := decode[resources.EventsResponse](t, recorder).Events
		require.NotEmpty(t, list)
		for _, event := range list {
			require.Equal(t, types.EventTransfer.String(), event.Type)
		}
	})

	t.Run("events with malformed limit", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/v1/events?limit=100000", nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("health", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, strings.Contains(recorder.Body.String(), "solvency"))
	})
}

func Test_SubmitWithdrawal(t *testing.T) {
	f := newFixture(t, context.Background(), types.ReplayPolicyRequestId)

	stranger, err := core.GenerateAccount()
	require.NoError(t, err)

	executed := f.withdrawal(t, 400, "withdrawal-1", f.user)
	tooMuch := f.withdrawal(t, 5000, "withdrawal-2", f.user)
	forged := f.withdrawal(t, 100, "withdrawal-3", stranger)
	missingSignature := f.withdrawal(t, 100, "withdrawal-4", f.user)
	missingSignature.Signature = nil

	// order matters: the replay case relies on the first submission
	testCases := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"should execute signed withdrawal", executed, http.StatusCreated},
		{"should reject replayed withdrawal", executed, http.StatusConflict},
		{"should reject withdrawal over balance", tooMuch, http.StatusBadRequest},
		{"should reject signature of another account", forged, http.StatusForbidden},
		{"should reject missing signature", missingSignature, http.StatusBadRequest},
		{"should reject malformed body", "withdraw everything", http.StatusBadRequest},
	}

	for _, tCase := range testCases {
		t.Run(tCase.name, func(t *testing.T) {
			recorder := f.do(t, http.MethodPost, "/v1/withdrawals", tCase.body)
			require.Equal(t, tCase.status, recorder.Code, recorder.Body.String())
		})
	}

	balance, err := f.ledger.BalanceOf(f.to)
	require.NoError(t, err)
	require.Equal(t, uint64(400), balance.Uint64())

	recorder := f.do(t, http.MethodGet, "/v1/requests/withdrawal-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	consumed := decode[resources.RequestResponse](t, recorder)
	require.True(t, consumed.Consumed)
	require.NotNil(t, consumed.Account)

	recorder = f.do(t, http.MethodGet, "/v1/requests/withdrawal-2", nil)
	require.False(t, decode[resources.RequestResponse](t, recorder).Consumed)
}

func Test_SubmitWithdrawal_Nonce(t *testing.T) {
	f := newFixture(t, context.Background(), types.ReplayPolicyNonce)

	request := signature.WithdrawRequest{
		User:   f.user.Address(),
		Amount: uint256.NewInt(10),
		To:     f.to,
		Nonce:  uint256.NewInt(0),
	}
	sig, err := f.ledger.Authorizer().Sign(request, f.user.PrivateKey())
	require.NoError(t, err)

	nonce := "0"
	v, r, s := sig.V(), sig.R().Hex(), sig.S().Hex()
	body := requests.SubmitWithdrawal{
		User:   request.User.Hex(),
		Amount: "10",
		To:     request.To.Hex(),
		Nonce:  &nonce,
		V:      &v,
		R:      &r,
		S:      &s,
	}

	recorder := f.do(t, http.MethodPost, "/v1/withdrawals", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	require.Equal(t, "0", *decode[resources.WithdrawalResponse](t, recorder).Nonce)

	recorder = f.do(t, http.MethodGet, "/v1/nonces/"+f.user.Address().Hex(), nil)
	require.Equal(t, uint64(1), decode[resources.NonceResponse](t, recorder).Nonce)

	recorder = f.do(t, http.MethodPost, "/v1/withdrawals", body)
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func Test_EventsWs(t *testing.T) {
	ctxt, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, ctxt, types.ReplayPolicyRequestId)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	backlog, err := f.ledger.Events(db.EventsSelector{})
	require.NoError(t, err)
	require.NotEmpty(t, backlog)
	lastId := backlog[len(backlog)-1].Id

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?type=transfer"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	readEvent := func() resources.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var event resources.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	}

	// backlog: the funding transfer of the fixture
	event := readEvent()
	require.Equal(t, types.EventTransfer.String(), event.Type)
	require.LessOrEqual(t, event.Id, lastId)

	require.NoError(t, f.ledger.Transfer(f.user.Address(), f.to, uint256.NewInt(1)))

	event = readEvent()
	require.Equal(t, types.EventTransfer.String(), event.Type)
	require.Greater(t, event.Id, lastId)

	var payload types.TransferEvent
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	require.Equal(t, "1", payload.Amount)
}

func Test_EventsWs_LongBacklog(t *testing.T) {
	ctxt, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := newFixture(t, ctxt, types.ReplayPolicyRequestId)
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	for i := 0; i < 150; i++ {
		require.NoError(t, f.ledger.Transfer(f.user.Address(), f.to, uint256.NewInt(1)))
	}

	stored, err := f.ledger.Events(db.EventsSelector{Limit: 1000})
	require.NoError(t, err)
	require.Greater(t, len(stored), 150)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?limit=40"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	readId := func() int64 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var event resources.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event.Id
	}

	for _, event := range stored {
		require.Equal(t, event.Id, readId())
	}

	require.NoError(t, f.ledger.Transfer(f.user.Address(), f.to, uint256.NewInt(1)))
	require.Equal(t, stored[len(stored)-1].Id+1, readId())
}
