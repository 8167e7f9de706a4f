package evm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/require"
)

var token = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

// newNode serves the JSON-RPC calls the token metadata lookups make.
func newNode(t *testing.T, results map[string]string) *ethclient.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Id     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.Id}
		if result, ok := results[req.Method]; ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	client, err := ethclient.Dial(srv.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func Test_ERC20_Metadata(t *testing.T) {
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	client := newNode(t, map[string]string{
		"eth_chainId": "0x7a69",
		"eth_call":    "0x0000000000000000000000000000000000000000000000000000000000000006",
	})

	erc20, err := NewERC20(ctx, client, token, key)
	require.NoError(t, err)
	require.Equal(t, token, erc20.Token())
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), erc20.Custodian())

	decimals, err := erc20.Decimals(ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(6), decimals)
}

func Test_NewERC20_MissingSigner(t *testing.T) {
	client := newNode(t, map[string]string{"eth_chainId": "0x7a69"})

	_, err := NewERC20(context.Background(), client, token, nil)
	require.Error(t, err)
}
