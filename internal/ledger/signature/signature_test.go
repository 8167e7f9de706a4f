package signature

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func Test_ParseSignature(t *testing.T) {
	r := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	s := common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222")

	blob := func(v byte) []byte {
		raw := append(append(r.Bytes(), s.Bytes()...), v)
		return raw
	}

	type tc struct {
		raw       []byte
		expectedV byte
		valid     bool
	}

	testCases := map[string]tc{
		"raw recovery id 0":      {raw: blob(0), expectedV: 0, valid: true},
		"raw recovery id 1":      {raw: blob(1), expectedV: 1, valid: true},
		"legacy recovery id 27":  {raw: blob(27), expectedV: 0, valid: true},
		"legacy recovery id 28":  {raw: blob(28), expectedV: 1, valid: true},
		"invalid recovery id 2":  {raw: blob(2)},
		"invalid recovery id 29": {raw: blob(29)},
		"too short":              {raw: blob(27)[:64]},
		"too long":               {raw: append(blob(27), 0)},
	}

	for name, tCase := range testCases {
		t.Run(name, func(t *testing.T) {
			sig, err := ParseSignature(tCase.raw)
			if !tCase.valid {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tCase.expectedV, sig.V())
			require.Equal(t, r, sig.R())
			require.Equal(t, s, sig.S())
			require.Equal(t, tCase.expectedV+27, sig.Bytes()[crypto.RecoveryIDOffset])
		})
	}
}

func Test_SignatureEncodingsAgree(t *testing.T) {
	key, user := newKey(t)
	authorizer := newAuthorizer(t, testDomain, "request_id")
	request := WithdrawRequest{
		User:      user,
		Amount:    uint256.NewInt(42),
		To:        common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		RequestId: common.HexToHash("0x07"),
	}

	sig, err := authorizer.Sign(request, key)
	require.NoError(t, err)

	fromHex, err := ParseSignatureHex(sig.Hex())
	require.NoError(t, err)
	require.Equal(t, sig, fromHex)

	fromRSV, err := SignatureFromRSV(sig.V()+27, sig.R(), sig.S())
	require.NoError(t, err)
	require.Equal(t, sig, fromRSV)

	signer, err := authorizer.Recover(request, fromRSV)
	require.NoError(t, err)
	require.Equal(t, user, signer)
}

func Test_RequestIdFromReference(t *testing.T) {
	id, err := RequestIdFromReference("123456789")
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x38ceacb7e53f46419b58432f3d8ab1122014f2c77894c98d2b24046f8168c5dc"), id)

	other, err := RequestIdFromReference("123456790")
	require.NoError(t, err)
	require.NotEqual(t, id, other)
}
