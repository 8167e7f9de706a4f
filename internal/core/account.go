package core

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Account is a local secp256k1 key together with its ledger address.
type Account struct {
	prv  *ecdsa.PrivateKey
	addr common.Address
}

func NewAccount(prv string) (*Account, error) {
	raw, err := hexutil.Decode(prv)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode private key")
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	return AccountFromKey(key), nil
}

func AccountFromKey(key *ecdsa.PrivateKey) *Account {
	return &Account{
		prv:  key,
		addr: crypto.PubkeyToAddress(key.PublicKey),
	}
}

func GenerateAccount() (*Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}

	return AccountFromKey(key), nil
}

func (a *Account) PrivateKey() *ecdsa.PrivateKey {
	return a.prv
}

// PrivateKeyHex returns the 0x-prefixed hex encoding of the private key.
func (a *Account) PrivateKeyHex() string {
	return hexutil.Encode(crypto.FromECDSA(a.prv))
}

func (a *Account) PublicKey() *ecdsa.PublicKey {
	return &a.prv.PublicKey
}

func (a *Account) Address() common.Address {
	return a.addr
}
