package signature

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	SignatureLength = crypto.SignatureLength
	// Ethereum tooling shifts the recovery id by 27 when producing signatures
	legacyRecoveryOffset = 27
)

// Signature is an ECDSA signature in r || s || v form with v normalized to {0, 1}.
type Signature [SignatureLength]byte

// ParseSignature accepts a single 65-byte blob with v in {0, 1, 27, 28}.
func ParseSignature(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != SignatureLength {
		return sig, errors.Errorf("invalid signature length %d", len(raw))
	}

	copy(sig[:], raw)
	v, err := normalizeV(raw[crypto.RecoveryIDOffset])
	if err != nil {
		return sig, err
	}
	sig[crypto.RecoveryIDOffset] = v

	return sig, nil
}

// ParseSignatureHex is ParseSignature over a 0x-prefixed hex string.
func ParseSignatureHex(raw string) (Signature, error) {
	decoded, err := hexutil.Decode(raw)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to decode signature")
	}

	return ParseSignature(decoded)
}

// SignatureFromRSV builds a signature from split components.
func SignatureFromRSV(v uint8, r, s common.Hash) (Signature, error) {
	var sig Signature

	normalized, err := normalizeV(v)
	if err != nil {
		return sig, err
	}

	copy(sig[:32], r.Bytes())
	copy(sig[32:64], s.Bytes())
	sig[crypto.RecoveryIDOffset] = normalized

	return sig, nil
}

func normalizeV(v byte) (byte, error) {
	if v >= legacyRecoveryOffset {
		v -= legacyRecoveryOffset
	}
	if v > 1 {
		return 0, errors.Errorf("invalid recovery id %d", v)
	}

	return v, nil
}

func (s Signature) R() common.Hash {
	return common.BytesToHash(s[:32])
}

func (s Signature) S() common.Hash {
	return common.BytesToHash(s[32:64])
}

func (s Signature) V() byte {
	return s[crypto.RecoveryIDOffset]
}

// Bytes returns the signature in the Ethereum wire form (v in {27, 28}).
func (s Signature) Bytes() []byte {
	raw := make([]byte, SignatureLength)
	copy(raw, s[:])
	raw[crypto.RecoveryIDOffset] += legacyRecoveryOffset

	return raw
}

func (s Signature) Hex() string {
	return hexutil.Encode(s.Bytes())
}

// Valid rejects zero and malleable (high-s) signatures.
func (s Signature) Valid() bool {
	return crypto.ValidateSignatureValues(
		s.V(),
		new(big.Int).SetBytes(s[:32]),
		new(big.Int).SetBytes(s[32:64]),
		true,
	)
}
