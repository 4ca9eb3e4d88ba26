package dlc

import (
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/llfourn/dlc-venc-go/internal/common"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// Oracle is a BLS signer that binds outcome-bit choices to G2 signatures
// (spec.md §4.6). Oracles are independent; there is no inter-oracle
// coordination or shared state.
type Oracle struct {
	sk fr.Element
	Pk bls12381.G1Affine
}

// NewOracle generates a fresh oracle keypair.
func NewOracle(rng io.Reader) (Oracle, error) {
	sk, err := common.RandomFrScalar(rng)
	if err != nil {
		return Oracle{}, fmt.Errorf("dlc: failed to sample oracle key: %w", err)
	}
	var skBig big.Int
	sk.BigInt(&skBig)
	_, _, g1Gen, _ := bls12381.Generators()
	var pk bls12381.G1Affine
	pk.ScalarMultiplication(&g1Gen, &skBig)
	return Oracle{sk: sk, Pk: pk}, nil
}

// bitMessage formats the hash-to-curve input for one outcome bit, exactly
// as spec.md §6 specifies: "{event_id}/{bit_index}/{bit_value}".
func bitMessage(eventID string, bitIndex int, bitValue bool) []byte {
	return []byte(fmt.Sprintf("%s/%d/%t", eventID, bitIndex, bitValue))
}

// hashBitToG2 hashes a bit message into G2 under the fixed "dlc-message"
// domain separator (spec.md §4.6, §6).
func hashBitToG2(eventID string, bitIndex int, bitValue bool) (bls12381.G2Affine, error) {
	h, err := bls12381.HashToG2(bitMessage(eventID, bitIndex, bitValue), []byte(common.DSTMessage))
	if err != nil {
		return bls12381.G2Affine{}, fmt.Errorf("dlc: hash-to-G2 failed: %w", err)
	}
	return h, nil
}

// Attest signs one message per outcome bit: sigma_b = sk * H_G2(event/b/bit_b).
func (o Oracle) Attest(eventID string, nBits int, outcome int) ([]bls12381.G2Affine, error) {
	var skBig big.Int
	o.sk.BigInt(&skBig)
	sigs := make([]bls12381.G2Affine, nBits)
	for b := 0; b < nBits; b++ {
		v := (outcome>>uint(b))&1 != 0
		h, err := hashBitToG2(eventID, b, v)
		if err != nil {
			return nil, err
		}
		var sig bls12381.G2Affine
		sig.ScalarMultiplication(&h, &skBig)
		sigs[b] = sig
	}
	return sigs, nil
}

// verifyBitSignature checks e(g1, sigma) == e(pk, H_G2(event/b/bit)).
func verifyBitSignature(pk bls12381.G1Affine, sig bls12381.G2Affine, eventID string, bitIndex int, bitValue bool) (bool, error) {
	h, err := hashBitToG2(eventID, bitIndex, bitValue)
	if err != nil {
		return false, err
	}
	_, _, g1Gen, _ := bls12381.Generators()
	lhs, err := bls12381.Pair([]bls12381.G1Affine{g1Gen}, []bls12381.G2Affine{sig})
	if err != nil {
		return false, fmt.Errorf("dlc: pairing failed: %w", err)
	}
	rhs, err := bls12381.Pair([]bls12381.G1Affine{pk}, []bls12381.G2Affine{h})
	if err != nil {
		return false, fmt.Errorf("dlc: pairing failed: %w", err)
	}
	return lhs.Equal(&rhs), nil
}

// anticipatedAttestation computes A_{j,b,v} = e(pk_j, H_G2(event, b, v)),
// the G_T value the Receiver predicts for each candidate oracle signature.
func anticipatedAttestation(pk bls12381.G1Affine, eventID string, bitIndex int, bitValue bool) (gt.Element, error) {
	h, err := hashBitToG2(eventID, bitIndex, bitValue)
	if err != nil {
		return gt.Element{}, err
	}
	return gt.Pair(pk, h)
}
