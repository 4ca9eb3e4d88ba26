package common

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BLSOrder is the order of the BLS12-381 scalar field Fr, shared by the
// G1, G2 and GT groups used for the oracle pairing primitives.
var BLSOrder, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// RandomFrScalar draws a uniform element of the BLS12-381 scalar field Fr
// from rng. It oversamples (32+16 bytes) and reduces modulo the field order
// rather than rejection-sampling, keeping bias statistically negligible
// while guaranteeing every BLS-domain secret in the module is actually
// sourced from the caller-supplied CSPRNG handle (spec.md §5).
func RandomFrScalar(rng io.Reader) (fr.Element, error) {
	buf := make([]byte, fr.Bytes+16)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fr.Element{}, fmt.Errorf("common: failed to read randomness: %w", err)
	}
	var z big.Int
	z.SetBytes(buf)
	z.Mod(&z, BLSOrder)
	var out fr.Element
	out.SetBigInt(&z)
	return out, nil
}

// Domain separation tags. DSTG1/DSTG2 follow the RFC9380 XMD:SHA-256_SSWU_RO_
// suite naming convention; DSTMessage is the fixed hash-to-curve tag spec'd
// for oracle event messages.
const (
	DSTG1      = "DLC_BLS12381G1_XMD:SHA-256_SSWU_RO_"
	DSTG2      = "DLC_BLS12381G2_XMD:SHA-256_SSWU_RO_"
	DSTMessage = "dlc-message"
)

// DLEQ sub-statement domain labels, bound into the Fiat-Shamir transcript so
// the G1 leg and the G_T leg of the AND-composed proof can never be
// confused with each other under hash collision.
const (
	DLEQLabelG1 = "DL(bls12-381-G1)"
	DLEQLabelGT = "DL(bls12-381-GT)"
)
