package dlc

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/llfourn/dlc-venc-go/internal/common"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// DLEQProof is the Fiat-Shamir compilation of the AND-composition of two
// Schnorr sigma protocols (one over G1, one over G_T) proving that the same
// BLS scalar r' underlies both C0 = g1^r' and E - C1 = (A-β)^r' (spec.md
// §4.4). Only the compact form (challenge, response) is transmitted; the
// verifier recomputes the announcements.
type DLEQProof struct {
	Challenge fr.Element
	Response  fr.Element
}

// dleqStatement bundles the two legs' fixed base/image pairs.
type dleqStatement struct {
	g1Base  bls12381.G1Affine
	g1Image bls12381.G1Affine
	gtBase  gt.Element
	gtImage gt.Element
}

// proveDLEQ proves knowledge of w such that stmt.g1Image = stmt.g1Base^w and
// stmt.gtImage = stmt.gtBase^w.
func proveDLEQ(rng io.Reader, stmt dleqStatement, w fr.Element) (DLEQProof, error) {
	u, err := common.RandomFrScalar(rng)
	if err != nil {
		return DLEQProof{}, fmt.Errorf("dlc: failed to sample dleq blinding factor: %w", err)
	}

	var uBig big.Int
	u.BigInt(&uBig)
	var t1 bls12381.G1Affine
	t1.ScalarMultiplication(&stmt.g1Base, &uBig)
	t2 := gt.ScalarMul(stmt.gtBase, &uBig)

	c := dleqChallenge(stmt, t1, t2)

	var z fr.Element
	z.Mul(&c, &w)
	z.Add(&z, &u)

	return DLEQProof{Challenge: c, Response: z}, nil
}

// verifyDLEQ recomputes the announcements from the compact proof and checks
// both legs.
func verifyDLEQ(stmt dleqStatement, proof DLEQProof) error {
	var zBig, cBig big.Int
	proof.Response.BigInt(&zBig)
	proof.Challenge.BigInt(&cBig)

	// Leg 1 (G1): g1Base^z =? T1 + c*g1Image, where T1 = g1Base^z - c*g1Image.
	var lhs1 bls12381.G1Affine
	lhs1.ScalarMultiplication(&stmt.g1Base, &zBig)
	var cImage1 bls12381.G1Affine
	cImage1.ScalarMultiplication(&stmt.g1Image, &cBig)
	var cImage1Neg bls12381.G1Affine
	cImage1Neg.Neg(&cImage1)
	var t1 bls12381.G1Affine
	t1.Add(&lhs1, &cImage1Neg)

	// Leg 2 (G_T): gtBase^z =? T2 + c*gtImage, where T2 = gtBase^z - c*gtImage.
	lhs2 := gt.ScalarMul(stmt.gtBase, &zBig)
	cImage2 := gt.ScalarMul(stmt.gtImage, &cBig)
	t2 := gt.Sub(lhs2, cImage2)

	expectedC := dleqChallenge(stmt, t1, t2)
	if !expectedC.Equal(&proof.Challenge) {
		return ErrDLEQInvalid
	}
	return nil
}

// dleqChallenge hashes the domain-separated statement and announcement,
// truncates to 31 bytes, and reduces the result into Fr (spec.md §4.4).
func dleqChallenge(stmt dleqStatement, t1 bls12381.G1Affine, t2 gt.Element) fr.Element {
	h := sha256.New()
	h.Write([]byte(common.DLEQLabelG1))
	g1BaseBytes := stmt.g1Base.Bytes()
	g1ImageBytes := stmt.g1Image.Bytes()
	h.Write(g1BaseBytes[:])
	h.Write(g1ImageBytes[:])
	h.Write([]byte(common.DLEQLabelGT))
	h.Write(stmt.gtBase.Bytes())
	h.Write(stmt.gtImage.Bytes())
	h.Write([]byte(common.DLEQLabelG1))
	t1Bytes := t1.Bytes()
	h.Write(t1Bytes[:])
	h.Write([]byte(common.DLEQLabelGT))
	h.Write(t2.Bytes())

	digest := h.Sum(nil)
	var c fr.Element
	c.SetBytes(digest[:31])
	return c
}
