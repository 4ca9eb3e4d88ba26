package dlc

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// DLEQ completeness: verify(prove(x, w)) holds for a valid witness
// (spec.md §8 property 2).
func TestDLEQCompleteness(t *testing.T) {
	rng := newDeterministicRNG(300)

	var w fr.Element
	if _, err := w.SetRandom(); err != nil {
		t.Fatalf("SetRandom: %v", err)
	}
	var wBig big.Int
	w.BigInt(&wBig)

	_, _, g1Gen, _ := bls12381.Generators()
	var g1Image bls12381.G1Affine
	g1Image.ScalarMultiplication(&g1Gen, &wBig)

	gtBase, err := gt.Sample(rng)
	if err != nil {
		t.Fatalf("gt.Sample: %v", err)
	}
	gtImage := gt.ScalarMul(gtBase, &wBig)

	stmt := dleqStatement{g1Base: g1Gen, g1Image: g1Image, gtBase: gtBase, gtImage: gtImage}
	proof, err := proveDLEQ(rng, stmt, w)
	if err != nil {
		t.Fatalf("proveDLEQ: %v", err)
	}
	if err := verifyDLEQ(stmt, proof); err != nil {
		t.Fatalf("verifyDLEQ rejected a valid proof: %v", err)
	}
}

// DLEQ soundness: a forged proof (wrong response) must be rejected.
func TestDLEQSoundnessRejectsForgedResponse(t *testing.T) {
	rng := newDeterministicRNG(301)

	var w fr.Element
	if _, err := w.SetRandom(); err != nil {
		t.Fatalf("SetRandom: %v", err)
	}
	var wBig big.Int
	w.BigInt(&wBig)

	_, _, g1Gen, _ := bls12381.Generators()
	var g1Image bls12381.G1Affine
	g1Image.ScalarMultiplication(&g1Gen, &wBig)

	gtBase, err := gt.Sample(rng)
	if err != nil {
		t.Fatalf("gt.Sample: %v", err)
	}
	gtImage := gt.ScalarMul(gtBase, &wBig)

	stmt := dleqStatement{g1Base: g1Gen, g1Image: g1Image, gtBase: gtBase, gtImage: gtImage}
	proof, err := proveDLEQ(rng, stmt, w)
	if err != nil {
		t.Fatalf("proveDLEQ: %v", err)
	}

	var bogus fr.Element
	if _, err := bogus.SetRandom(); err != nil {
		t.Fatalf("SetRandom: %v", err)
	}
	proof.Response = bogus

	if err := verifyDLEQ(stmt, proof); err == nil {
		t.Fatalf("verifyDLEQ accepted a forged proof")
	}
}
