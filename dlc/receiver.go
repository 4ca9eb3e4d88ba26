package dlc

import (
	"fmt"
	"io"
	"math/big"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// bucketKey identifies one (oracle, outcome-bit, bit-value-slot) bucket.
type bucketKey struct {
	oracle, bit, slot int
}

// bucketReplica is one retained ciphertext assigned to a bucket.
type bucketReplica struct {
	commitIdx int
	enc       Encryption
}

// Receiver runs the consuming side of the protocol: Init -> After1 ->
// After3 -> Done (spec.md §4.7).
type Receiver struct {
	params Params
	rng    io.Reader

	commits       []Commit
	openings      map[int]struct{}
	bucketMapping []int
	layout        bucketLayout

	buckets         map[bucketKey][]bucketReplica
	bitMapImages    []bitPadImageTable
	secretSharePads [][]chaincurve.Scalar
	outcomeImages   []chaincurve.Point

	after3 bool
	done   bool
}

// NewReceiver consumes Message1, drawing the cut-and-choose challenge
// (spec.md §4.3 Round 2).
func NewReceiver(rng io.Reader, params Params, msg1 Message1) (*Receiver, Message2, error) {
	m := params.M()
	nb := params.NB()
	if len(msg1.Commits) != m {
		return nil, Message2{}, fmt.Errorf("%w: expected %d commitments, got %d", ErrBadMessage, m, len(msg1.Commits))
	}
	if rng == nil {
		return nil, Message2{}, fmt.Errorf("dlc: a CSPRNG handle is required")
	}

	openings, err := randomSubset(rng, m, m-nb)
	if err != nil {
		return nil, Message2{}, err
	}
	bucketMapping, err := randomPermutation(rng, nb)
	if err != nil {
		return nil, Message2{}, err
	}

	r := &Receiver{
		params:        params,
		rng:           rng,
		commits:       msg1.Commits,
		openings:      openings,
		bucketMapping: bucketMapping,
		layout:        newBucketLayout(params),
	}
	return r, Message2{BucketMapping: bucketMapping, Openings: openings}, nil
}

// ReceiveMessage3 verifies the Dealer's openings, DLEQ proofs, padded
// shares, and pad-to-share image consistency, and retains the closed
// buckets for the attestation phase (spec.md §4.3 Round 4). outcomeImages
// supplies each outcome's public image g^{s_o}, known to the Receiver out
// of band (e.g. published alongside the contract terms).
func (r *Receiver) ReceiveMessage3(msg Message3, outcomeImages []chaincurve.Point) error {
	if r.after3 {
		return fmt.Errorf("dlc: message3 already processed")
	}
	m := r.params.M()
	nb := r.params.NB()
	nOutcomes := r.params.NOutcomes
	nOracles := r.params.NOracles

	if len(msg.Openings) != m-nb {
		return fmt.Errorf("%w: expected %d openings, got %d", ErrBadMessage, m-nb, len(msg.Openings))
	}
	if len(msg.Encryptions) != nb {
		return fmt.Errorf("%w: expected %d encryptions, got %d", ErrBadMessage, nb, len(msg.Encryptions))
	}
	if len(msg.Polys) != nOutcomes {
		return fmt.Errorf("%w: expected %d outcome polynomials, got %d", ErrBadMessage, nOutcomes, len(msg.Polys))
	}
	if len(msg.BitMapImages) != nOracles || len(msg.SecretSharePadsByOracle) != nOracles {
		return fmt.Errorf("%w: expected %d oracles in bit-pad tables", ErrBadMessage, nOracles)
	}
	if len(outcomeImages) != nOutcomes {
		return fmt.Errorf("dlc: expected %d outcome images, got %d", nOutcomes, len(outcomeImages))
	}

	var openedIdx, retainedIdx []int
	for i := 0; i < m; i++ {
		if _, ok := r.openings[i]; ok {
			openedIdx = append(openedIdx, i)
		} else {
			retainedIdx = append(retainedIdx, i)
		}
	}
	sort.Ints(openedIdx)

	_, _, g1Gen, _ := bls12381.Generators()
	for k, i := range openedIdx {
		rPrime := msg.Openings[k]
		var rPrimeBig big.Int
		rPrime.BigInt(&rPrimeBig)

		var c0 bls12381.G1Affine
		c0.ScalarMultiplication(&g1Gen, &rPrimeBig)
		if !c0.Equal(&r.commits[i].C0) {
			return fmt.Errorf("%w: commitment %d opening does not reproduce C0", ErrOpeningMismatch, i)
		}

		mElem := gt.Sub(r.commits[i].C1, gt.ScalarMul(r.params.ElGamalBase, &rPrimeBig))
		recoveredR := mapGtToZq(mElem, r.commits[i].Pad)
		rPoint := chaincurve.ScalarBaseMult(recoveredR)
		if !rPoint.Equal(r.commits[i].R) {
			return fmt.Errorf("%w: commitment %d opening does not reproduce R", ErrOpeningMismatch, i)
		}
	}

	retainedAtBucket := make([]int, nb)
	for k, bucketPos := range r.bucketMapping {
		retainedAtBucket[bucketPos] = retainedIdx[k]
	}

	buckets := make(map[bucketKey][]bucketReplica, nb)
	for idx := 0; idx < nb; idx++ {
		oracle, bit, slot, _, err := r.layout.decode(idx)
		if err != nil {
			return err
		}
		commitIdx := retainedAtBucket[idx]
		commit := r.commits[commitIdx]
		enc := msg.Encryptions[idx]

		bitValue := slot == 1
		if r.layout.slots == 1 {
			bitValue = true
		}
		a, err := anticipatedAttestation(r.params.OracleKeys[oracle], r.params.EventID, bit, bitValue)
		if err != nil {
			return err
		}
		base := gt.Sub(a, r.params.ElGamalBase)
		image := gt.Sub(enc.Ciphertext, commit.C1)
		stmt := dleqStatement{g1Base: g1Gen, g1Image: commit.C0, gtBase: base, gtImage: image}
		if err := verifyDLEQ(stmt, enc.Proof); err != nil {
			return fmt.Errorf("%w: bucket %d", err, idx)
		}

		expectedImage := msg.BitMapImages[oracle].Images[bit][slot]
		lhs := commit.R.Add(expectedImage)
		rhs := chaincurve.ScalarBaseMult(enc.PaddedShare)
		if !lhs.Equal(rhs) {
			return fmt.Errorf("%w: bucket %d", ErrPaddedShareInvalid, idx)
		}

		key := bucketKey{oracle: oracle, bit: bit, slot: slot}
		buckets[key] = append(buckets[key], bucketReplica{commitIdx: commitIdx, enc: enc})
	}

	for j := 0; j < nOracles; j++ {
		if len(msg.SecretSharePadsByOracle[j]) != nOutcomes {
			return fmt.Errorf("%w: oracle %d secret-share-pad list has wrong length", ErrBadMessage, j)
		}
		for o := 0; o < nOutcomes; o++ {
			leaf := msg.BitMapImages[j].leafForOutcome(o)
			fullPoly := msg.Polys[o]
			fullPoly.PushFrontConstant(outcomeImages[o])
			polyImage := fullPoly.Eval(chaincurve.ScalarFromInt(uint32(j + 1)))
			expected := leaf.Add(polyImage)
			actual := chaincurve.ScalarBaseMult(msg.SecretSharePadsByOracle[j][o])
			if !expected.Equal(actual) {
				return fmt.Errorf("%w: oracle %d outcome %d", ErrPadInconsistent, j, o)
			}
		}
	}

	r.buckets = buckets
	r.bitMapImages = msg.BitMapImages
	r.secretSharePads = msg.SecretSharePadsByOracle
	r.outcomeImages = outcomeImages
	r.after3 = true
	return nil
}

// ReceiveAttestation consumes the per-oracle, per-bit BLS signatures for
// the realized outcome and reconstructs the outcome secret (spec.md §4.3
// Attestation phase).
func (r *Receiver) ReceiveAttestation(outcomeIndex int, sigsByOracle map[int][]bls12381.G2Affine) (chaincurve.Scalar, error) {
	if !r.after3 {
		return chaincurve.Scalar{}, fmt.Errorf("dlc: message3 has not been processed yet")
	}
	if outcomeIndex < 0 || outcomeIndex >= r.params.NOutcomes {
		return chaincurve.Scalar{}, fmt.Errorf("dlc: outcome index %d out of range", outcomeIndex)
	}
	nBits := r.params.NOutcomeBits()

	var shares []share
	for j := 0; j < r.params.NOracles; j++ {
		sigs, ok := sigsByOracle[j]
		if !ok || len(sigs) != nBits {
			continue
		}

		validSigs := true
		for b := 0; b < nBits; b++ {
			bitValue := (outcomeIndex>>uint(b))&1 != 0
			ok2, err := verifyBitSignature(r.params.OracleKeys[j], sigs[b], r.params.EventID, b, bitValue)
			if err != nil || !ok2 {
				validSigs = false
				break
			}
		}
		if !validSigs {
			continue
		}

		var padSum chaincurve.Scalar
		oracleOK := true
		for b := 0; b < nBits; b++ {
			bitValue := (outcomeIndex>>uint(b))&1 != 0
			slot := r.layout.bitValueSlot(bitValue)
			expectedImage := r.bitMapImages[j].Images[b][slot]

			found := false
			for _, replica := range r.buckets[bucketKey{oracle: j, bit: b, slot: slot}] {
				commit := r.commits[replica.commitIdx]
				pairing, err := gt.Pair(commit.C0, sigs[b])
				if err != nil {
					continue
				}
				mElem := gt.Sub(replica.enc.Ciphertext, pairing)
				recoveredR := mapGtToZq(mElem, commit.Pad)
				t := replica.enc.PaddedShare.Sub(recoveredR)
				if chaincurve.ScalarBaseMult(t).Equal(expectedImage) {
					padSum = padSum.Add(t)
					found = true
					break
				}
			}
			if !found {
				oracleOK = false
				break
			}
		}
		if !oracleOK {
			continue
		}

		shareVal := r.secretSharePads[j][outcomeIndex].Sub(padSum)
		shares = append(shares, share{x: chaincurve.ScalarFromInt(uint32(j + 1)), y: shareVal})
	}

	if len(shares) < r.params.Threshold {
		return chaincurve.Scalar{}, ErrInsufficientShares
	}
	shares = shares[:r.params.Threshold]

	secret := interpolateAtZero(shares)
	if !chaincurve.ScalarBaseMult(secret).Equal(r.outcomeImages[outcomeIndex]) {
		return chaincurve.Scalar{}, ErrReconstructionMismatch
	}

	r.done = true
	return secret, nil
}
