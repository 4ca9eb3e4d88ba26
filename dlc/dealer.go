package dlc

import (
	"fmt"
	"io"
	"math/big"
	"runtime"
	"sort"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/common"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// Dealer holds per-outcome secret scalars and runs the producing side of
// the protocol: Init -> After1 -> Done (spec.md §4.7).
type Dealer struct {
	params         Params
	rng            io.Reader
	outcomeSecrets []chaincurve.Scalar
	commits        []Commit
	secrets        []CommitSecret
	done           bool
}

// NewDealer draws M independent (Commit, CommitSecret) pairs and returns
// them as Message1 (spec.md §4.2 Round 1). outcomeSecrets[o] is the secret
// scalar underlying outcome o, supplied by the caller.
func NewDealer(rng io.Reader, params Params, outcomeSecrets []chaincurve.Scalar) (*Dealer, Message1, error) {
	if len(outcomeSecrets) != params.NOutcomes {
		return nil, Message1{}, fmt.Errorf("dlc: expected %d outcome secrets, got %d", params.NOutcomes, len(outcomeSecrets))
	}
	if rng == nil {
		return nil, Message1{}, fmt.Errorf("dlc: a CSPRNG handle is required")
	}

	m := params.M()
	commits := make([]Commit, m)
	secrets := make([]CommitSecret, m)

	_, _, g1Gen, _ := bls12381.Generators()

	for i := 0; i < m; i++ {
		r, err := chaincurve.RandomScalar(rng)
		if err != nil {
			return nil, Message1{}, err
		}
		mElem, err := gt.Sample(rng)
		if err != nil {
			return nil, Message1{}, err
		}
		pad := mapZqToGtPad(r, mElem)

		rPrime, err := common.RandomFrScalar(rng)
		if err != nil {
			return nil, Message1{}, fmt.Errorf("dlc: failed to sample BLS scalar: %w", err)
		}
		var rPrimeBig big.Int
		rPrime.BigInt(&rPrimeBig)

		var c0 bls12381.G1Affine
		c0.ScalarMultiplication(&g1Gen, &rPrimeBig)
		c1 := gt.Add(gt.ScalarMul(params.ElGamalBase, &rPrimeBig), mElem)
		rPoint := chaincurve.ScalarBaseMult(r)

		commits[i] = Commit{C0: c0, C1: c1, R: rPoint, Pad: pad}
		secrets[i] = CommitSecret{R: r, RPrime: rPrime, M: mElem}
	}

	d := &Dealer{
		params:         params,
		rng:            rng,
		outcomeSecrets: outcomeSecrets,
		commits:        commits,
		secrets:        secrets,
	}
	return d, Message1{Commits: commits}, nil
}

// ReceiveMessage2 validates the Receiver's challenge, opens the requested
// commitments, and builds the closed buckets' encryptions, polynomial
// commitments and secret-share pads (spec.md §4.2 Round 3).
func (d *Dealer) ReceiveMessage2(msg Message2) (Message3, error) {
	if d.done {
		return Message3{}, fmt.Errorf("dlc: dealer session already completed")
	}
	m := d.params.M()
	nb := d.params.NB()

	if len(msg.Openings) != m-nb {
		return Message3{}, fmt.Errorf("%w: expected %d openings, got %d", ErrBadMessage, m-nb, len(msg.Openings))
	}
	if len(msg.BucketMapping) != nb {
		return Message3{}, fmt.Errorf("%w: expected bucket_mapping of length %d, got %d", ErrBadMessage, nb, len(msg.BucketMapping))
	}
	seenBucket := make([]bool, nb)
	for _, pos := range msg.BucketMapping {
		if pos < 0 || pos >= nb {
			return Message3{}, fmt.Errorf("%w: bucket_mapping entry %d out of range [0,%d)", ErrBadMessage, pos, nb)
		}
		if seenBucket[pos] {
			return Message3{}, fmt.Errorf("%w: bucket_mapping is not a permutation", ErrBadMessage)
		}
		seenBucket[pos] = true
	}
	for idx := range msg.Openings {
		if idx < 0 || idx >= m {
			return Message3{}, fmt.Errorf("%w: opening index %d out of range [0,%d)", ErrBadMessage, idx, m)
		}
	}

	var openedIdx, retainedIdx []int
	for i := 0; i < m; i++ {
		if _, ok := msg.Openings[i]; ok {
			openedIdx = append(openedIdx, i)
		} else {
			retainedIdx = append(retainedIdx, i)
		}
	}
	sort.Ints(openedIdx)

	openings := make([]fr.Element, len(openedIdx))
	for k, i := range openedIdx {
		openings[k] = d.secrets[i].RPrime
	}

	// retainedAtBucket[bucket_mapping[k]] = retainedIdx[k]
	retainedAtBucket := make([]int, nb)
	for k, bucketPos := range msg.BucketMapping {
		retainedAtBucket[bucketPos] = retainedIdx[k]
	}

	layout := newBucketLayout(d.params)
	encryptions := make([]Encryption, nb)

	bitPads := make([]bitPadTable, d.params.NOracles)
	for j := range bitPads {
		bp, err := newRandomBitPadTable(d.rng, d.params.NOutcomeBits())
		if err != nil {
			return Message3{}, err
		}
		bitPads[j] = bp
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx := 0; idx < nb; idx++ {
		idx := idx
		g.Go(func() error {
			oracle, bit, slot, _, err := layoutDecode(layout, idx)
			if err != nil {
				return err
			}
			bitValue := slot == 1
			if layout.slots == 1 {
				// Monotone mode anticipates a single canonical value per bit.
				bitValue = true
			}
			secretIdx := retainedAtBucket[idx]
			secret := d.secrets[secretIdx]
			commit := d.commits[secretIdx]

			a, err := anticipatedAttestation(d.params.OracleKeys[oracle], d.params.EventID, bit, bitValue)
			if err != nil {
				return err
			}
			var rPrimeBig big.Int
			secret.RPrime.BigInt(&rPrimeBig)

			ciphertext := gt.Add(gt.ScalarMul(a, &rPrimeBig), secret.M)
			base := gt.Sub(a, d.params.ElGamalBase)
			image := gt.Sub(ciphertext, commit.C1)

			_, _, g1Gen, _ := bls12381.Generators()
			stmt := dleqStatement{g1Base: g1Gen, g1Image: commit.C0, gtBase: base, gtImage: image}
			proof, err := proveDLEQ(d.rng, stmt, secret.RPrime)
			if err != nil {
				return err
			}

			paddedShare := secret.R.Add(bitPads[oracle].Pads[bit][slot])
			encryptions[idx] = Encryption{Proof: proof, Ciphertext: ciphertext, PaddedShare: paddedShare}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Message3{}, err
	}

	polys := make([]PointPoly, d.params.NOutcomes)
	fullPolys := make([]ScalarPoly, d.params.NOutcomes)
	for o := 0; o < d.params.NOutcomes; o++ {
		poly, err := NewRandomScalarPoly(d.rng, d.params.Threshold-1, d.outcomeSecrets[o])
		if err != nil {
			return Message3{}, err
		}
		fullPolys[o] = poly
		pointPoly := poly.ToPointPoly()
		pointPoly.PopFrontConstant() // constant term is public via the outcome image, supplied later by the Receiver
		polys[o] = pointPoly
	}

	bitMapImages := make([]bitPadImageTable, d.params.NOracles)
	secretSharePads := make([][]chaincurve.Scalar, d.params.NOracles)
	for j := 0; j < d.params.NOracles; j++ {
		bitMapImages[j] = bitPads[j].Images()
		secretSharePads[j] = make([]chaincurve.Scalar, d.params.NOutcomes)
		for o := 0; o < d.params.NOutcomes; o++ {
			leaf := bitPads[j].leafForOutcome(o)
			share := fullPolys[o].Eval(chaincurve.ScalarFromInt(uint32(j + 1)))
			secretSharePads[j][o] = leaf.Add(share)
		}
	}

	d.done = true
	d.secrets = nil

	return Message3{
		Encryptions:             encryptions,
		Openings:                openings,
		Polys:                   polys,
		BitMapImages:            bitMapImages,
		SecretSharePadsByOracle: secretSharePads,
	}, nil
}

func layoutDecode(l bucketLayout, idx int) (oracle, bit, slot, replica int, err error) {
	return l.decode(idx)
}
