package dlc

import (
	"fmt"
	"math"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// Params mirrors spec.md's Params entity: everything both parties need to
// agree on before a session starts.
type Params struct {
	OracleKeys  []bls12381.G1Affine
	EventID     string
	P           float64
	B           int
	NOutcomes   int
	NOracles    int
	Threshold   int
	ElGamalBase gt.Element
	Monotone    bool
}

// NOutcomeBits returns ceil(log2(NOutcomes)), minimum 1.
func (p Params) NOutcomeBits() int {
	if p.NOutcomes <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(p.NOutcomes))))
}

// bitMultiplier returns 1 in monotone mode (one anticipation per bit,
// halving the non-monotone case) or 2 otherwise.
func (p Params) bitMultiplier() int {
	if p.Monotone {
		return 1
	}
	return 2
}

// NAnticipationsPerOracle is the effective-encryptions count E.
func (p Params) NAnticipationsPerOracle() int {
	e := p.NOutcomeBits() * p.bitMultiplier()
	if e < 1 {
		e = 1
	}
	return e
}

// n is the total anticipated points across all oracles.
func (p Params) n() int {
	return p.NAnticipationsPerOracle() * p.NOracles
}

// NB is the closed (kept) commitment count.
func (p Params) NB() int {
	return p.B * p.n()
}

// M is the total commitment count transmitted in Message1.
func (p Params) M() int {
	nb := p.NB()
	return int(math.Ceil(float64(nb) / p.P))
}

// NumOpenings is M - NB, the number of commitments the Dealer must open.
func (p Params) NumOpenings() int {
	return p.M() - p.NB()
}

// Cost weights for the parameter search: a closed bucket entry carries a
// full DLEQ proof, a G_T ciphertext and a padded scalar, far heavier than a
// single opened scalar, so it is weighted more than an opening.
const (
	weightAny    = 1.0
	weightClosed = 3.0
	weightOpen   = 1.0
)

// ComputeOptimalParams searches the cut-and-choose opening probability
// p in {0.500, 0.501, ..., 0.998} for the (p, B) pair minimizing transmitted
// size subject to the soundness bound of spec.md §4.1.
func ComputeOptimalParams(s float64, nOutcomes, nOracles int, monotone bool) (p float64, b int, err error) {
	if nOutcomes*nOracles == 1 {
		return 0.5, int(math.Ceil(s)), nil
	}

	tmp := Params{NOutcomes: nOutcomes, NOracles: nOracles, Monotone: monotone}
	n := float64(tmp.n())
	if n <= 0 {
		return 0, 0, fmt.Errorf("dlc: invalid parameter search inputs (N=%d, O=%d)", nOutcomes, nOracles)
	}
	// A single anticipated point (monotone, one bit, one oracle) cannot meet
	// n >= 1/(1-p) for any p in the search range; it is a single bucket, so
	// it takes the same parameters as the degenerate case.
	if n < 2 {
		return 0.5, int(math.Ceil(s)), nil
	}

	logN := math.Log2(float64(nOutcomes))

	bestCost := math.Inf(1)
	bestP := 0.0
	bestB := 0
	found := false

	for step := 500; step <= 998; step++ {
		candP := float64(step) / 1000.0
		if n < 1/(1-candP) {
			continue
		}
		numerator := s - logN + math.Log2(n) - math.Log2(candP)
		denominator := math.Log2(n*(1-candP)) - math.Log2(candP)/(1-candP)
		if denominator <= 0 {
			continue
		}
		candB := int(math.Ceil(numerator / denominator))
		if candB < 1 {
			candB = 1
		}

		candNB := candB * int(n)
		candM := int(math.Ceil(float64(candNB) / candP))
		candOpen := candM - candNB
		cost := weightAny*float64(candM) + weightClosed*float64(candNB) + weightOpen*float64(candOpen)

		if !found || cost < bestCost {
			found = true
			bestCost = cost
			bestP = candP
			bestB = candB
		}
	}

	if !found {
		return 0, 0, fmt.Errorf("dlc: no feasible (p, B) found for s=%v N=%d O=%d", s, nOutcomes, nOracles)
	}
	return bestP, bestB, nil
}

// NewParams builds a Params from externally supplied oracle keys and
// ElGamal base, running the parameter engine to fill in (p, B).
func NewParams(s float64, oracleKeys []bls12381.G1Affine, eventID string, nOutcomes, threshold int, elGamalBase gt.Element, monotone bool) (Params, error) {
	nOracles := len(oracleKeys)
	if nOracles == 0 {
		return Params{}, fmt.Errorf("dlc: params require at least one oracle key")
	}
	if threshold < 1 || threshold > nOracles {
		return Params{}, fmt.Errorf("dlc: threshold %d out of range for %d oracles", threshold, nOracles)
	}
	p, b, err := ComputeOptimalParams(s, nOutcomes, nOracles, monotone)
	if err != nil {
		return Params{}, err
	}
	return Params{
		OracleKeys:  oracleKeys,
		EventID:     eventID,
		P:           p,
		B:           b,
		NOutcomes:   nOutcomes,
		NOracles:    nOracles,
		Threshold:   threshold,
		ElGamalBase: elGamalBase,
		Monotone:    monotone,
	}, nil
}
