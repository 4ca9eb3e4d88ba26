package dlc

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
)

// Message1 is the Dealer's first message: M independent commitments.
type Message1 struct {
	Commits []Commit
}

// Message2 is the Receiver's response: a permutation of [0,NB) assigning
// retained commitments to bucket positions, and the set of indices (size
// M-NB) the Dealer must open.
type Message2 struct {
	BucketMapping []int
	Openings      map[int]struct{}
}

// Message3 is the Dealer's final message: the per-bucket encryptions, the
// openings for the indices the Receiver chose, the per-outcome polynomial
// commitments, the per-oracle bit-pad images, and the per-oracle
// per-outcome padded share sums.
type Message3 struct {
	Encryptions []Encryption
	Openings    []fr.Element
	Polys       []PointPoly
	// BitMapImages holds one table per oracle, each indexed [bitIndex][bitValue].
	BitMapImages []bitPadImageTable
	// SecretSharePadsByOracle[j][o] is oracle j's published pad sum for outcome o.
	SecretSharePadsByOracle [][]chaincurve.Scalar
}
