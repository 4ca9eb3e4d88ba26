package dlc

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// Commit is the public half of one cut-and-choose slot: C0 = g1^r',
// C1 = β^r' + m, R = g^r, and a 32-byte pad tying m to r (spec.md §3).
type Commit struct {
	C0  bls12381.G1Affine
	C1  gt.Element
	R   chaincurve.Point
	Pad [32]byte
}

// CommitSecret is the Dealer-only randomness behind one Commit: the chain
// scalar r, the BLS scalar r', and the sampled G_T mask m. It is one-to-one
// with a Commit and is destroyed once its slot is opened or closed.
type CommitSecret struct {
	R      chaincurve.Scalar
	RPrime fr.Element
	M      gt.Element
}

// Encryption is the per-bucket-entry ciphertext produced in Message3: a
// DLEQ proof tying E to C0/C1 under the anticipated attestation, the G_T
// ciphertext itself, and the padded chain scalar s̃ = r + T (spec.md §3).
type Encryption struct {
	Proof        DLEQProof
	Ciphertext   gt.Element
	PaddedShare  chaincurve.Scalar
}
