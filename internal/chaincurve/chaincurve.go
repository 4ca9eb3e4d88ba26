// Package chaincurve wraps github.com/decred/dcrd/dcrec/secp256k1/v4 to
// expose the "chain curve" scalar field and group spec.md calls G/Z_q: the
// curve whose points are adaptor-signature encryption keys, distinct from
// the BLS12-381 groups used for oracle pairings. It plays the same
// boundary-wrapper role the teacher's pkg/crypto plays around gnark-crypto.
package chaincurve

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// curveOrder is the order of the secp256k1 base point, used only to invert
// scalars for Lagrange interpolation (ModNScalar has no public inverse).
var curveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// Scalar is an element of the chain curve's scalar field Z_q.
type Scalar struct {
	v secp256k1.ModNScalar
}

// Point is a chain curve group element in affine form.
type Point struct {
	x, y secp256k1.FieldVal
}

// RandomScalar draws a uniform, non-zero scalar from the given CSPRNG. A
// fresh session must not reuse an RNG across protocol runs without
// reseeding (spec.md §5).
func RandomScalar(rng io.Reader) (Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var buf [32]byte
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("chaincurve: failed to read randomness: %w", err)
		}
		var s Scalar
		overflow := s.v.SetBytes(&buf)
		if overflow == 0 && !s.v.IsZero() {
			return s, nil
		}
	}
}

// ScalarFromInt builds the scalar for a small positive integer, used for
// polynomial evaluation points x = oracle_index+1.
func ScalarFromInt(x uint32) Scalar {
	var s Scalar
	s.v.SetInt(x)
	return s
}

// ScalarFromBytesModOrder reduces an arbitrary 32-byte string into Z_q, used
// to turn a SHA-256 digest into a chain scalar (spec.md §4.4 pad mapping).
func ScalarFromBytesModOrder(b [32]byte) Scalar {
	var s Scalar
	s.v.SetBytes(&b)
	return s
}

// Bytes returns the big-endian canonical 32-byte encoding.
func (s Scalar) Bytes() [32]byte {
	return s.v.Bytes()
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Add returns s + other mod q.
func (s Scalar) Add(other Scalar) Scalar {
	sum := s.v
	sum.Add(&other.v)
	return Scalar{v: sum}
}

// Sub returns s - other mod q.
func (s Scalar) Sub(other Scalar) Scalar {
	neg := other.v
	neg.Negate()
	sum := s.v
	sum.Add(&neg)
	return Scalar{v: sum}
}

// Mul returns s * other mod q.
func (s Scalar) Mul(other Scalar) Scalar {
	prod := s.v
	prod.Mul(&other.v)
	return Scalar{v: prod}
}

// Equal reports whether two scalars encode the same field element.
func (s Scalar) Equal(other Scalar) bool {
	return s.v.Equals(&other.v)
}

// Inverse returns the multiplicative inverse of s mod q, for use in
// Lagrange interpolation. Zero has no inverse; for s = 0 it returns zero.
func (s Scalar) Inverse() Scalar {
	b := s.v.Bytes()
	bi := new(big.Int).SetBytes(b[:])
	bi.ModInverse(bi, curveOrder)
	var out [32]byte
	bi.FillBytes(out[:])
	var result Scalar
	result.v.SetBytes(&out)
	return result
}

// Neg returns -s mod q.
func (s Scalar) Neg() Scalar {
	neg := s.v
	neg.Negate()
	return Scalar{v: neg}
}

// Xor computes the byte-wise XOR of the scalar's canonical encoding with a
// 32-byte pad, used both to create and to open Commit.pad (spec.md §4.2,
// §4.3).
func (s Scalar) Xor(pad [32]byte) [32]byte {
	b := s.v.Bytes()
	var out [32]byte
	for i := range out {
		out[i] = b[i] ^ pad[i]
	}
	return out
}

// Generator returns the chain curve's base point G.
func Generator() Point {
	var gen secp256k1.JacobianPoint
	one := ScalarFromInt(1)
	secp256k1.ScalarBaseMultNonConst(&one.v, &gen)
	gen.ToAffine()
	return Point{x: gen.X, y: gen.Y}
}

// ScalarBaseMult computes s*G.
func ScalarBaseMult(s Scalar) Point {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.v, &result)
	result.ToAffine()
	return Point{x: result.X, y: result.Y}
}

// ScalarMult computes s*p for an arbitrary point p.
func ScalarMult(p Point, s Scalar) Point {
	pj := p.jacobian()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &pj, &result)
	result.ToAffine()
	return Point{x: result.X, y: result.Y}
}

func (p Point) jacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	j.X = p.x
	j.Y = p.y
	j.Z.SetInt(1)
	return j
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	pj, oj := p.jacobian(), other.jacobian()
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&pj, &oj, &sum)
	sum.ToAffine()
	return Point{x: sum.X, y: sum.Y}
}

// Equal reports whether p and other are the same affine point.
func (p Point) Equal(other Point) bool {
	return p.x.Equals(&other.x) && p.y.Equals(&other.y)
}

// Compressed returns the canonical 33-byte SEC1-compressed encoding.
func (p Point) Compressed() [33]byte {
	pub := secp256k1.NewPublicKey(&p.x, &p.y)
	var out [33]byte
	copy(out[:], pub.SerializeCompressed())
	return out
}

// ParsePoint decodes a SEC1-compressed point.
func ParsePoint(data []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return Point{}, fmt.Errorf("chaincurve: invalid point encoding: %w", err)
	}
	return Point{x: *pub.X(), y: *pub.Y()}, nil
}
