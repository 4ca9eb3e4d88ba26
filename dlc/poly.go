package dlc

import (
	"fmt"
	"io"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
)

// ScalarPoly is a Shamir-style polynomial over the chain-curve scalar field,
// coefficients low-degree first: f(x) = a_0 + a_1 x + ... + a_d x^d.
type ScalarPoly struct {
	Coeffs []chaincurve.Scalar
}

// NewRandomScalarPoly draws a degree-d polynomial whose constant term is
// fixed to the given secret and whose remaining d coefficients are random.
func NewRandomScalarPoly(rng io.Reader, degree int, secret chaincurve.Scalar) (ScalarPoly, error) {
	coeffs := make([]chaincurve.Scalar, degree+1)
	coeffs[0] = secret
	for i := 1; i <= degree; i++ {
		s, err := chaincurve.RandomScalar(rng)
		if err != nil {
			return ScalarPoly{}, fmt.Errorf("dlc: failed to sample polynomial coefficient: %w", err)
		}
		coeffs[i] = s
	}
	return ScalarPoly{Coeffs: coeffs}, nil
}

// Degree returns len(Coeffs)-1.
func (f ScalarPoly) Degree() int {
	return len(f.Coeffs) - 1
}

// Eval evaluates f at integer x >= 1 using iterative power accumulation
// (x^i = x^{i-1} * x), matching the original implementation's evaluation
// strategy rather than per-term big.Int exponentiation.
func (f ScalarPoly) Eval(x chaincurve.Scalar) chaincurve.Scalar {
	var result chaincurve.Scalar // zero value is the additive identity
	xpow := chaincurve.ScalarFromInt(1)
	for _, a := range f.Coeffs {
		result = result.Add(a.Mul(xpow))
		xpow = xpow.Mul(x)
	}
	return result
}

// ToPointPoly maps every coefficient a_i to its image a_i*G.
func (f ScalarPoly) ToPointPoly() PointPoly {
	points := make([]chaincurve.Point, len(f.Coeffs))
	for i, a := range f.Coeffs {
		points[i] = chaincurve.ScalarBaseMult(a)
	}
	return PointPoly{Points: points}
}

// PushFrontConstant prepends a new constant term, shifting every existing
// coefficient up by one degree.
func (f *ScalarPoly) PushFrontConstant(c chaincurve.Scalar) {
	f.Coeffs = append([]chaincurve.Scalar{c}, f.Coeffs...)
}

// PopFrontConstant removes and returns the constant term.
func (f *ScalarPoly) PopFrontConstant() chaincurve.Scalar {
	c := f.Coeffs[0]
	f.Coeffs = f.Coeffs[1:]
	return c
}

// PointPoly is the image of a ScalarPoly under the chain curve's generator,
// used to publish a per-outcome polynomial commitment without revealing its
// coefficients.
type PointPoly struct {
	Points []chaincurve.Point
}

// Eval evaluates the point polynomial at integer x via linear combination:
// sum_i (x^i) * Points[i].
func (f PointPoly) Eval(x chaincurve.Scalar) chaincurve.Point {
	xpow := chaincurve.ScalarFromInt(1)
	acc := chaincurve.ScalarMult(f.Points[0], xpow)
	xpow = xpow.Mul(x)
	for _, p := range f.Points[1:] {
		acc = acc.Add(chaincurve.ScalarMult(p, xpow))
		xpow = xpow.Mul(x)
	}
	return acc
}

// PushFrontConstant prepends a new constant term's image, shifting every
// existing coefficient image up by one degree.
func (f *PointPoly) PushFrontConstant(c chaincurve.Point) {
	f.Points = append([]chaincurve.Point{c}, f.Points...)
}

// PopFrontConstant removes and returns the constant term's image.
func (f *PointPoly) PopFrontConstant() chaincurve.Point {
	c := f.Points[0]
	f.Points = f.Points[1:]
	return c
}
