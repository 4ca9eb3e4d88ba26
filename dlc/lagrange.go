package dlc

import "github.com/llfourn/dlc-venc-go/internal/chaincurve"

// share is one (x, y) Shamir share recovered from an oracle's attestation.
type share struct {
	x chaincurve.Scalar
	y chaincurve.Scalar
}

// interpolateAtZero reconstructs f(0) from a set of shares via Lagrange
// interpolation, the same technique as the teacher's threshold signing
// path (calculateLagrangeCoefficients), generalized to the chain curve's
// scalar field.
func interpolateAtZero(shares []share) chaincurve.Scalar {
	var result chaincurve.Scalar
	for i, si := range shares {
		coeff := chaincurve.ScalarFromInt(1)
		for k, sk := range shares {
			if k == i {
				continue
			}
			// L_i(0) *= (0 - x_k) / (x_i - x_k) = -x_k * (x_i - x_k)^-1
			numerator := sk.x.Neg()
			denominator := si.x.Sub(sk.x)
			coeff = coeff.Mul(numerator).Mul(denominator.Inverse())
		}
		result = result.Add(si.y.Mul(coeff))
	}
	return result
}
