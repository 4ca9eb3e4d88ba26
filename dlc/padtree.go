package dlc

import (
	"io"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
)

// bitPadTable holds, for a single oracle, two chain scalars T0/T1 per
// outcome bit position — the one-time pads used to mask per-oracle Shamir
// shares (spec.md §4.2, §3 BitPad). Pads is indexed [bitIndex][bitValue].
type bitPadTable struct {
	Pads [][2]chaincurve.Scalar
}

// newRandomBitPadTable draws nBits independent (T0,T1) pairs.
func newRandomBitPadTable(rng io.Reader, nBits int) (bitPadTable, error) {
	pads := make([][2]chaincurve.Scalar, nBits)
	for b := 0; b < nBits; b++ {
		t0, err := chaincurve.RandomScalar(rng)
		if err != nil {
			return bitPadTable{}, err
		}
		t1, err := chaincurve.RandomScalar(rng)
		if err != nil {
			return bitPadTable{}, err
		}
		pads[b] = [2]chaincurve.Scalar{t0, t1}
	}
	return bitPadTable{Pads: pads}, nil
}

// Images publishes g*T0, g*T1 for every bit position, the public half of
// the table transmitted as Message3.bit_map_images.
func (t bitPadTable) Images() bitPadImageTable {
	images := make([][2]chaincurve.Point, len(t.Pads))
	for b, pair := range t.Pads {
		images[b] = [2]chaincurve.Point{
			chaincurve.ScalarBaseMult(pair[0]),
			chaincurve.ScalarBaseMult(pair[1]),
		}
	}
	return bitPadImageTable{Images: images}
}

// leafForOutcome sums one scalar from each bit position according to the
// outcome's bit pattern (bit 0 = least significant), forming the sum-tree
// leaf used to pad a per-oracle Shamir share (spec.md §8 property 6, §9
// "iterative construction ... matching outcome-bit encoding").
func (t bitPadTable) leafForOutcome(outcome int) chaincurve.Scalar {
	var sum chaincurve.Scalar
	for b, pair := range t.Pads {
		v := (outcome >> uint(b)) & 1
		sum = sum.Add(pair[v])
	}
	return sum
}

// bitPadImageTable is the public counterpart of bitPadTable, transmitted so
// the Receiver can verify pad-image consistency without learning the pads.
type bitPadImageTable struct {
	Images [][2]chaincurve.Point
}

func (t bitPadImageTable) leafForOutcome(outcome int) chaincurve.Point {
	acc := t.Images[0][outcome&1]
	for b := 1; b < len(t.Images); b++ {
		v := (outcome >> uint(b)) & 1
		acc = acc.Add(t.Images[b][v])
	}
	return acc
}
