package dlc

import "fmt"

// bucketLayout describes the [oracle][bit][bitValueSlot][replica] position
// scheme both parties use to lay retained commitments out into buckets
// (spec.md §4.2). In non-monotone mode there are two bit-value slots per
// bit (the real bit is 0 or 1); in monotone mode there is a single slot,
// halving the anticipation count per bit (spec.md glossary, "Monotone
// mode"). bitValueSlot always maps the real bit value 0/1 onto the slot
// range [0, slots).
type bucketLayout struct {
	nOracles int
	nBits    int
	slots    int
	bucket   int
}

func newBucketLayout(p Params) bucketLayout {
	return bucketLayout{
		nOracles: p.NOracles,
		nBits:    p.NOutcomeBits(),
		slots:    p.bitMultiplier(),
		bucket:   p.B,
	}
}

func (l bucketLayout) total() int {
	return l.nOracles * l.nBits * l.slots * l.bucket
}

// bitValueSlot maps a real bit value onto this layout's slot range.
func (l bucketLayout) bitValueSlot(bitValue bool) int {
	if l.slots == 1 {
		return 0
	}
	if bitValue {
		return 1
	}
	return 0
}

// index computes the flat bucket position for (oracle, bit, slot, replica).
func (l bucketLayout) index(oracle, bit, slot, replica int) int {
	bitBlock := l.slots * l.bucket
	oracleBlock := l.nBits * bitBlock
	return oracle*oracleBlock + bit*bitBlock + slot*l.bucket + replica
}

// decode is the inverse of index.
func (l bucketLayout) decode(idx int) (oracle, bit, slot, replica int, err error) {
	if idx < 0 || idx >= l.total() {
		return 0, 0, 0, 0, fmt.Errorf("dlc: bucket index %d out of range [0,%d)", idx, l.total())
	}
	bitBlock := l.slots * l.bucket
	oracleBlock := l.nBits * bitBlock
	oracle = idx / oracleBlock
	rem := idx % oracleBlock
	bit = rem / bitBlock
	rem2 := rem % bitBlock
	slot = rem2 / l.bucket
	replica = rem2 % l.bucket
	return oracle, bit, slot, replica, nil
}
