package gt

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func TestAddSubRoundTrip(t *testing.T) {
	a, err := Sample(rand.Reader)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	b, err := Sample(rand.Reader)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	sum := Add(a, b)
	back := Sub(sum, b)
	if !back.Equal(a) {
		t.Fatalf("Add/Sub round trip failed")
	}
}

func TestScalarMulByOneIsIdentity(t *testing.T) {
	a, err := Sample(rand.Reader)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	one := big.NewInt(1)
	if !ScalarMul(a, one).Equal(a) {
		t.Fatalf("ScalarMul by 1 changed the element")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	a, err := Sample(rand.Reader)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	decoded, err := SetBytes(a.Bytes())
	if err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	if !decoded.Equal(a) {
		t.Fatalf("Bytes/SetBytes round trip failed")
	}
}
