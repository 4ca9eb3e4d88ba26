package dlc

import (
	"crypto/sha256"

	"github.com/llfourn/dlc-venc-go/internal/chaincurve"
	"github.com/llfourn/dlc-venc-go/internal/gt"
)

// mapZqToGtPad takes a chain scalar r and a G_T element m, and derives the
// 32-byte one-time pad tying them together:
// pad = SHA256(compressed(m)) XOR bytes(r). This is the Dealer-side half of
// the opening-mask round trip (spec.md §8 property 3).
func mapZqToGtPad(r chaincurve.Scalar, m gt.Element) [32]byte {
	digest := sha256.Sum256(m.Bytes())
	return r.Xor(digest)
}

// mapGtToZq recovers the chain scalar r from a G_T element and its pad:
// r = SHA256(compressed(m)) XOR pad.
func mapGtToZq(m gt.Element, pad [32]byte) chaincurve.Scalar {
	digest := sha256.Sum256(m.Bytes())
	var rBytes [32]byte
	for i := range rBytes {
		rBytes[i] = digest[i] ^ pad[i]
	}
	return chaincurve.ScalarFromBytesModOrder(rBytes)
}
