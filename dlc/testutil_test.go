package dlc

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

// deterministicRNG wraps a seeded ChaCha20 keystream as an io.Reader, giving
// reproducible test vectors the same way the original implementation's
// rand_chacha::ChaCha20Rng does (spec.md §8 "deterministic seeds").
type deterministicRNG struct {
	cipher *chacha20.Cipher
}

func newDeterministicRNG(seed uint64) io.Reader {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		panic(err)
	}
	return &deterministicRNG{cipher: c}
}

func (d *deterministicRNG) Read(p []byte) (int, error) {
	zero := make([]byte, len(p))
	d.cipher.XORKeyStream(p, zero)
	return len(p), nil
}
