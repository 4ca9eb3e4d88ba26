package dlc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// uniformUint32 draws a uniform value in [0, bound) from rng via rejection
// sampling, avoiding modulo bias.
func uniformUint32(rng io.Reader, bound uint32) (uint32, error) {
	if bound == 0 {
		return 0, fmt.Errorf("dlc: uniform draw requires a positive bound")
	}
	limit := (^uint32(0) - (^uint32(0) % bound))
	var buf [4]byte
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return 0, fmt.Errorf("dlc: failed to read randomness: %w", err)
		}
		v := binary.BigEndian.Uint32(buf[:])
		if v < limit {
			return v % bound, nil
		}
	}
}

// randomPermutation draws a uniform permutation of {0,...,n-1} via an
// in-place Fisher-Yates shuffle.
func randomPermutation(rng io.Reader, n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := uniformUint32(rng, uint32(i+1))
		if err != nil {
			return nil, err
		}
		perm[i], perm[int(j)] = perm[int(j)], perm[i]
	}
	return perm, nil
}

// randomSubset draws a uniform size-k subset of {0,...,n-1} via partial
// Fisher-Yates shuffle, reading only as much randomness as needed.
func randomSubset(rng io.Reader, n, k int) (map[int]struct{}, error) {
	if k < 0 || k > n {
		return nil, fmt.Errorf("dlc: cannot draw a %d-subset of %d elements", k, n)
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	result := make(map[int]struct{}, k)
	for i := 0; i < k; i++ {
		j, err := uniformUint32(rng, uint32(n-i))
		if err != nil {
			return nil, err
		}
		idx := i + int(j)
		pool[i], pool[idx] = pool[idx], pool[i]
		result[pool[i]] = struct{}{}
	}
	return result, nil
}
