// Package random wraps crypto/rand for uniform draws. The raffle draw and
// ticket number sampling are required to be unpredictable, so math/rand is
// not used anywhere in this module.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Intn returns a uniform random int in [0, n). n must be > 0.
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid upper bound: %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}

// Sample returns k distinct elements drawn uniformly without replacement
// from pool. The pool is copied, so the argument is left untouched. The
// result order is random; callers sort if they need determinism.
func Sample(pool []int, k int) ([]int, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("cannot sample %d of %d elements", k, len(pool))
	}
	candidates := make([]int, len(pool))
	copy(candidates, pool)

	// Partial Fisher-Yates: after i swaps the first i elements are a uniform
	// sample of the pool.
	picked := make([]int, 0, k)
	for i := 0; i < k; i++ {
		j, err := Intn(len(candidates) - i)
		if err != nil {
			return nil, err
		}
		candidates[i], candidates[i+j] = candidates[i+j], candidates[i]
		picked = append(picked, candidates[i])
	}
	return picked, nil
}

// Hex returns n random bytes hex-encoded.
func Hex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random source: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
