package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntn(t *testing.T) {
	_, err := Intn(0)
	assert.Error(t, err)

	for i := 0; i < 100; i++ {
		v, err := Intn(5)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

func TestIntnUniformity(t *testing.T) {
	const n = 4
	const iterations = 40000
	counts := make([]int, n)
	for i := 0; i < iterations; i++ {
		v, err := Intn(n)
		assert.NoError(t, err)
		counts[v]++
	}
	// Each bucket expects 10000; allow a generous band.
	for i, c := range counts {
		assert.InDelta(t, iterations/n, c, 600, "bucket %d is skewed", i)
	}
}

func TestSample(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	picked, err := Sample(pool, 4)
	assert.NoError(t, err)
	assert.Len(t, picked, 4)

	seen := make(map[int]bool)
	for _, v := range picked {
		assert.Contains(t, pool, v)
		assert.False(t, seen[v], "duplicate element %d", v)
		seen[v] = true
	}

	// Pool must be untouched.
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, pool)
}

func TestSampleWholePool(t *testing.T) {
	pool := []int{3, 1, 2}
	picked, err := Sample(pool, 3)
	assert.NoError(t, err)
	assert.ElementsMatch(t, pool, picked)
}

func TestSampleTooMany(t *testing.T) {
	_, err := Sample([]int{1, 2}, 3)
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	s, err := Hex(8)
	assert.NoError(t, err)
	assert.Len(t, s, 16)

	other, err := Hex(8)
	assert.NoError(t, err)
	assert.NotEqual(t, s, other)
}
