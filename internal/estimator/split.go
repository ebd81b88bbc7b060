package estimator

import (
	"math"
	"math/rand"
)

// TrainTestSplit deterministically partitions row indices [0,n) into a training
// set and a held-out set. The seed is threaded in explicitly so concurrent
// batches never share a generator state.
func TrainTestSplit(n int, testFraction float64, seed int64) (train []int, test []int) {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	testSize := int(math.Round(testFraction * float64(n)))
	if testSize < 1 && testFraction > 0 && n > 1 {
		testSize = 1
	}
	if testSize >= n {
		testSize = n - 1
	}
	if testSize < 0 {
		testSize = 0
	}

	return indices[testSize:], indices[:testSize]
}

// SelectRows gathers matrix rows by index
func SelectRows(matrix [][]float64, indices []int) [][]float64 {
	rows := make([][]float64, len(indices))
	for i, idx := range indices {
		rows[i] = matrix[idx]
	}
	return rows
}

// SelectLabels gathers label entries by index
func SelectLabels(labels []int, indices []int) []int {
	selected := make([]int, len(indices))
	for i, idx := range indices {
		selected[i] = labels[idx]
	}
	return selected
}
