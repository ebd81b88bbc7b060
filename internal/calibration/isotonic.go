// Package calibration corrects systematic probability bias with isotonic regression.
package calibration

import (
	"sort"

	"github.com/yourusername/diamond-edge/internal/models"
)

// Isotonic is a fitted non-decreasing map from raw to recalibrated probability.
// Inputs outside the fitted range are clipped to the boundary values, never
// extrapolated; inputs inside interpolate linearly between breakpoints.
type Isotonic struct {
	thresholds []float64
	values     []float64
}

type block struct {
	sum    float64
	weight float64
	count  int
}

func (b block) mean() float64 {
	return b.sum / b.weight
}

// Fit runs pool-adjacent-violators on (raw probability, label) pairs.
// Requires at least two observations and both outcome classes.
func Fit(raw []float64, labels []int) (*Isotonic, error) {
	if len(raw) < 2 || len(raw) != len(labels) {
		return nil, models.ErrInsufficientData
	}
	if !hasBothClasses(labels) {
		return nil, models.ErrInsufficientData
	}

	xs, ys, weights := aggregateDuplicates(raw, labels)

	// Pool adjacent violators: merge neighboring blocks until means are
	// non-decreasing left to right.
	blocks := make([]block, 0, len(xs))
	for i := range xs {
		blocks = append(blocks, block{sum: ys[i] * weights[i], weight: weights[i], count: 1})
		for len(blocks) >= 2 && blocks[len(blocks)-1].mean() < blocks[len(blocks)-2].mean() {
			last := blocks[len(blocks)-1]
			prev := blocks[len(blocks)-2]
			merged := block{
				sum:    prev.sum + last.sum,
				weight: prev.weight + last.weight,
				count:  prev.count + last.count,
			}
			blocks = blocks[:len(blocks)-2]
			blocks = append(blocks, merged)
		}
	}

	values := make([]float64, len(xs))
	pos := 0
	for _, blk := range blocks {
		mean := blk.mean()
		for i := 0; i < blk.count; i++ {
			values[pos] = mean
			pos++
		}
	}

	return &Isotonic{thresholds: xs, values: values}, nil
}

// Transform maps a raw probability through the fitted step function
func (c *Isotonic) Transform(p float64) float64 {
	n := len(c.thresholds)
	if p <= c.thresholds[0] {
		return clamp01(c.values[0])
	}
	if p >= c.thresholds[n-1] {
		return clamp01(c.values[n-1])
	}

	idx := sort.SearchFloat64s(c.thresholds, p)
	if c.thresholds[idx] == p {
		return clamp01(c.values[idx])
	}

	// Linear interpolation between the surrounding breakpoints.
	x0, x1 := c.thresholds[idx-1], c.thresholds[idx]
	y0, y1 := c.values[idx-1], c.values[idx]
	t := (p - x0) / (x1 - x0)
	return clamp01(y0 + t*(y1-y0))
}

// TransformAll maps a slice of raw probabilities
func (c *Isotonic) TransformAll(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, p := range raw {
		out[i] = c.Transform(p)
	}
	return out
}

// Range returns the fitted input domain
func (c *Isotonic) Range() (min float64, max float64) {
	return c.thresholds[0], c.thresholds[len(c.thresholds)-1]
}

// aggregateDuplicates sorts pairs by x and collapses equal x values into a
// weighted mean so the fitted map is a function.
func aggregateDuplicates(raw []float64, labels []int) (xs []float64, ys []float64, weights []float64) {
	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return raw[order[i]] < raw[order[j]]
	})

	for _, idx := range order {
		x := raw[idx]
		y := float64(labels[idx])
		n := len(xs)
		if n > 0 && xs[n-1] == x {
			ys[n-1] = (ys[n-1]*weights[n-1] + y) / (weights[n-1] + 1)
			weights[n-1]++
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		weights = append(weights, 1)
	}
	return xs, ys, weights
}

func hasBothClasses(labels []int) bool {
	seenZero := false
	seenOne := false
	for _, y := range labels {
		if y == 0 {
			seenZero = true
		} else {
			seenOne = true
		}
	}
	return seenZero && seenOne
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
