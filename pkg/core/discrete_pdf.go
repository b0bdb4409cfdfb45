package core

import (
	"fmt"
	"sort"
)

// DiscretePDF is a cumulative table over a finite set of weighted entries
type DiscretePDF struct {
	cdf []float64
	sum float64
}

// NewDiscretePDF creates an empty table with room for n entries
func NewDiscretePDF(n int) *DiscretePDF {
	d := &DiscretePDF{cdf: make([]float64, 1, n+1)}
	return d
}

// Append adds an entry with the given non-negative weight
func (d *DiscretePDF) Append(weight float64) {
	if weight < 0 {
		panic(fmt.Sprintf("discrete pdf: negative weight %g", weight))
	}
	d.cdf = append(d.cdf, d.cdf[len(d.cdf)-1]+weight)
}

// Size returns the number of entries
func (d *DiscretePDF) Size() int {
	return len(d.cdf) - 1
}

// Sum returns the total weight before normalization
func (d *DiscretePDF) Sum() float64 {
	return d.sum
}

// Get returns the (normalized) probability of entry i
func (d *DiscretePDF) Get(i int) float64 {
	return d.cdf[i+1] - d.cdf[i]
}

// Normalize scales the table so that the weights sum to one and returns the
// original sum. A table of zero weights is left untouched.
func (d *DiscretePDF) Normalize() float64 {
	d.sum = d.cdf[len(d.cdf)-1]
	if d.sum > 0 {
		inv := 1.0 / d.sum
		for i := 1; i < len(d.cdf); i++ {
			d.cdf[i] *= inv
		}
		d.cdf[len(d.cdf)-1] = 1
	}
	return d.sum
}

// Sample selects an entry for u in [0, 1) and returns it with its probability
func (d *DiscretePDF) Sample(u float64) (int, float64) {
	// first cdf entry strictly greater than u, minus one
	idx := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u }) - 1
	idx = max(0, min(idx, d.Size()-1))
	return idx, d.Get(idx)
}

// SampleReuse selects an entry like Sample and also returns u rescaled to
// [0, 1) within the selected entry, so the caller can reuse it.
func (d *DiscretePDF) SampleReuse(u float64) (int, float64, float64) {
	idx, pdf := d.Sample(u)
	if pdf <= 0 {
		return idx, pdf, 0
	}
	reused := (u - d.cdf[idx]) / pdf
	return idx, pdf, Clamp(reused, 0, 1-1e-12)
}
