// Package sortpca splits one electrode's spike train into putative sources
// by clustering a 2-D principal-component embedding of the spike waveforms.
package sortpca

import (
	"fmt"
	"math"
)

// PCA2 projects the rows of x onto their top two principal components.
// All rows must share the same length. The embedding is deterministic up to
// component sign, which is irrelevant for distance-based clustering.
func PCA2(x [][]float64) ([][2]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, nil
	}
	d := len(x[0])
	for i, row := range x {
		if len(row) != d {
			return nil, fmt.Errorf("row %d has %d samples, want %d", i, len(row), d)
		}
	}

	// Mean-center the columns.
	mean := make([]float64, d)
	for _, row := range x {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	centered := make([][]float64, n)
	for i, row := range x {
		c := make([]float64, d)
		for j, v := range row {
			c[j] = v - mean[j]
		}
		centered[i] = c
	}

	cov := covariance(centered)
	v1 := powerIterate(cov, nil)
	deflate(cov, v1)
	v2 := powerIterate(cov, v1)

	out := make([][2]float64, n)
	for i, row := range centered {
		out[i] = [2]float64{dot(row, v1), dot(row, v2)}
	}
	return out, nil
}

func covariance(x [][]float64) [][]float64 {
	n, d := len(x), len(x[0])
	cov := make([][]float64, d)
	for i := range cov {
		cov[i] = make([]float64, d)
	}
	if n < 2 {
		return cov
	}
	for _, row := range x {
		for i, a := range row {
			for j, b := range row {
				cov[i][j] += a * b
			}
		}
	}
	for i := range cov {
		for j := range cov[i] {
			cov[i][j] /= float64(n - 1)
		}
	}
	return cov
}

// powerIterate finds the dominant eigenvector of a symmetric matrix by
// power iteration from a fixed start vector. A non-nil orth unit vector is
// projected out of every iterate, keeping the result orthogonal to an
// already-found component even when the residual variance is zero.
func powerIterate(m [][]float64, orth []float64) []float64 {
	d := len(m)
	v := make([]float64, d)
	for i := range v {
		v[i] = 1 / math.Sqrt(float64(d))
	}
	v = orthonormalize(v, orth)
	if v == nil {
		// Start vector was parallel to orth; any basis vector will do.
		for k := 0; k < d; k++ {
			e := make([]float64, d)
			e[k] = 1
			if v = orthonormalize(e, orth); v != nil {
				break
			}
		}
		if v == nil {
			return make([]float64, d)
		}
	}

	for iter := 0; iter < 500; iter++ {
		next := make([]float64, d)
		for i := range m {
			for j, c := range m[i] {
				next[i] += c * v[j]
			}
		}
		next = orthonormalize(next, orth)
		if next == nil {
			return v
		}
		if math.Abs(math.Abs(dot(next, v))-1) < 1e-12 {
			return next
		}
		v = next
	}
	return v
}

// orthonormalize removes the orth component from v and scales to unit
// length; nil when nothing is left.
func orthonormalize(v, orth []float64) []float64 {
	out := append([]float64(nil), v...)
	if orth != nil {
		p := dot(out, orth)
		for i := range out {
			out[i] -= p * orth[i]
		}
	}
	norm := math.Sqrt(dot(out, out))
	if norm < 1e-300 {
		return nil
	}
	for i := range out {
		out[i] /= norm
	}
	return out
}

// deflate removes the component along v: m -= lambda * v v^T.
func deflate(m [][]float64, v []float64) {
	d := len(m)
	mv := make([]float64, d)
	for i := range m {
		mv[i] = dot(m[i], v)
	}
	lambda := dot(mv, v)
	for i := range m {
		for j := range m[i] {
			m[i][j] -= lambda * v[i] * v[j]
		}
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i, v := range a {
		s += v * b[i]
	}
	return s
}
