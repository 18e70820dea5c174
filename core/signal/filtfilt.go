package signal

// lfilter applies the IIR difference equation in direct form II transposed.
func lfilter(b, a, x []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	bb := make([]float64, n)
	aa := make([]float64, n)
	copy(bb, b)
	copy(aa, a)
	if aa[0] != 1 {
		a0 := aa[0]
		for i := range bb {
			bb[i] /= a0
		}
		for i := range aa {
			aa[i] /= a0
		}
	}

	d := make([]float64, n-1)
	y := make([]float64, len(x))
	for i, xv := range x {
		yv := bb[0]*xv + d[0]
		for j := 1; j < n; j++ {
			nd := bb[j]*xv - aa[j]*yv
			if j < n-1 {
				nd += d[j]
			}
			d[j-1] = nd
		}
		y[i] = yv
	}
	return y
}

// filtFilt runs the filter forward and backward for zero phase distortion.
// The input is extended at both ends by an odd reflection so the startup
// transient decays inside the padding, then the padding is stripped.
func filtFilt(b, a, x []float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pad := 3 * (n - 1)
	if pad >= len(x) {
		pad = len(x) - 1
	}
	if pad < 0 {
		pad = 0
	}

	ext := oddExt(x, pad)
	y := lfilter(b, a, ext)
	reverse(y)
	y = lfilter(b, a, y)
	reverse(y)
	return y[pad : len(y)-pad]
}

// oddExt reflects pad samples around each endpoint: 2*x[0]-x[i] on the left,
// 2*x[n-1]-x[n-1-i] on the right.
func oddExt(x []float64, pad int) []float64 {
	out := make([]float64, 0, len(x)+2*pad)
	first, last := x[0], x[len(x)-1]
	for i := pad; i >= 1; i-- {
		out = append(out, 2*first-x[i])
	}
	out = append(out, x...)
	for i := 1; i <= pad; i++ {
		out = append(out, 2*last-x[len(x)-1-i])
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
