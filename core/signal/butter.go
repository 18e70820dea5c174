package signal

import (
	"fmt"
	"math"
	"math/cmplx"
)

// coeffs holds digital IIR transfer-function coefficients with a[0] == 1.
type coeffs struct {
	b, a []float64
}

// zpk is a filter in zero/pole/gain form. Complex arithmetic keeps the band
// transforms exact; coefficients are realized at the end.
type zpk struct {
	z, p []complex128
	k    float64
}

type bandType int

const (
	lowpass bandType = iota
	highpass
	bandpass
)

// butter designs a digital Butterworth filter of the given order. Edge
// frequencies are fractions of the Nyquist frequency, 0 < wn < 1.
func butter(order int, wn []float64, btype bandType) (coeffs, error) {
	for _, w := range wn {
		if w <= 0 || w >= 1 {
			return coeffs{}, fmt.Errorf("normalized frequency %g out of range (0, 1)", w)
		}
	}

	// Design happens in the analog domain at an internal rate of fs=2 so
	// that the Nyquist frequency is 1; pre-warp the edges for the bilinear
	// transform.
	const fs = 2.0
	warped := make([]float64, len(wn))
	for i, w := range wn {
		warped[i] = 2 * fs * math.Tan(math.Pi*w/fs)
	}

	f := zpk{p: butterPoles(order), k: 1}
	switch btype {
	case lowpass:
		f = lp2lp(f, warped[0])
	case highpass:
		f = lp2hp(f, warped[0])
	case bandpass:
		if len(warped) != 2 {
			return coeffs{}, fmt.Errorf("bandpass needs two edge frequencies")
		}
		wo := math.Sqrt(warped[0] * warped[1])
		bw := warped[1] - warped[0]
		f = lp2bp(f, wo, bw)
	}
	f = bilinear(f, fs)
	return tf(f), nil
}

// butterPoles returns the analog lowpass Butterworth prototype poles, all on
// the unit circle in the left half-plane.
func butterPoles(order int) []complex128 {
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

func lp2lp(f zpk, wo float64) zpk {
	degree := len(f.p) - len(f.z)
	out := zpk{k: f.k * math.Pow(wo, float64(degree))}
	for _, z := range f.z {
		out.z = append(out.z, z*complex(wo, 0))
	}
	for _, p := range f.p {
		out.p = append(out.p, p*complex(wo, 0))
	}
	return out
}

func lp2hp(f zpk, wo float64) zpk {
	degree := len(f.p) - len(f.z)
	out := zpk{}
	num, den := complex(1, 0), complex(1, 0)
	for _, z := range f.z {
		out.z = append(out.z, complex(wo, 0)/z)
		num *= -z
	}
	for _, p := range f.p {
		out.p = append(out.p, complex(wo, 0)/p)
		den *= -p
	}
	for i := 0; i < degree; i++ {
		out.z = append(out.z, 0)
	}
	out.k = f.k * real(num/den)
	return out
}

func lp2bp(f zpk, wo, bw float64) zpk {
	degree := len(f.p) - len(f.z)
	out := zpk{k: f.k * math.Pow(bw, float64(degree))}
	shift := func(roots []complex128) []complex128 {
		scaled := make([]complex128, len(roots))
		for i, r := range roots {
			scaled[i] = r * complex(bw/2, 0)
		}
		var both []complex128
		for _, r := range scaled {
			d := cmplx.Sqrt(r*r - complex(wo*wo, 0))
			both = append(both, r+d)
		}
		for _, r := range scaled {
			d := cmplx.Sqrt(r*r - complex(wo*wo, 0))
			both = append(both, r-d)
		}
		return both
	}
	out.z = shift(f.z)
	out.p = shift(f.p)
	for i := 0; i < degree; i++ {
		out.z = append(out.z, 0)
	}
	return out
}

// bilinear maps the analog filter into the digital domain at rate fs,
// placing leftover zeros at z=-1.
func bilinear(f zpk, fs float64) zpk {
	fs2 := complex(2*fs, 0)
	degree := len(f.p) - len(f.z)
	out := zpk{}
	num, den := complex(1, 0), complex(1, 0)
	for _, z := range f.z {
		out.z = append(out.z, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}
	for _, p := range f.p {
		out.p = append(out.p, (fs2+p)/(fs2-p))
		den *= fs2 - p
	}
	for i := 0; i < degree; i++ {
		out.z = append(out.z, -1)
	}
	out.k = f.k * real(num/den)
	return out
}

// tf expands zero/pole/gain form into polynomial coefficients.
func tf(f zpk) coeffs {
	b := polyFromRoots(f.z)
	a := polyFromRoots(f.p)
	out := coeffs{b: make([]float64, len(b)), a: make([]float64, len(a))}
	for i, c := range b {
		out.b[i] = f.k * real(c)
	}
	for i, c := range a {
		out.a[i] = real(c)
	}
	return out
}

func polyFromRoots(roots []complex128) []complex128 {
	poly := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(poly)+1)
		for i, c := range poly {
			next[i] += c
			next[i+1] -= c * r
		}
		poly = next
	}
	return poly
}
