// Package dsp holds small sample-domain helpers shared across the
// analysis and mastering packages: dB/linear conversion, finiteness
// checks, and window functions. It imports no other package of this
// module, so every other package in the module can import it without
// cycles.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon guards log/divide operations against -Inf/NaN on silence.
const Epsilon = 1e-10

// LinearToDb converts a linear amplitude to dB, floored via Epsilon.
func LinearToDb(x float64) float64 {
	return 20 * math.Log10(math.Abs(x)+Epsilon)
}

// DbToLinear converts a dB value back to a linear amplitude multiplier.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// PowerToDb converts a mean-square power value to dB, floored via Epsilon.
func PowerToDb(power float64) float64 {
	return 10 * math.Log10(power+Epsilon)
}

// AllFinite reports whether every sample in buf is finite (not NaN/Inf).
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// FirstNonFinite returns the index of the first non-finite sample, or -1
// if every sample is finite.
func FirstNonFinite(buf []float64) int {
	for i, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}

	return -1
}

// RMS returns the root-mean-square amplitude of buf.
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	sumSq := floats.Dot(buf, buf)

	return math.Sqrt(sumSq / float64(len(buf)))
}

// Peak returns the maximum absolute sample value in buf.
func Peak(buf []float64) float64 {
	var peak float64

	for _, v := range buf {
		if abs := math.Abs(v); abs > peak {
			peak = abs
		}
	}

	return peak
}

// HannWindow returns a size-length periodic-free (symmetric) Hann window.
func HannWindow(size int) []float64 {
	w := make([]float64, size)
	if size == 1 {
		w[0] = 1

		return w
	}

	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return w
}

// ApplyWindow multiplies src by window element-wise into dst (dst may
// alias src). Panics if lengths differ, mirroring floats.MulTo semantics.
func ApplyWindow(dst, src, window []float64) {
	floats.MulTo(dst, src, window)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}

// Resample performs simple linear-interpolation resampling of mono
// samples from srcRate to dstRate. The mastering/analysis core only
// ever downsamples or upsamples short analysis windows, so a linear
// resampler (rather than a full polyphase design) is an acceptable
// trade of fidelity for determinism and simplicity.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)

		return out
	}

	ratio := float64(dstRate) / float64(srcRate)
	outLen := int(float64(len(samples)) * ratio)
	out := make([]float64, outLen)

	for i := range out {
		srcPos := float64(i) / ratio
		i0 := int(srcPos)
		frac := srcPos - float64(i0)

		if i0 >= len(samples)-1 {
			out[i] = samples[len(samples)-1]

			continue
		}

		out[i] = samples[i0]*(1-frac) + samples[i0+1]*frac
	}

	return out
}

// Downmix averages planar multi-channel samples (channels x N) into a
// single mono slice of length N.
func Downmix(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}

	if len(channels) == 1 {
		out := make([]float64, len(channels[0]))
		copy(out, channels[0])

		return out
	}

	n := len(channels[0])
	out := make([]float64, n)

	for _, ch := range channels {
		for i, v := range ch {
			out[i] += v
		}
	}

	inv := 1 / float64(len(channels))
	for i := range out {
		out[i] *= inv
	}

	return out
}
