package spectral

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// hzToMel and melToHz use the standard HTK-style mel formula.
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// MelFilterbank builds a (numBands x (nFFT/2+1)) matrix of overlapping
// triangular filters spaced evenly in mel space between 0 Hz and the
// Nyquist frequency, the standard construction behind MFCC extraction.
func MelFilterbank(numBands, nFFT, sampleRate int) *mat.Dense {
	binCount := nFFT/2 + 1
	nyquist := float64(sampleRate) / 2

	melLo := hzToMel(0)
	melHi := hzToMel(nyquist)

	points := make([]float64, numBands+2)
	for i := range points {
		points[i] = melLo + (melHi-melLo)*float64(i)/float64(numBands+1)
	}

	binFreqs := make([]float64, numBands+2)
	for i, m := range points {
		binFreqs[i] = melToHz(m)
	}

	binIndices := make([]int, numBands+2)
	for i, f := range binFreqs {
		binIndices[i] = int(math.Round(f / (nyquist / float64(binCount-1))))
	}

	fb := mat.NewDense(numBands, binCount, nil)

	for band := 0; band < numBands; band++ {
		left := binIndices[band]
		center := binIndices[band+1]
		right := binIndices[band+2]

		for bin := left; bin < center; bin++ {
			if bin < 0 || bin >= binCount || center == left {
				continue
			}

			fb.Set(band, bin, float64(bin-left)/float64(center-left))
		}

		for bin := center; bin < right; bin++ {
			if bin < 0 || bin >= binCount || right == center {
				continue
			}

			fb.Set(band, bin, float64(right-bin)/float64(right-center))
		}
	}

	return fb
}

// MelEnergies applies a filterbank to a magnitude spectrum, returning
// log-scaled band energies (one per filterbank row).
func MelEnergies(fb *mat.Dense, spectrum []float64) []float64 {
	rows, cols := fb.Dims()
	if cols != len(spectrum) {
		cols = len(spectrum)
	}

	spec := mat.NewVecDense(cols, spectrum[:cols])
	energies := mat.NewVecDense(rows, nil)
	energies.MulVec(fb.Slice(0, rows, 0, cols), spec)

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = math.Log(energies.AtVec(i) + 1e-10)
	}

	return out
}

// DCT2 computes the first numCoeffs coefficients of the type-II discrete
// cosine transform of in (orthonormal scaling is not applied, matching
// the unnormalized cepstral convention used by most MFCC references).
func DCT2(in []float64, numCoeffs int) []float64 {
	n := len(in)
	out := make([]float64, numCoeffs)

	for k := 0; k < numCoeffs; k++ {
		var sum float64

		for i, x := range in {
			sum += x * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}

		out[k] = sum
	}

	return out
}
