// Package stereo implements the mastering-side mid/side processor:
// width scaling, mono-fold, and bass-mono splitting. It is distinct
// from the analysis-side stereoanalysis package, which only measures a
// stereo image rather than altering it.
package stereo

import (
	"fmt"
	"math"

	"github.com/sonora-labs/masterforge/biquad"
	"github.com/sonora-labs/masterforge/filter"
	"github.com/sonora-labs/masterforge/masterforgeerr"
)

// Settings configures the stereo-width stage.
type Settings struct {
	Width        float64 // 0 = mono fold, 1 = unity, >1 = widened
	BassMonoFreq float64 // Hz; side content below this is folded to mono. 0 disables.
}

// Validate checks Settings for a non-negative width and a bass-mono
// frequency within [0, Nyquist).
func (s Settings) Validate(sampleRate int) error {
	if s.Width < 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("stereo: width must be >= 0, got %.2f", s.Width))
	}

	nyquist := float64(sampleRate) / 2
	if s.BassMonoFreq < 0 || s.BassMonoFreq >= nyquist {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("stereo: bass mono freq %.2f out of range [0, %.2f)", s.BassMonoFreq, nyquist))
	}

	return nil
}

// toMidSide decomposes a stereo pair into mid/side: mid = (l+r)/2,
// side = (l-r)/2.
func toMidSide(l, r []float64) (mid, side []float64) {
	n := len(l)
	mid = make([]float64, n)
	side = make([]float64, n)

	for i := range l {
		mid[i] = (l[i] + r[i]) / 2
		side[i] = (l[i] - r[i]) / 2
	}

	return mid, side
}

// fromMidSide reconstructs l/r from mid/side: l = mid+side, r = mid-side.
func fromMidSide(mid, side []float64) (l, r []float64) {
	n := len(mid)
	l = make([]float64, n)
	r = make([]float64, n)

	for i := range mid {
		l[i] = mid[i] + side[i]
		r[i] = mid[i] - side[i]
	}

	return l, r
}

// Process applies width scaling and optional bass-mono splitting to a
// stereo pair of channels. A mono input (single channel) passes through
// unchanged, since stereo width has no meaning for it.
func Process(channels [][]float64, settings Settings, sampleRate int) ([][]float64, error) {
	if err := settings.Validate(sampleRate); err != nil {
		return nil, err
	}

	if len(channels) < 2 {
		out := make([][]float64, len(channels))
		for i, ch := range channels {
			cp := make([]float64, len(ch))
			copy(cp, ch)
			out[i] = cp
		}

		return out, nil
	}

	mid, side := toMidSide(channels[0], channels[1])

	if settings.BassMonoFreq > 0 {
		folded, err := foldBassToMono(mid, side, settings.BassMonoFreq, sampleRate)
		if err != nil {
			return nil, err
		}

		side = folded
	}

	for i := range side {
		side[i] *= settings.Width

		if math.IsNaN(side[i]) || math.IsInf(side[i], 0) {
			return nil, &masterforgeerr.DspError{Stage: "stereo.Process", Index: i}
		}
	}

	l, r := fromMidSide(mid, side)

	return [][]float64{l, r}, nil
}

// foldBassToMono removes side-channel energy below freq by high-passing
// the side channel (letting only content above freq remain stereo) and
// feeding the removed low-frequency side energy into mid instead: low
// end stays centered while highs keep their width.
func foldBassToMono(mid, side []float64, freq float64, sampleRate int) ([]float64, error) {
	hpCoeffs := biquad.HighpassButterworth(freq, float64(sampleRate))

	highSide, err := filter.RunZeroPhase(hpCoeffs, side)
	if err != nil {
		return nil, &masterforgeerr.DspError{Stage: "stereo.foldBassToMono", Index: -1, Err: err}
	}

	for i := range mid {
		lowSide := side[i] - highSide[i]
		mid[i] += lowSide
	}

	return highSide, nil
}
