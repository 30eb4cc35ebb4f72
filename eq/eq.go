// Package eq defines the parametric EQ data model (EqBand, EqSettings)
// and applies an ordered chain of bands to a stereo buffer via
// zero-phase biquad filtering.
package eq

import (
	"fmt"

	"github.com/sonora-labs/masterforge/biquad"
	"github.com/sonora-labs/masterforge/filter"
	"github.com/sonora-labs/masterforge/masterforgeerr"
)

// MaxBands is the ceiling on Settings.Bands length.
const MaxBands = 16

// Shape names the allowed EqBand shapes.
type Shape = biquad.Shape

const (
	Peak      = biquad.Peak
	LowShelf  = biquad.LowShelf
	HighShelf = biquad.HighShelf
	Lowpass   = biquad.Lowpass
	Highpass  = biquad.Highpass
)

// Band describes one parametric EQ band.
type Band struct {
	FreqHz float64 // center/cutoff frequency, 0 < f < SR/2
	GainDb float64 // gain in dB, [-24, 24]
	Q      float64 // quality factor, (0, 10]
	Shape  Shape
}

// Settings is an ordered list of Bands applied in order.
type Settings struct {
	Bands []Band
}

// Validate checks Settings for band count, gain range, Q range, and
// positive frequency below Nyquist.
func (s Settings) Validate(sampleRate int) error {
	if len(s.Bands) > MaxBands {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("eq: at most %d bands, got %d", MaxBands, len(s.Bands)))
	}

	nyquist := float64(sampleRate) / 2

	for i, b := range s.Bands {
		if b.FreqHz <= 0 || b.FreqHz >= nyquist {
			return masterforgeerr.InvalidSettings(fmt.Sprintf("eq band %d: freq %.2f out of range (0, %.2f)", i, b.FreqHz, nyquist))
		}

		if b.GainDb < -24 || b.GainDb > 24 {
			return masterforgeerr.InvalidSettings(fmt.Sprintf("eq band %d: gain %.2f out of range [-24, 24]", i, b.GainDb))
		}

		if b.Q <= 0 || b.Q > 10 {
			return masterforgeerr.InvalidSettings(fmt.Sprintf("eq band %d: q %.2f out of range (0, 10]", i, b.Q))
		}
	}

	return nil
}

// Process applies every band in order to channels (planar, one slice per
// channel) using zero-phase filtering, skipping no-op peak/shelf bands.
// Channels are processed independently; it returns new slices and never
// mutates the input.
func Process(channels [][]float64, settings Settings, sampleRate int) ([][]float64, error) {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		cp := make([]float64, len(ch))
		copy(cp, ch)
		out[i] = cp
	}

	for bi, band := range settings.Bands {
		if isPeakLikeNoOp(band) {
			continue
		}

		coeffs := biquad.Design(band.Shape, band.FreqHz, band.GainDb, band.Q, float64(sampleRate))

		filtered, err := filter.RunZeroPhaseChannels(coeffs, out)
		if err != nil {
			var dspErr *masterforgeerr.DspError
			if ok := asDspError(err, &dspErr); ok {
				dspErr.Stage = fmt.Sprintf("eq.band[%d]", bi)
			}

			return nil, err
		}

		out = filtered
	}

	return out, nil
}

func isPeakLikeNoOp(b Band) bool {
	switch b.Shape {
	case Peak, LowShelf, HighShelf:
		return biquad.PeakNoOp(b.GainDb)
	default:
		return false
	}
}

func asDspError(err error, target **masterforgeerr.DspError) bool {
	de, ok := err.(*masterforgeerr.DspError) //nolint:errorlint // we constructed it directly above
	if ok {
		*target = de
	}

	return ok
}
