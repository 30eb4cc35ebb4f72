package dynamics

import (
	"fmt"
	"math"

	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/masterforgeerr"
)

// LimiterSettings configures the brick-wall limiter.
type LimiterSettings struct {
	CeilingDb  float64 // <= 0, the output peak ceiling
	ReleaseSec float64 // > 0
}

// Validate checks LimiterSettings for a non-positive ceiling and a
// positive release time.
func (s LimiterSettings) Validate() error {
	if s.CeilingDb > 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("limiter: ceiling must be <= 0, got %.2f", s.CeilingDb))
	}

	if s.ReleaseSec <= 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("limiter: release must be > 0, got %.4f", s.ReleaseSec))
	}

	return nil
}

// linearReleaseCoeff computes the limiter's release coefficient with the
// linear formula 1 - 1/(releaseSec*sampleRate), distinct from the
// compressor's exponential envelope coefficient.
func linearReleaseCoeff(releaseSec float64, sampleRate int) float64 {
	if releaseSec <= 0 {
		return 1
	}

	return dsp.Clamp(1-1/(releaseSec*float64(sampleRate)), 0, 1)
}

// Limit applies a brick-wall peak limiter to a single channel: attack is
// instantaneous (gain reduction engages the instant a sample would
// exceed the ceiling, with no lookahead), release relaxes back toward
// unity through a one-pole smoother that keeps a fraction
// 1 - 1/(release*sampleRate) of the current gain each sample. The
// output satisfies |y_i| <= ceiling_lin + 1e-9 for every sample.
func Limit(samples []float64, settings LimiterSettings, sampleRate int) ([]float64, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	ceilingLin := dsp.DbToLinear(settings.CeilingDb)
	releaseCoeff := linearReleaseCoeff(settings.ReleaseSec, sampleRate)

	out := make([]float64, len(samples))

	gain := 1.0

	for i, x := range samples {
		absX := math.Abs(x)

		var instantGain float64
		if absX > dsp.Epsilon {
			instantGain = math.Min(1, ceilingLin/absX)
		} else {
			instantGain = 1
		}

		if instantGain < gain {
			// Attack: engage reduction immediately, no smoothing.
			gain = instantGain
		} else {
			// Release: relax smoothly back toward unity (or the new,
			// still-binding instant gain if it's less than unity).
			gain = releaseCoeff*gain + (1-releaseCoeff)*instantGain
		}

		out[i] = x * gain

		if bound := ceilingLin + 1e-9; math.Abs(out[i]) > bound {
			out[i] = math.Copysign(ceilingLin, out[i])
		}

		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, &masterforgeerr.DspError{Stage: "dynamics.Limit", Index: i}
		}
	}

	return out, nil
}

// LimitChannels applies Limit independently to every channel, each with
// its own gain-reduction state.
func LimitChannels(channels [][]float64, settings LimiterSettings, sampleRate int) ([][]float64, error) {
	out := make([][]float64, len(channels))

	for i, ch := range channels {
		limited, err := Limit(ch, settings, sampleRate)
		if err != nil {
			return nil, err
		}

		out[i] = limited
	}

	return out, nil
}
