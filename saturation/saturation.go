// Package saturation implements the harmonic-saturation stage: tube,
// tape, and soft-clip nonlinearities blended with the dry signal by a
// wet/dry mix. The shapes follow standard analog-modeling waveshaper
// formulas; none of them carry filter state, so saturation works
// sample-by-sample with no history.
package saturation

import (
	"fmt"
	"math"

	"github.com/sonora-labs/masterforge/masterforgeerr"
)

// Kind names a saturation nonlinearity.
type Kind int

const (
	Tube Kind = iota
	Tape
	SoftClip
)

// Settings configures the saturation stage.
type Settings struct {
	Kind  Kind
	Drive float64 // >= 0
	Mix   float64 // [0, 1], wet/dry blend
}

// Validate checks Settings for a non-negative drive, a mix in [0, 1],
// and a known kind.
func (s Settings) Validate() error {
	if s.Drive < 0 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("saturation: drive must be >= 0, got %.2f", s.Drive))
	}

	if s.Mix < 0 || s.Mix > 1 {
		return masterforgeerr.InvalidSettings(fmt.Sprintf("saturation: mix must be in [0, 1], got %.2f", s.Mix))
	}

	switch s.Kind {
	case Tube, Tape, SoftClip:
	default:
		return masterforgeerr.InvalidSettings(fmt.Sprintf("saturation: unknown kind %d", s.Kind))
	}

	return nil
}

// shape applies the chosen nonlinearity to a drive-scaled sample dx.
// All three are odd functions, so no DC offset is introduced.
func shape(kind Kind, dx float64) float64 {
	switch kind {
	case Tube:
		return math.Tanh(0.7*dx) * 0.95
	case Tape:
		return dx / (1 + math.Abs(dx))
	case SoftClip:
		return math.Copysign(1-math.Exp(-math.Abs(dx)), dx)
	default:
		return dx
	}
}

// Process applies the configured saturation to a single channel: scale
// by Drive, shape, then blend wet/dry by Mix.
func Process(samples []float64, settings Settings) ([]float64, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, len(samples))

	for i, x := range samples {
		wet := shape(settings.Kind, settings.Drive*x)
		out[i] = x*(1-settings.Mix) + wet*settings.Mix

		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, &masterforgeerr.DspError{Stage: "saturation.Process", Index: i}
		}
	}

	return out, nil
}

// ProcessChannels applies Process independently to every channel.
func ProcessChannels(channels [][]float64, settings Settings) ([][]float64, error) {
	out := make([][]float64, len(channels))

	for i, ch := range channels {
		processed, err := Process(ch, settings)
		if err != nil {
			return nil, err
		}

		out[i] = processed
	}

	return out, nil
}
