// Package mastering implements a mastering engine façade: a fixed
// chain of EQ, saturation, compression, stereo shaping, and limiting,
// applied to a planar buffer of channels. The order is fixed and never
// configurable; any subsection absent from Settings is bypassed as an
// identity operation.
package mastering

import (
	"github.com/sonora-labs/masterforge/dynamics"
	"github.com/sonora-labs/masterforge/eq"
	"github.com/sonora-labs/masterforge/masterforgeerr"
	"github.com/sonora-labs/masterforge/saturation"
	"github.com/sonora-labs/masterforge/stereo"
)

// Settings is an optional subset of the mastering chain's stages; a nil
// pointer means that stage is bypassed.
type Settings struct {
	Eq          *eq.Settings
	Saturation  *saturation.Settings
	Compression *dynamics.CompressionSettings
	Stereo      *stereo.Settings
	Limiting    *dynamics.LimiterSettings
}

// Engine is a value type holding only the sample rate it was built
// for. It carries no mutable state between calls.
type Engine struct {
	SampleRate int
}

// NewEngine constructs an Engine for the given sample rate.
func NewEngine(sampleRate int) Engine {
	return Engine{SampleRate: sampleRate}
}

// Process runs channels through the fixed EQ -> Saturation ->
// Compression -> Stereo -> Limiting chain. It never alters sample rate
// or channel count itself; callers that need a mono -> stereo upmix
// perform it before calling Process.
func (e Engine) Process(channels [][]float64, settings Settings) ([][]float64, error) {
	if e.SampleRate <= 0 {
		return nil, masterforgeerr.Unsupported("mastering: sample rate must be positive")
	}

	current := copyChannels(channels)

	if settings.Eq != nil {
		if err := settings.Eq.Validate(e.SampleRate); err != nil {
			return nil, err
		}

		processed, err := eq.Process(current, *settings.Eq, e.SampleRate)
		if err != nil {
			return nil, stageError(err, "eq")
		}

		current = processed
	}

	if settings.Saturation != nil {
		processed, err := saturation.ProcessChannels(current, *settings.Saturation)
		if err != nil {
			return nil, stageError(err, "saturation")
		}

		current = processed
	}

	if settings.Compression != nil {
		processed, err := dynamics.CompressChannels(current, *settings.Compression, e.SampleRate)
		if err != nil {
			return nil, stageError(err, "compression")
		}

		current = processed
	}

	if settings.Stereo != nil {
		processed, err := stereo.Process(current, *settings.Stereo, e.SampleRate)
		if err != nil {
			return nil, stageError(err, "stereo")
		}

		current = processed
	}

	if settings.Limiting != nil {
		processed, err := dynamics.LimitChannels(current, *settings.Limiting, e.SampleRate)
		if err != nil {
			return nil, stageError(err, "limiting")
		}

		current = processed
	}

	return current, nil
}

func copyChannels(channels [][]float64) [][]float64 {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		cp := make([]float64, len(ch))
		copy(cp, ch)
		out[i] = cp
	}

	return out
}

// stageError tags a DspError with the failing stage name, preserving
// any more specific stage/index already set by the subpackage.
func stageError(err error, stage string) error {
	de, ok := err.(*masterforgeerr.DspError) //nolint:errorlint // constructed directly by our own subpackages
	if !ok {
		return err
	}

	if de.Stage == "" {
		de.Stage = stage
	}

	return de
}
