// Package masterforge is the audio analysis and mastering DSP core: it
// extracts a battery of perceptual and spectral features from a track
// and applies a configurable mastering chain to produce a
// release-ready stereo master. The package is a pure library — no
// network surface, no persistence, no CLI.
package masterforge

import (
	"github.com/sonora-labs/masterforge/feature"
	"github.com/sonora-labs/masterforge/genre"
	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/masking"
	"github.com/sonora-labs/masterforge/mastering"
	"github.com/sonora-labs/masterforge/masterforgeerr"
	"github.com/sonora-labs/masterforge/stereoanalysis"
)

// AudioBuffer is planar (channel-major) float PCM at a given sample
// rate. Mono is one channel; stereo is two, left then right.
type AudioBuffer struct {
	Channels   [][]float64
	SampleRate int
}

// Validate checks that the buffer has 1 or 2 channels, all of equal
// length, all finite, with a positive sample rate.
func (a AudioBuffer) Validate() error {
	if a.SampleRate <= 0 {
		return masterforgeerr.Unsupported("audio: sample rate must be positive")
	}

	if len(a.Channels) == 0 || len(a.Channels) > 2 {
		return masterforgeerr.Unsupported("audio: channel count must be 1 or 2")
	}

	n := len(a.Channels[0])
	if n == 0 {
		return masterforgeerr.InvalidAudio("empty buffer")
	}

	for _, ch := range a.Channels {
		if len(ch) != n {
			return masterforgeerr.InvalidAudio("channels must be equal length")
		}

		if !dsp.AllFinite(ch) {
			return masterforgeerr.InvalidAudio("non-finite sample")
		}
	}

	return nil
}

// MasteringSettings is an optional subset of the mastering chain's
// stages; a nil stage is bypassed rather than applied with defaults.
type MasteringSettings = mastering.Settings

// Defaults records which AnalysisResult fields were substituted with a
// documented default because the underlying sub-feature could not be
// reliably detected.
type Defaults struct {
	TempoDefaulted     bool
	KeyDefaulted       bool
	GenreLowConfidence bool
}

// AnalysisResult is the full analysis output. It is populated
// atomically: on any error, no AnalysisResult is returned.
type AnalysisResult struct {
	DurationSeconds float64
	SampleRate      int
	Channels        int
	Tempo           float64
	Key             string
	Loudness        feature.LoudnessMetrics
	Spectral        feature.SpectralFeatures
	Frequency       feature.FrequencyAnalysis
	Masking         masking.Analysis
	Stereo          stereoanalysis.Analysis
	Genre           genre.Prediction
	// SuggestedGainDb is the delta between the predicted genre's target
	// integrated loudness and the track's measured LUFS; zero for a
	// genre label with no associated target.
	SuggestedGainDb float64
	Defaults        Defaults
}

// ProgressSink receives monotonically non-decreasing progress updates
// during Analyze. Implementations must not block the calling
// goroutine.
type ProgressSink interface {
	Update(step string, percent uint8)
}

// CancellationToken is checked between Analyze's major phases.
type CancellationToken interface {
	Cancelled() bool
}

// AiSuggester is an external suggestion source consulted by embedders
// after analysis; it is not invoked by this package, but its shape is
// defined here so callers can implement it against AnalysisResult and
// MasteringSettings without an extra dependency.
type AiSuggester interface {
	Suggest(result AnalysisResult) (MasteringSettings, error)
}

type phase struct {
	name string
	fn   func() error
}

// analysisWindowFor downmixes channels to mono, resamples to
// feature.TargetSampleRate if necessary, and truncates to the first
// feature.AnalysisWindowSeconds, giving every sub-extractor an
// identically prepared window to run over.
func analysisWindowFor(channels [][]float64, sampleRate int) ([]float64, error) {
	mono := dsp.Downmix(channels)
	if sampleRate != feature.TargetSampleRate {
		mono = dsp.Resample(mono, sampleRate, feature.TargetSampleRate)
	}

	if max := feature.AnalysisWindowSeconds * feature.TargetSampleRate; len(mono) > max {
		mono = mono[:max]
	}

	if !dsp.AllFinite(mono) {
		return nil, masterforgeerr.InvalidAudio("non-finite sample in analysis window")
	}

	return mono, nil
}

// Analyze runs the full feature-extraction pipeline over audio:
// loudness/spectral/frequency extraction, masking analysis, stereo-field
// analysis, and genre classification. progress and cancel are optional;
// pass nil to skip them.
func Analyze(audio AudioBuffer, progress ProgressSink, cancel CancellationToken) (*AnalysisResult, error) {
	if err := audio.Validate(); err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		SampleRate:      audio.SampleRate,
		Channels:        len(audio.Channels),
		DurationSeconds: float64(len(audio.Channels[0])) / float64(audio.SampleRate),
	}

	var extraction feature.Result

	var maskingResult masking.Analysis

	var stereoResult stereoanalysis.Analysis

	var analysisWindow []float64

	phases := []phase{
		{"load", func() error { return nil }},
		{"tempo", func() error {
			window, err := analysisWindowFor(audio.Channels, audio.SampleRate)
			if err != nil {
				return err
			}

			analysisWindow = window
			extraction.Tempo = feature.Tempo(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"key", func() error {
			extraction.Key = feature.Key(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"loudness", func() error {
			extraction.Loudness = feature.Loudness(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"spectral", func() error {
			extraction.Spectral = feature.Spectral(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"frequency", func() error {
			extraction.Frequency = feature.Frequency(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"masking", func() error {
			maskingResult = masking.Analyze(analysisWindow, feature.TargetSampleRate)

			return nil
		}},
		{"stereo", func() error {
			stereoResult = stereoanalysis.Analyze(audio.Channels, audio.SampleRate)

			return nil
		}},
		{"genre", func() error { return nil }},
	}

	total := len(phases)

	for i, p := range phases {
		if cancel != nil && cancel.Cancelled() {
			return nil, masterforgeerr.ErrCancelled
		}

		if err := p.fn(); err != nil {
			return nil, err
		}

		if progress != nil {
			percent := uint8((i + 1) * 100 / total) //nolint:gosec // i+1 <= total, bounded well under 256
			progress.Update(p.name, percent)
		}
	}

	result.Tempo = extraction.Tempo.Bpm
	result.Key = extraction.Key.Key
	result.Loudness = extraction.Loudness
	result.Spectral = extraction.Spectral
	result.Frequency = extraction.Frequency
	result.Masking = maskingResult
	result.Stereo = stereoResult

	genrePrediction := genre.Classify(genre.Features{
		CentroidMean: extraction.Spectral.SpectralCentroidMean,
		ZcrMean:      extraction.Spectral.ZcrMean,
		TempoBpm:     extraction.Tempo.Bpm,
		RolloffMean:  extraction.Spectral.SpectralRolloffMean,
		Mfcc0Mean:    extraction.Spectral.MfccMean[0],
		Mfcc1Mean:    extraction.Spectral.MfccMean[1],
		Mfcc2Mean:    extraction.Spectral.MfccMean[2],
		Mfcc1Std:     extraction.Spectral.MfccStd[1],
	})
	result.Genre = genrePrediction

	if target, ok := genre.TargetLufs[genrePrediction.Label]; ok {
		result.SuggestedGainDb = target - result.Loudness.LufsIntegrated
	}

	result.Defaults = Defaults{
		TempoDefaulted:     extraction.Tempo.Defaulted,
		KeyDefaulted:       extraction.Key.Defaulted,
		GenreLowConfidence: genrePrediction.Confidence <= 0.5,
	}

	return result, nil
}

// Master runs audio through the fixed mastering chain configured by
// settings. The engine always emits planar stereo at the input sample
// rate, upmixing a mono input by duplicating its channel.
func Master(audio AudioBuffer, settings MasteringSettings) (*AudioBuffer, error) {
	if err := audio.Validate(); err != nil {
		return nil, err
	}

	engine := mastering.NewEngine(audio.SampleRate)

	channels := audio.Channels
	if len(channels) == 1 {
		channels = [][]float64{channels[0], channels[0]}
	}

	out, err := engine.Process(channels, settings)
	if err != nil {
		return nil, err
	}

	return &AudioBuffer{Channels: out, SampleRate: audio.SampleRate}, nil
}

// GenrePreset returns the named genre-preset MasteringSettings.
// Unknown names fall back to "rock".
func GenrePreset(name string) MasteringSettings {
	return genre.Preset(name)
}
