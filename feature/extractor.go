package feature

import (
	"github.com/sonora-labs/masterforge/internal/dsp"
	"github.com/sonora-labs/masterforge/masterforgeerr"
)

const (
	// TargetSampleRate is the fixed rate all feature extraction is
	// performed at.
	TargetSampleRate = 44100
	// AnalysisWindowSeconds bounds how much audio is analyzed, giving
	// the extractor a deterministic, bounded latency regardless of
	// track length.
	AnalysisWindowSeconds = 30
)

// Result bundles every sub-feature extracted from one analysis window.
type Result struct {
	Loudness  LoudnessMetrics
	Spectral  SpectralFeatures
	Frequency FrequencyAnalysis
	Key       KeyEstimate
	Tempo     TempoEstimate
}

// Extract downmixes channels to mono, resamples to TargetSampleRate if
// necessary, truncates to the first AnalysisWindowSeconds, and runs
// every sub-extractor over the appropriate windowed subslice: tempo on
// the first 10 s, key on the first 5 s, spectral features and frequency
// bands on the first 10 s, loudness over the full analysis window.
func Extract(channels [][]float64, sampleRate int) (Result, error) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return Result{}, masterforgeerr.InvalidAudio("empty buffer")
	}

	mono := dsp.Downmix(channels)
	if sampleRate != TargetSampleRate {
		mono = dsp.Resample(mono, sampleRate, TargetSampleRate)
	}

	windowLen := AnalysisWindowSeconds * TargetSampleRate
	if len(mono) > windowLen {
		mono = mono[:windowLen]
	}

	if !dsp.AllFinite(mono) {
		return Result{}, masterforgeerr.InvalidAudio("non-finite sample in analysis window")
	}

	return Result{
		Loudness:  Loudness(mono, TargetSampleRate),
		Spectral:  Spectral(mono, TargetSampleRate),
		Frequency: Frequency(mono, TargetSampleRate),
		Key:       Key(mono, TargetSampleRate),
		Tempo:     Tempo(mono, TargetSampleRate),
	}, nil
}
