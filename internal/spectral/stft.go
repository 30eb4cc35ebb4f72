// Package spectral implements the windowed STFT pipeline shared by the
// feature extractor, masking analyzer, and key/tempo estimators:
// framing, FFT via gonum/dsp/fourier, mel filterbank energies, DCT-II
// (MFCC), and chroma binning.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/sonora-labs/masterforge/internal/dsp"
)

// Frames holds the result of an STFT: one magnitude spectrum per frame,
// each of length nFFT/2+1, plus the bin resolution needed to map a bin
// index back to Hz.
type Frames struct {
	Magnitudes [][]float64 // [frame][bin]
	BinHz      float64
	SampleRate int
	NFFT       int
	Hop        int
}

// STFT computes the magnitude short-time Fourier transform of mono
// samples using a Hann-windowed, zero-padding-free frame of size nFFT
// advanced by hop samples. Trailing samples that don't fill a full
// frame are dropped, matching a fixed-hop analysis window.
func STFT(samples []float64, sampleRate, nFFT, hop int) Frames {
	if nFFT <= 0 {
		nFFT = 1024
	}

	if hop <= 0 {
		hop = nFFT / 2
	}

	window := dsp.HannWindow(nFFT)
	fft := fourier.NewFFT(nFFT)
	binCount := nFFT/2 + 1

	var mags [][]float64

	frameBuf := make([]float64, nFFT)

	for pos := 0; pos+nFFT <= len(samples); pos += hop {
		copy(frameBuf, samples[pos:pos+nFFT])
		dsp.ApplyWindow(frameBuf, frameBuf, window)

		coeffs := fft.Coefficients(nil, frameBuf)

		mag := make([]float64, binCount)
		for i, c := range coeffs {
			mag[i] = math.Hypot(real(c), imag(c))
		}

		mags = append(mags, mag)
	}

	return Frames{
		Magnitudes: mags,
		BinHz:      float64(sampleRate) / float64(nFFT),
		SampleRate: sampleRate,
		NFFT:       nFFT,
		Hop:        hop,
	}
}

// MeanSpectrum averages the magnitude spectrum across every frame,
// returning a single spectrum of length nFFT/2+1. Returns nil for zero
// frames.
func (f Frames) MeanSpectrum() []float64 {
	if len(f.Magnitudes) == 0 {
		return nil
	}

	binCount := len(f.Magnitudes[0])
	mean := make([]float64, binCount)

	for _, frame := range f.Magnitudes {
		for i, v := range frame {
			mean[i] += v
		}
	}

	inv := 1 / float64(len(f.Magnitudes))
	for i := range mean {
		mean[i] *= inv
	}

	return mean
}

// BinToHz converts a bin index to its center frequency in Hz.
func (f Frames) BinToHz(bin int) float64 {
	return float64(bin) * f.BinHz
}
