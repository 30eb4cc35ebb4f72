package saturation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessZeroMixIsIdentity(t *testing.T) {
	settings := Settings{Kind: Tube, Drive: 2, Mix: 0}
	in := []float64{0.1, -0.4, 0.9, -0.9}

	out, err := Process(in, settings)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProcessOddSymmetryNoDcOffset(t *testing.T) {
	for _, kind := range []Kind{Tube, Tape, SoftClip} {
		settings := Settings{Kind: kind, Drive: 1.5, Mix: 1}

		pos, err := Process([]float64{0.3}, settings)
		require.NoError(t, err)

		neg, err := Process([]float64{-0.3}, settings)
		require.NoError(t, err)

		assert.InDelta(t, -pos[0], neg[0], 1e-9, "kind=%v should be an odd function", kind)
	}
}

func TestProcessRejectsInvalidSettings(t *testing.T) {
	_, err := Process([]float64{0.1}, Settings{Drive: -1})
	assert.Error(t, err)

	_, err = Process([]float64{0.1}, Settings{Mix: 2})
	assert.Error(t, err)
}

func TestShapeBoundedForLargeDrive(t *testing.T) {
	for _, kind := range []Kind{Tube, Tape, SoftClip} {
		v := shape(kind, 1000)
		assert.True(t, math.Abs(v) <= 1.01, "kind=%v should saturate toward +-1, got %v", kind, v)
	}
}
