package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetAliasesResolveToExpectedFamily(t *testing.T) {
	rock := Preset("rock")
	metal := Preset("metal")
	assert.Equal(t, rock, metal)

	electronic := Preset("techno")
	require.NotNil(t, electronic.Eq)
	assert.Equal(t, 1.4, electronic.Stereo.Width)

	jazz := Preset("blues")
	require.NotNil(t, jazz.Compression)
	assert.Equal(t, 2.0, jazz.Compression.Ratio)
}

func TestPresetUnknownNameFallsBackToRock(t *testing.T) {
	unknown := Preset("polka")
	rock := Preset("rock")

	assert.Equal(t, rock, unknown)
}

func TestPresetIsCaseAndWhitespaceInsensitive(t *testing.T) {
	a := Preset("  Rock  ")
	b := Preset("rock")

	assert.Equal(t, b, a)
}

func TestEveryPresetHasLimitingConfigured(t *testing.T) {
	for _, name := range []string{"rock", "electronic", "jazz"} {
		settings := Preset(name)
		require.NotNil(t, settings.Limiting)
		assert.Less(t, settings.Limiting.CeilingDb, 0.0)
	}
}
