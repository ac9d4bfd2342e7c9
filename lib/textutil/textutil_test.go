package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "gameswon", NormalizeName("Games Won"))
	require.Equal(t, "gameswon", NormalizeName("  games\twon\n"))
	require.Equal(t, "eliminations-avgper10min", NormalizeName("Eliminations - Avg per 10 Min"))
	require.Equal(t, "", NormalizeName(" \n "))
}
