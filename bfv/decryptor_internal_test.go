package bfv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoundedRescaleDetectsExactTie exercises the internal rounding-tie
// detection DecryptNew relies on to return ErrDecryptionFailed instead of
// an ambiguous result (spec.md §7).
func TestRoundedRescaleDetectsExactTie(t *testing.T) {
	_, ok := roundedRescale(0, 4, 8) // t*v=0, not a tie.
	require.True(t, ok)

	// t=1, v=4, q=8: t*v mod q == 4 == q/2, an exact tie.
	_, ok = roundedRescale(4, 1, 8)
	require.False(t, ok)
}

func TestRoundedRescaleMatchesExpectedValue(t *testing.T) {
	// t=65537, q=2^54-ish values aren't needed here: a small sanity case
	// round(t*v/q) mod t for v=0 is always 0.
	got, ok := roundedRescale(0, 65537, 1<<20)
	require.True(t, ok)
	require.EqualValues(t, 0, got)
}
