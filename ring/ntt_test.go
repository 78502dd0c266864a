package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testNTTPrime is a small NTT-friendly prime for N=16: q = 97, N = 16,
// 2N = 32, and 97 mod 32 == 1.
const (
	testNTTPrimeN = 16
	testNTTPrime  = 97
)

func TestNewTableRejectsNonNTTFriendly(t *testing.T) {
	_, err := NewTable(16, 100) // 100 is not prime.
	require.Error(t, err)

	_, err = NewTable(16, 101) // prime but 101 mod 32 == 5, not 1.
	require.Error(t, err)
}

func TestNTTRoundTrip(t *testing.T) {
	table, err := NewTable(testNTTPrimeN, testNTTPrime)
	require.NoError(t, err)

	original := make([]uint64, testNTTPrimeN)
	for i := range original {
		original[i] = uint64(i) % testNTTPrime
	}

	coeffs := append([]uint64(nil), original...)
	table.NTT(coeffs)
	table.InvNTT(coeffs)

	require.Equal(t, original, coeffs)
}

func TestNTTMultiplicationMatchesSchoolbook(t *testing.T) {
	table, err := NewTable(testNTTPrimeN, testNTTPrime)
	require.NoError(t, err)
	bredParams := BRedParams(testNTTPrime)

	a := []uint64{1, 2, 3, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	b := []uint64{5, 6, 7, 8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	want := mulSchoolbook(a, b, testNTTPrime, bredParams)

	ac := append([]uint64(nil), a...)
	bc := append([]uint64(nil), b...)
	table.NTT(ac)
	table.NTT(bc)
	for i := range ac {
		ac[i] = BRed(ac[i], bc[i], testNTTPrime, bredParams)
	}
	table.InvNTT(ac)

	require.Equal(t, want, ac)
}

func TestNewRingFallsBackToSchoolbookForNonNTTFriendlyModulus(t *testing.T) {
	r, err := NewRing(16, 100)
	require.NoError(t, err)
	require.False(t, r.HasNTT())

	a := r.NewPoly()
	b := r.NewPoly()
	a.Coeffs[0], a.Coeffs[1] = 3, 1
	b.Coeffs[0] = 2

	out := r.NewPoly()
	r.Mul(a, b, out)
	require.EqualValues(t, 6, out.Coeffs[0])
	require.EqualValues(t, 2, out.Coeffs[1])
}

func TestRingMulMatchesNTTPath(t *testing.T) {
	r, err := NewRing(testNTTPrimeN, testNTTPrime)
	require.NoError(t, err)
	require.True(t, r.HasNTT())

	a := r.NewPoly()
	b := r.NewPoly()
	a.Coeffs[0], a.Coeffs[1] = 3, 1
	b.Coeffs[0] = 2

	out := r.NewPoly()
	r.Mul(a, b, out)
	require.EqualValues(t, 6, out.Coeffs[0])
	require.EqualValues(t, 2, out.Coeffs[1])
}
