package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBRedMatchesBigInt(t *testing.T) {
	q := uint64(0x1FFFFFFFFFE00001) // a 61-bit NTT-friendly prime used elsewhere in this package's tests.
	params := BRedParams(q)

	cases := []struct{ x, y uint64 }{
		{0, 0},
		{1, 1},
		{q - 1, q - 1},
		{12345, 6789},
		{q - 1, 1},
		{q / 2, q/2 + 1},
	}
	for _, c := range cases {
		got := BRed(c.x, c.y, q, params)
		want := new(big.Int).Mod(
			new(big.Int).Mul(new(big.Int).SetUint64(c.x), new(big.Int).SetUint64(c.y)),
			new(big.Int).SetUint64(q),
		).Uint64()
		require.Equalf(t, want, got, "BRed(%d,%d,%d)", c.x, c.y, q)
	}
}

func TestMFormRoundTrip(t *testing.T) {
	q := uint64(0x1FFFFFFFFFE00001)
	bredParams := BRedParams(q)
	qInv := MRedParams(q)

	for _, a := range []uint64{0, 1, 42, q - 1, q / 3} {
		m := MForm(a, q, bredParams)
		back := InvMForm(m, q, qInv)
		require.Equal(t, a%q, back)
	}
}

func TestMRedMatchesBRed(t *testing.T) {
	q := uint64(0x1FFFFFFFFFE00001)
	bredParams := BRedParams(q)
	qInv := MRedParams(q)

	// MRed with one operand in Montgomery form and the other plain returns
	// the plain product directly (the R factor cancels against the
	// Montgomery operand's own R), the pattern ntt.go's butterfly relies on
	// when combining a plain coefficient with a Montgomery-form twiddle.
	for _, c := range []struct{ x, y uint64 }{{3, 5}, {q - 1, 2}, {123456789, 987654321}} {
		xm := MForm(c.x, q, bredParams)
		got := MRed(xm, c.y, q, qInv)
		want := BRed(c.x, c.y, q, bredParams)
		require.Equal(t, want, got)
	}
}

// MRed(2, MForm(3)) mod 13 must equal 2*3 mod 13 = 6: a concrete check that
// MRedParams returns the positive q^-1 mod 2^64 the subtraction-form
// MRed/MRedConstant require, not its negation.
func TestMRedSmallModulusMatchesPlainProduct(t *testing.T) {
	q := uint64(13)
	bredParams := BRedParams(q)
	qInv := MRedParams(q)

	three := MForm(3, q, bredParams)
	got := MRed(2, three, q, qInv)
	require.EqualValues(t, 6, got)
}

func TestCenterMod(t *testing.T) {
	q := uint64(11)
	require.EqualValues(t, 0, CenterMod(0, q))
	require.EqualValues(t, 5, CenterMod(5, q))
	require.EqualValues(t, -5, CenterMod(6, q))
	require.EqualValues(t, -1, CenterMod(10, q))
}

func TestAddSubNegMod(t *testing.T) {
	q := uint64(17)
	require.EqualValues(t, 5, AddMod(10, 12, q)) // 22 mod 17
	require.EqualValues(t, 15, SubMod(1, 3, q))  // -2 mod 17
	require.EqualValues(t, 14, NegMod(3, q))
	require.EqualValues(t, 0, NegMod(0, q))
}

func TestModExp(t *testing.T) {
	q := uint64(1000000007)
	require.EqualValues(t, 1, ModExp(5, 0, q))
	require.EqualValues(t, 125, ModExp(5, 3, q))
}
