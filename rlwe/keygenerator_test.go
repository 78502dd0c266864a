package rlwe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/bfv/ring"
	"github.com/latticeforge/bfv/rlwe"
)

func newTestRing(t *testing.T) *ring.Ring {
	t.Helper()
	r, err := ring.NewRing(16, 97)
	require.NoError(t, err)
	return r
}

func newTestPRNG(t *testing.T) *ring.KeyedPRNG {
	t.Helper()
	prng, err := ring.NewKeyedPRNG([]byte("rlwe-test-fixed-seed-0000000000"))
	require.NoError(t, err)
	return prng
}

func TestGenSecretKeyIsTernary(t *testing.T) {
	r := newTestRing(t)
	kgen, err := rlwe.NewKeyGenerator(r, newTestPRNG(t), 3.2, 4)
	require.NoError(t, err)

	sk, err := kgen.GenSecretKey()
	require.NoError(t, err)

	for _, c := range sk.Value.Coeffs {
		require.Truef(t, c == 0 || c == 1 || c == r.Modulus-1, "non-ternary coefficient %d", c)
	}
}

func TestGenPublicKeyIsConsistentWithSecretKey(t *testing.T) {
	r := newTestRing(t)
	kgen, err := rlwe.NewKeyGenerator(r, newTestPRNG(t), 3.2, 4)
	require.NoError(t, err)

	sk, err := kgen.GenSecretKey()
	require.NoError(t, err)
	pk, err := kgen.GenPublicKey(sk)
	require.NoError(t, err)

	// b + a*s should be a small-noise polynomial (close to zero in the
	// centered representation), since b = -(a*s+e).
	as := r.NewPoly()
	r.Mul(pk.Value[1], sk.Value, as)
	noisy := r.NewPoly()
	r.Add(pk.Value[0], as, noisy)

	centered := r.CenterMod(noisy)
	for _, c := range centered {
		require.Less(t, c, int64(50))
		require.Greater(t, c, int64(-50))
	}
}

func TestGenRelinearizationKeyHasExpectedDigitCount(t *testing.T) {
	r := newTestRing(t)
	kgen, err := rlwe.NewKeyGenerator(r, newTestPRNG(t), 3.2, 4)
	require.NoError(t, err)

	sk, err := kgen.GenSecretKey()
	require.NoError(t, err)
	rlk, err := kgen.GenRelinearizationKey(sk)
	require.NoError(t, err)

	require.Greater(t, rlk.Decomposition.Beta, 0)
	require.Len(t, rlk.Value, rlk.Decomposition.Beta)
	for _, pair := range rlk.Value {
		require.Len(t, pair[0].Coeffs, r.N)
		require.Len(t, pair[1].Coeffs, r.N)
	}
}

func TestGaloisKeySetRoundTrip(t *testing.T) {
	r := newTestRing(t)
	kgen, err := rlwe.NewKeyGenerator(r, newTestPRNG(t), 3.2, 4)
	require.NoError(t, err)

	sk, err := kgen.GenSecretKey()
	require.NoError(t, err)

	set, err := kgen.GenGaloisKeys(sk, []int{1, 2})
	require.NoError(t, err)

	galEl := ring.GaloisElement(1, r.N)
	_, ok := set.Get(galEl)
	require.True(t, ok)

	_, ok = set.Get(ring.GaloisElement(3, r.N))
	require.False(t, ok)
}
