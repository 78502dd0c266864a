package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPRNG(t *testing.T) *KeyedPRNG {
	t.Helper()
	prng, err := NewKeyedPRNG([]byte("deterministic-test-seed-000000!"))
	require.NoError(t, err)
	return prng
}

func TestUniformSamplerStaysInRange(t *testing.T) {
	prng := newTestPRNG(t)
	q := uint64(testNTTPrime)
	s := NewUniformSampler(prng, q)

	p, err := s.ReadNew(64)
	require.NoError(t, err)
	for _, c := range p.Coeffs {
		require.Less(t, c, q)
	}
}

func TestTernarySamplerOnlyProducesTernaryValues(t *testing.T) {
	prng := newTestPRNG(t)
	q := uint64(testNTTPrime)
	s := NewTernarySampler(prng, q)

	p, err := s.ReadNew(256)
	require.NoError(t, err)
	for _, c := range p.Coeffs {
		require.Truef(t, c == 0 || c == 1 || c == q-1, "unexpected ternary value %d", c)
	}
}

func TestGaussianSamplerCDTIsMonotonic(t *testing.T) {
	prng := newTestPRNG(t)
	s := NewGaussianSampler(prng, 1<<20, 3.2)
	for i := 1; i < len(s.cdt); i++ {
		require.GreaterOrEqual(t, s.cdt[i], s.cdt[i-1])
	}
	require.InDelta(t, 1.0, s.cdt[len(s.cdt)-1], 1e-9)
}

func TestGaussianSamplerStaysWithinModulus(t *testing.T) {
	prng := newTestPRNG(t)
	q := uint64(1 << 20)
	s := NewGaussianSampler(prng, q, 3.2)

	p, err := s.ReadNew(64)
	require.NoError(t, err)
	for _, c := range p.Coeffs {
		require.Less(t, c, q)
	}
}
