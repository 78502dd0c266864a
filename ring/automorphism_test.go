package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGaloisElementIsOddAndInRange(t *testing.T) {
	N := 16
	for rot := 0; rot < N; rot++ {
		k := GaloisElement(rot, N)
		require.Less(t, k, uint64(2*N))
		require.EqualValues(t, 1, k%2)
	}
}

func TestGaloisElementIdentityForZeroRotation(t *testing.T) {
	require.EqualValues(t, 1, GaloisElement(0, 16))
}

func TestAutomorphismIdentityIsNoOpAndNontrivialPermutes(t *testing.T) {
	r, err := NewRing(testNTTPrimeN, testNTTPrime)
	require.NoError(t, err)

	p := r.NewPoly()
	for i := range p.Coeffs {
		p.Coeffs[i] = uint64(i + 1)
	}

	galEl := GaloisElement(1, r.N)
	out := r.NewPoly()
	r.Automorphism(p, galEl, out)

	// Applying the identity automorphism (galEl=1) must be a no-op.
	identity := r.NewPoly()
	r.Automorphism(p, 1, identity)
	require.True(t, p.Equal(identity))

	// A nontrivial automorphism must permute (with sign) every coefficient,
	// so it cannot equal the identity transform.
	require.False(t, p.Equal(out))
}
