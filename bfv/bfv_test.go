package bfv_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/bfv/bfv"
	"github.com/latticeforge/bfv/ring"
	"github.com/latticeforge/bfv/rlwe"
)

// testSuite bundles everything a scenario needs: parameters, keys, and the
// encode/encrypt/decrypt/evaluate pipeline. Grounded on the setup helpers
// bfv_test.go (lattigo) uses across its test functions.
type testSuite struct {
	params    bfv.Parameters
	sk        *rlwe.SecretKey
	pk        *rlwe.PublicKey
	rlk       *rlwe.RelinearizationKey
	galKeys   *rlwe.GaloisKeySet
	encoder   *bfv.Encoder
	encryptor *bfv.Encryptor
	decryptor *bfv.Decryptor
	evaluator *bfv.Evaluator
}

func newTestSuite(t *testing.T, logN, logQ int, plainModulus uint64) *testSuite {
	t.Helper()

	params, err := bfv.NewParametersFromLiteral(bfv.ParametersLiteral{
		LogN:  logN,
		LogQ:  logQ,
		T:     plainModulus,
		Sigma: 3.2,
	})
	require.NoError(t, err)

	prng, err := ring.NewKeyedPRNG([]byte("bfv-test-suite-fixed-seed-00000"))
	require.NoError(t, err)

	kgen, err := params.NewKeyGenerator(prng)
	require.NoError(t, err)

	sk, err := kgen.GenSecretKey()
	require.NoError(t, err)
	pk, err := kgen.GenPublicKey(sk)
	require.NoError(t, err)
	rlk, err := kgen.GenRelinearizationKey(sk)
	require.NoError(t, err)
	galKeys, err := kgen.GenGaloisKeys(sk, []int{1, 2, -1})
	require.NoError(t, err)

	return &testSuite{
		params:    params,
		sk:        sk,
		pk:        pk,
		rlk:       rlk,
		galKeys:   galKeys,
		encoder:   bfv.NewEncoder(params),
		encryptor: bfv.NewEncryptor(params, pk, prng),
		decryptor: bfv.NewDecryptor(params, sk),
		evaluator: bfv.NewEvaluator(params),
	}
}

func (s *testSuite) encrypt(t *testing.T, values []uint64) *bfv.Ciphertext {
	t.Helper()
	pt, err := s.encoder.EncodeNew(values)
	require.NoError(t, err)
	ct, err := s.encryptor.EncryptNew(pt)
	require.NoError(t, err)
	return ct
}

func (s *testSuite) decrypt(t *testing.T, ct *bfv.Ciphertext, n int) []uint64 {
	t.Helper()
	pt, err := s.decryptor.DecryptNew(ct)
	require.NoError(t, err)
	return s.encoder.Decode(pt)[:n]
}

// S1: a freshly encrypted ciphertext decrypts back to the original message.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	values := []uint64{0, 1, 42, 65536, 12345}
	ct := s.encrypt(t, values)

	got := s.decrypt(t, ct, len(values))
	require.Equal(t, values, got)
}

// S2: homomorphic addition matches componentwise modular addition.
func TestHomomorphicAdd(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	a := []uint64{1, 2, 3, 4}
	b := []uint64{10, 20, 30, 40}

	ctA := s.encrypt(t, a)
	ctB := s.encrypt(t, b)

	ctSum, err := s.evaluator.AddNew(ctA, ctB)
	require.NoError(t, err)

	got := s.decrypt(t, ctSum, len(a))
	for i := range a {
		require.EqualValues(t, (a[i]+b[i])%65537, got[i])
	}
}

// S3: homomorphic subtraction matches componentwise modular subtraction,
// including the wraparound case.
func TestHomomorphicSub(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	a := []uint64{5, 0, 100}
	b := []uint64{3, 1, 50}

	ctA := s.encrypt(t, a)
	ctB := s.encrypt(t, b)

	ctDiff, err := s.evaluator.SubNew(ctA, ctB)
	require.NoError(t, err)

	got := s.decrypt(t, ctDiff, len(a))
	require.EqualValues(t, 2, got[0])
	require.EqualValues(t, 65536, got[1]) // 0 - 1 mod 65537
	require.EqualValues(t, 50, got[2])
}

// S4: negation matches componentwise modular negation.
func TestHomomorphicNegate(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	a := []uint64{1, 0, 65536}
	ct := s.encrypt(t, a)
	neg := s.evaluator.NegateNew(ct)

	got := s.decrypt(t, neg, len(a))
	require.EqualValues(t, 65536, got[0])
	require.EqualValues(t, 0, got[1])
	require.EqualValues(t, 1, got[2])
}

// S5: multiply followed by relinearize recovers the exact product and
// leaves the ciphertext back at size 2 (spec.md §4.8's size state machine).
func TestHomomorphicMultiplyAndRelinearize(t *testing.T) {
	s := newTestSuite(t, 12, 58, 65537)

	a := []uint64{2, 3, 5, 7}
	b := []uint64{11, 13, 17, 19}

	ctA := s.encrypt(t, a)
	ctB := s.encrypt(t, b)

	ctProd, err := s.evaluator.MultiplyNew(ctA, ctB)
	require.NoError(t, err)
	require.Equal(t, 3, ctProd.Size())

	ctRelin, err := s.evaluator.RelinearizeNew(ctProd, s.rlk)
	require.NoError(t, err)
	require.Equal(t, 2, ctRelin.Size())

	// Coefficient encoding: the decrypted result is the negacyclic product
	// a(X)*b(X), so coefficient k is sum_{i+j=k} a[i]*b[j].
	got := s.decrypt(t, ctRelin, len(a))
	require.Equal(t, []uint64{22, 59, 128, 231}, got)
}

// S6: multiplying a ciphertext that is already size 3 is rejected, and
// relinearizing a size-2 ciphertext is rejected (spec.md §4.8, §7).
func TestCiphertextSizeStateMachineErrors(t *testing.T) {
	s := newTestSuite(t, 12, 58, 65537)

	ctA := s.encrypt(t, []uint64{1, 2})
	ctB := s.encrypt(t, []uint64{3, 4})

	ctProd, err := s.evaluator.MultiplyNew(ctA, ctB)
	require.NoError(t, err)

	_, err = s.evaluator.MultiplyNew(ctProd, ctA)
	require.ErrorIs(t, err, bfv.ErrCiphertextState)

	_, err = s.evaluator.RelinearizeNew(ctA, s.rlk)
	require.ErrorIs(t, err, bfv.ErrCiphertextState)
}

// Rotating a ciphertext by k and back by -k recovers the original message,
// exercising the Galois automorphism rotation path.
func TestRotateColumnsRoundTrip(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	values := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	ct := s.encrypt(t, values)

	rotated, err := s.evaluator.RotateColumnsNew(ct, 1, s.galKeys)
	require.NoError(t, err)
	back, err := s.evaluator.RotateColumnsNew(rotated, -1, s.galKeys)
	require.NoError(t, err)

	got := s.decrypt(t, back, len(values))
	require.Equal(t, values, got)
}

// RotateColumns without the requested key is a missing-key error, not a
// silent fallback.
func TestRotateColumnsMissingKey(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)
	ct := s.encrypt(t, []uint64{1, 2, 3})

	_, err := s.evaluator.RotateColumnsNew(ct, 3, s.galKeys)
	require.ErrorIs(t, err, bfv.ErrMissingKey)
}

// Multiplying by a plaintext needs no relinearization: the ciphertext
// stays at size 2 throughout (spec.md §4.9).
func TestMultiplyPlain(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	a := []uint64{2, 4, 6}
	ct := s.encrypt(t, a)

	pt, err := s.encoder.EncodeNew([]uint64{3, 3, 3})
	require.NoError(t, err)

	ctProd, err := s.evaluator.MultiplyPlainNew(ct, pt)
	require.NoError(t, err)
	require.Equal(t, 2, ctProd.Size())

	// Coefficient encoding: the result is the polynomial product
	// (2+4X+6X^2)*(3+3X+3X^2), whose first three coefficients are 6, 18, 36.
	got := s.decrypt(t, ctProd, len(a))
	require.Equal(t, []uint64{6, 18, 36}, got)
}

// Parameters with a non-prime or non-NTT-friendly explicit modulus are
// rejected outright (spec.md §9's resolved modulus Open Question).
func TestNewParametersRejectsBadModulus(t *testing.T) {
	_, err := bfv.NewParametersFromLiteral(bfv.ParametersLiteral{
		LogN: 12,
		Q:    1<<54 - 1, // composite, and the reference Python implementation's q=2^k-1 choice.
		T:    65537,
	})
	require.ErrorIs(t, err, bfv.ErrInvalidParameters)
}

func TestParametersFingerprintIsStableAndDistinguishing(t *testing.T) {
	p1, err := bfv.NewParametersFromLiteral(bfv.ParametersLiteral{LogN: 12, LogQ: 54, T: 65537})
	require.NoError(t, err)
	p2, err := bfv.NewParametersFromLiteral(bfv.ParametersLiteral{LogN: 12, LogQ: 54, T: 40961})
	require.NoError(t, err)

	require.Equal(t, p1.Fingerprint(), p1.Fingerprint())
	require.NotEqual(t, p1.Fingerprint(), p2.Fingerprint())
}

func TestMarshalUnmarshalCiphertextRoundTrip(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)
	ct := s.encrypt(t, []uint64{9, 8, 7})

	data, err := ct.MarshalBinary(s.params)
	require.NoError(t, err)

	back, err := bfv.UnmarshalCiphertext(data, s.params)
	require.NoError(t, err)

	got := s.decrypt(t, back, 3)
	require.Equal(t, []uint64{9, 8, 7}, got)
}

// A full-slot vector (len == N) round-trips exactly through
// encode/encrypt/decrypt/decode (spec.md §8's boundary tests).
func TestEncryptDecryptFullSlotVector(t *testing.T) {
	s := newTestSuite(t, 5, 40, 65537)

	N := s.params.N()
	values := make([]uint64, N)
	for i := range values {
		values[i] = uint64(i)
	}

	ct := s.encrypt(t, values)
	got := s.decrypt(t, ct, N)

	if diff := cmp.Diff(values, got); diff != "" {
		t.Fatalf("decrypted vector mismatch (-want +got):\n%s", diff)
	}
}

// Encoding a vector longer than N slots is a shape error, not silent
// truncation (spec.md §8's boundary tests).
func TestEncodeOverlongVectorErrors(t *testing.T) {
	s := newTestSuite(t, 4, 40, 65537)

	N := s.params.N()
	values := make([]uint64, N+1)
	_, err := s.encoder.EncodeNew(values)
	require.ErrorIs(t, err, bfv.ErrEncodingOverflow)
}

// Boundary values near the edges of the plaintext range round-trip exactly:
// 0, t/2-1, and its negation reduced mod t.
func TestEncryptDecryptBoundaryValues(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	half := s.params.T() / 2
	values := []uint64{0, half - 1, s.params.T() - (half - 1)} // 0, t/2-1, -(t/2-1) mod t
	ct := s.encrypt(t, values)

	got := s.decrypt(t, ct, len(values))
	require.Equal(t, values, got)
}

// A ciphertext produced under one parameter set cannot be combined with one
// from another: spec.md §7's parameter-mismatch error.
func TestEvaluatorRejectsCrossParameterOperands(t *testing.T) {
	s1 := newTestSuite(t, 12, 54, 65537)
	s2 := newTestSuite(t, 12, 54, 40961)

	ct1 := s1.encrypt(t, []uint64{1, 2, 3})
	ct2 := s2.encrypt(t, []uint64{4, 5, 6})

	_, err := s1.evaluator.AddNew(ct1, ct2)
	require.ErrorIs(t, err, bfv.ErrShapeMismatch)

	_, err = s1.evaluator.SubNew(ct1, ct2)
	require.ErrorIs(t, err, bfv.ErrShapeMismatch)

	_, err = s1.evaluator.MultiplyNew(ct1, ct2)
	require.ErrorIs(t, err, bfv.ErrShapeMismatch)
}

// S7 (literal): an encrypted database lookup by subtraction — the matching
// row is the one whose encrypted difference from the target decrypts to 0.
func TestScenarioS7DatabaseLookupBySubtraction(t *testing.T) {
	s := newTestSuite(t, 12, 54, 65537)

	database := []uint64{20260205, 20260215, 20260225, 20260228}
	target := uint64(20260225)

	ctTarget := s.encrypt(t, []uint64{target})

	matchIndex := -1
	for i, row := range database {
		ctRow := s.encrypt(t, []uint64{row})
		diff, err := s.evaluator.SubNew(ctRow, ctTarget)
		require.NoError(t, err)

		got := s.decrypt(t, diff, 1)
		if got[0] == 0 {
			matchIndex = i
		}
	}
	require.Equal(t, 2, matchIndex)
}
