// Package bfv implements the Brakerski-Fan-Vercauteren scheme over a
// single-modulus ring R_q = Z_q[X]/(X^N+1): key generation, encode/decode,
// encrypt/decrypt, and the homomorphic operation set (add, subtract,
// negate, multiply, relinearize, multiply-plain, rotate). Grounded on
// bfv/parameters.go + bfv/params.go (lattigo) for the ParametersLiteral /
// Parameters split, generalized from lattigo's RNS modulus chain down
// to spec.md's single prime q.
package bfv

import (
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/latticeforge/bfv/ring"
	"github.com/latticeforge/bfv/rlwe"
)

// defaultLogBase is the default relinearization/rotation digit width in
// bits, chosen so a 60-bit modulus decomposes into a handful of digits
// without the key growing unreasonably large (spec.md §9).
const defaultLogBase = 16

// ParametersLiteral is the user-facing, unvalidated description of a BFV
// instance. Grounded on bfv/params.go's ParametersLiteral (lattigo).
type ParametersLiteral struct {
	LogN int // ring degree is 2^LogN
	// LogQ requests a fresh NTT-friendly prime of this many bits; leave
	// zero and set Q to pin an explicit modulus instead (e.g. for test
	// vectors or reproducing a known parameter set).
	LogQ int
	Q    uint64

	T uint64 // plaintext modulus

	Sigma float64 // Gaussian error standard deviation

	LogBase int // relinearization/rotation decomposition digit width, bits
}

// Parameters is a validated, immutable BFV parameter set: everything
// encryptors, decryptors, encoders, and evaluators need to operate, with
// the ciphertext ring's NTT table precomputed once at construction.
// Grounded on bfv/parameters.go's Parameters (lattigo).
type Parameters struct {
	logN  int
	t     uint64
	delta uint64 // floor(q/t)
	sigma float64

	ringQ *ring.Ring

	decompositionLogBase int
}

// NewParametersFromLiteral validates lit and builds a Parameters, searching
// for a fresh NTT-friendly modulus when lit.Q is zero. Resolves spec.md
// §9's modulus Open Question by rejecting any q that is not prime and
// congruent to 1 mod 2N outright, rather than accepting the q = 2^k - 1
// construction the reference Python implementation uses.
func NewParametersFromLiteral(lit ParametersLiteral) (Parameters, error) {
	if lit.LogN <= 0 || lit.LogN > 20 {
		return Parameters{}, fmt.Errorf("%w: LogN=%d out of supported range", ErrInvalidParameters, lit.LogN)
	}
	N := 1 << lit.LogN

	if lit.T < 2 {
		return Parameters{}, fmt.Errorf("%w: plaintext modulus T=%d must be >= 2", ErrInvalidParameters, lit.T)
	}

	q := lit.Q
	if q == 0 {
		if lit.LogQ <= 0 {
			return Parameters{}, fmt.Errorf("%w: must set either Q or LogQ", ErrInvalidParameters)
		}
		var err error
		q, err = ring.GenNTTFriendlyPrime(lit.LogQ, N)
		if err != nil {
			return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	} else if err := ring.CheckNTTFriendly(q, N); err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	if q <= lit.T {
		return Parameters{}, fmt.Errorf("%w: ciphertext modulus Q=%d must exceed plaintext modulus T=%d", ErrInvalidParameters, q, lit.T)
	}

	sigma := lit.Sigma
	if sigma <= 0 {
		sigma = 3.2
	}

	logBase := lit.LogBase
	if logBase <= 0 {
		logBase = defaultLogBase
	}

	ringQ, err := ring.NewRing(N, q)
	if err != nil {
		return Parameters{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	return Parameters{
		logN:                 lit.LogN,
		t:                    lit.T,
		delta:                q / lit.T,
		sigma:                sigma,
		ringQ:                ringQ,
		decompositionLogBase: logBase,
	}, nil
}

// N returns the ring degree.
func (p Parameters) N() int { return 1 << p.logN }

// LogN returns log2 of the ring degree.
func (p Parameters) LogN() int { return p.logN }

// Q returns the ciphertext modulus.
func (p Parameters) Q() uint64 { return p.ringQ.Modulus }

// T returns the plaintext modulus.
func (p Parameters) T() uint64 { return p.t }

// Delta returns floor(Q/T), the scaling factor applied to encoded
// plaintexts at encryption time (spec.md §4.5).
func (p Parameters) Delta() uint64 { return p.delta }

// Sigma returns the Gaussian error standard deviation.
func (p Parameters) Sigma() float64 { return p.sigma }

// RingQ returns the ciphertext ring.
func (p Parameters) RingQ() *ring.Ring { return p.ringQ }

// LogBase returns the relinearization/rotation decomposition digit width.
func (p Parameters) LogBase() int { return p.decompositionLogBase }

// NewKeyGenerator returns an rlwe.KeyGenerator configured for this
// parameter set, drawing randomness from prng.
func (p Parameters) NewKeyGenerator(prng *ring.KeyedPRNG) (*rlwe.KeyGenerator, error) {
	return rlwe.NewKeyGenerator(p.ringQ, prng, p.sigma, p.decompositionLogBase)
}

// Equals reports whether two parameter sets describe the same ring and
// moduli (used by the evaluator to reject cross-parameter operands,
// spec.md §7's shape-mismatch error).
func (p Parameters) Equals(other Parameters) bool {
	return p.logN == other.logN && p.t == other.t && p.ringQ.Equal(other.ringQ)
}

// Fingerprint returns a short, stable identifier for this parameter set,
// derived from its (N, Q, T) triple via blake3. The wire format in
// marshaler.go does not include it; serialized data carries the raw
// (logN, Q, T) header instead.
func (p Parameters) Fingerprint() [32]byte {
	h := blake3.New()
	fmt.Fprintf(h, "bfv/N=%d/Q=%d/T=%d", p.N(), p.Q(), p.t)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// String renders a short human-readable banner describing the parameter
// set, grounded on bfv/params.go's String-style summaries (lattigo).
func (p Parameters) String() string {
	return fmt.Sprintf("bfv.Parameters{N=%d, Q=%d (%d-bit), T=%d, sigma=%.2f}",
		p.N(), p.Q(), bitLen(p.Q()), p.t, p.sigma)
}

func bitLen(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}
