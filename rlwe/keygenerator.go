package rlwe

import (
	"fmt"

	"github.com/latticeforge/bfv/ring"
)

// KeyGenerator produces secret, public, relinearization, and Galois keys
// for a fixed ring and error distribution. Grounded on
// rlwe/keygenerator.go + bfv/keygen.go (lattigo).
type KeyGenerator struct {
	ring          *ring.Ring
	prng          *ring.KeyedPRNG
	sigma         float64
	decomposition DecompositionParams

	uniformSampler  *ring.UniformSampler
	ternarySampler  *ring.TernarySampler
	gaussianSampler *ring.GaussianSampler
}

// NewKeyGenerator constructs a KeyGenerator over r, drawing randomness from
// prng, with Gaussian error standard deviation sigma and relinearization/
// rotation digit width logBase bits.
func NewKeyGenerator(r *ring.Ring, prng *ring.KeyedPRNG, sigma float64, logBase int) (*KeyGenerator, error) {
	decomp, err := NewDecompositionParams(r.Modulus, logBase)
	if err != nil {
		return nil, fmt.Errorf("rlwe: building key generator: %w", err)
	}
	return &KeyGenerator{
		ring:            r,
		prng:            prng,
		sigma:           sigma,
		decomposition:   decomp,
		uniformSampler:  ring.NewUniformSampler(prng, r.Modulus),
		ternarySampler:  ring.NewTernarySampler(prng, r.Modulus),
		gaussianSampler: ring.NewGaussianSampler(prng, r.Modulus, sigma),
	}, nil
}

// GenSecretKey draws a fresh ternary secret key.
func (kg *KeyGenerator) GenSecretKey() (*SecretKey, error) {
	s, err := kg.ternarySampler.ReadNew(kg.ring.N)
	if err != nil {
		return nil, fmt.Errorf("rlwe: sampling secret key: %w", err)
	}
	return &SecretKey{Value: s}, nil
}

// GenPublicKey derives the public key (b, a) for sk: a uniform, b = -(a*s+e).
func (kg *KeyGenerator) GenPublicKey(sk *SecretKey) (*PublicKey, error) {
	r := kg.ring

	a, err := kg.uniformSampler.ReadNew(r.N)
	if err != nil {
		return nil, fmt.Errorf("rlwe: sampling public key randomness: %w", err)
	}
	e, err := kg.gaussianSampler.ReadNew(r.N)
	if err != nil {
		return nil, fmt.Errorf("rlwe: sampling public key error: %w", err)
	}

	as := r.NewPoly()
	r.Mul(a, sk.Value, as)

	b := r.NewPoly()
	r.Add(as, e, b)
	r.Neg(b, b)

	return &PublicKey{Value: [2]*ring.Poly{b, a}}, nil
}

// genSwitchingKey produces a digit-decomposed EvaluationKey that switches
// an encryption under skIn into one under skOut: Beta pairs (b_i, a_i) with
// a_i uniform, e_i Gaussian, b_i = -(a_i*skOut + e_i) + w^i * skIn.
// Grounded on bfv/evaluator.go's switchKeys digit-decomposition loop
// (lattigo, lca1-era), generalized from relinearization to any
// (skIn, skOut) pair so it also serves Galois key generation.
func (kg *KeyGenerator) genSwitchingKey(skIn, skOut *ring.Poly) (*EvaluationKey, error) {
	r := kg.ring
	beta := kg.decomposition.Beta

	value := make([][2]*ring.Poly, beta)
	for i := 0; i < beta; i++ {
		a, err := kg.uniformSampler.ReadNew(r.N)
		if err != nil {
			return nil, fmt.Errorf("rlwe: sampling switching-key randomness: %w", err)
		}
		e, err := kg.gaussianSampler.ReadNew(r.N)
		if err != nil {
			return nil, fmt.Errorf("rlwe: sampling switching-key error: %w", err)
		}

		as := r.NewPoly()
		r.Mul(a, skOut, as)

		b := r.NewPoly()
		r.Add(as, e, b)
		r.Neg(b, b)

		wi := kg.decomposition.Digit(i, r.Modulus)
		scaled := r.NewPoly()
		r.MulScalar(skIn, wi, scaled)
		r.Add(b, scaled, b)

		value[i] = [2]*ring.Poly{b, a}
	}

	return &EvaluationKey{Decomposition: kg.decomposition, Value: value}, nil
}

// GenRelinearizationKey produces the key that switches an encryption under
// s^2 back to one under s, used after ciphertext multiplication
// (spec.md §4.8).
func (kg *KeyGenerator) GenRelinearizationKey(sk *SecretKey) (*RelinearizationKey, error) {
	r := kg.ring
	s2 := r.NewPoly()
	r.Mul(sk.Value, sk.Value, s2)

	evk, err := kg.genSwitchingKey(s2, sk.Value)
	if err != nil {
		return nil, fmt.Errorf("rlwe: generating relinearization key: %w", err)
	}
	return &RelinearizationKey{EvaluationKey: evk}, nil
}

// GenGaloisKey produces the key that switches an encryption under
// automorphism(s, galEl) back to one under s, implementing rotation by the
// true BFV/Galois automorphism rather than the coefficient shift the
// reference Python implementation uses (spec.md §9's resolved Open Question).
func (kg *KeyGenerator) GenGaloisKey(sk *SecretKey, galEl uint64) (*GaloisKey, error) {
	r := kg.ring
	sRotated := r.NewPoly()
	r.Automorphism(sk.Value, galEl, sRotated)

	evk, err := kg.genSwitchingKey(sRotated, sk.Value)
	if err != nil {
		return nil, fmt.Errorf("rlwe: generating Galois key for element %d: %w", galEl, err)
	}
	return &GaloisKey{GaloisElement: galEl, EvaluationKey: evk}, nil
}

// GenGaloisKeys produces one GaloisKey per requested rotation amount,
// returning them as a GaloisKeySet ready for RotateColumns.
func (kg *KeyGenerator) GenGaloisKeys(sk *SecretKey, rotations []int) (*GaloisKeySet, error) {
	set := NewGaloisKeySet()
	for _, rot := range rotations {
		galEl := ring.GaloisElement(rot, kg.ring.N)
		gk, err := kg.GenGaloisKey(sk, galEl)
		if err != nil {
			return nil, err
		}
		set.Add(gk)
	}
	return set, nil
}
