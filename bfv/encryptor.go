package bfv

import (
	"fmt"

	"github.com/latticeforge/bfv/ring"
	"github.com/latticeforge/bfv/rlwe"
)

// Encryptor produces fresh, size-2 ciphertexts from a public key. Grounded
// on bfv/encryptor.go's Encrypt/encrypt (lattigo, lca1-era): sample
// ephemeral ternary u and two Gaussian errors, scale the plaintext by
// Delta=floor(Q/T), and mask it under the public key.
type Encryptor struct {
	params Parameters
	pk     *rlwe.PublicKey

	prng            *ring.KeyedPRNG
	ternarySampler  *ring.TernarySampler
	gaussianSampler *ring.GaussianSampler
}

// NewEncryptor constructs an Encryptor for params using pk, drawing fresh
// randomness from prng.
func NewEncryptor(params Parameters, pk *rlwe.PublicKey, prng *ring.KeyedPRNG) *Encryptor {
	return &Encryptor{
		params:          params,
		pk:              pk,
		prng:            prng,
		ternarySampler:  ring.NewTernarySampler(prng, params.Q()),
		gaussianSampler: ring.NewGaussianSampler(prng, params.Q(), params.Sigma()),
	}
}

// EncryptNew encrypts pt under the encryptor's public key, returning a
// fresh size-2 ciphertext.
func (enc *Encryptor) EncryptNew(pt *Plaintext) (*Ciphertext, error) {
	r := enc.params.RingQ()

	u, err := enc.ternarySampler.ReadNew(r.N)
	if err != nil {
		return nil, fmt.Errorf("bfv: sampling encryption randomness: %w", err)
	}
	e0, err := enc.gaussianSampler.ReadNew(r.N)
	if err != nil {
		return nil, fmt.Errorf("bfv: sampling encryption error e0: %w", err)
	}
	e1, err := enc.gaussianSampler.ReadNew(r.N)
	if err != nil {
		return nil, fmt.Errorf("bfv: sampling encryption error e1: %w", err)
	}

	scaledM := r.NewPoly()
	r.MulScalar(pt.Value, enc.params.Delta(), scaledM)

	c0 := r.NewPoly()
	r.Mul(enc.pk.Value[0], u, c0)
	r.Add(c0, e0, c0)
	r.Add(c0, scaledM, c0)

	c1 := r.NewPoly()
	r.Mul(enc.pk.Value[1], u, c1)
	r.Add(c1, e1, c1)

	return &Ciphertext{Params: enc.params, Value: []*ring.Poly{c0, c1}}, nil
}
