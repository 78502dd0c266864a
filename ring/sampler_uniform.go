package ring

// UniformSampler draws polynomials whose coefficients are uniform in
// [0, q) via rejection sampling against a power-of-two bitmask, avoiding the
// modulo bias a plain "% q" would introduce. Grounded on
// ring/sampler_uniform.go's Read/randomBufferN (lattigo, lca1-era).
type UniformSampler struct {
	prng *KeyedPRNG
	q    uint64
	mask uint64
}

// NewUniformSampler constructs a sampler over the ring with modulus q,
// drawing randomness from prng.
func NewUniformSampler(prng *KeyedPRNG, q uint64) *UniformSampler {
	return &UniformSampler{prng: prng, q: q, mask: maskForModulus(q)}
}

// maskForModulus returns the smallest (2^k - 1) >= q-1, the rejection mask
// used by Read.
func maskForModulus(q uint64) uint64 {
	mask := uint64(1)
	for mask < q-1 {
		mask = mask<<1 | 1
	}
	return mask
}

// Read fills pol with uniform coefficients in [0, q).
func (s *UniformSampler) Read(pol *Poly) error {
	buf := make([]byte, 8)
	for i := range pol.Coeffs {
		for {
			if err := s.prng.Clock(buf); err != nil {
				return err
			}
			var candidate uint64
			for b := 0; b < 8; b++ {
				candidate |= uint64(buf[b]) << (8 * b)
			}
			candidate &= s.mask
			if candidate < s.q {
				pol.Coeffs[i] = candidate
				break
			}
		}
	}
	pol.IsNTT = false
	return nil
}

// ReadNew allocates and fills a new uniform polynomial of degree N.
func (s *UniformSampler) ReadNew(N int) (*Poly, error) {
	p := NewPoly(N)
	if err := s.Read(p); err != nil {
		return nil, err
	}
	return p, nil
}
