package ring

// TernarySampler draws polynomials with coefficients uniform over
// {-1, 0, 1} mod q, used for secret keys and the ephemeral encryption
// randomness u. Grounded on ring/sampler_ternary.go's baseSampler/Read
// structure (lattigo), simplified to the single uniform-density case since
// spec.md §4.2 does not require Hamming-weight-controlled sparse ternary
// sampling.
type TernarySampler struct {
	prng *KeyedPRNG
	q    uint64
}

// NewTernarySampler constructs a ternary sampler over the ring with
// modulus q.
func NewTernarySampler(prng *KeyedPRNG, q uint64) *TernarySampler {
	return &TernarySampler{prng: prng, q: q}
}

// Read fills pol with independent coefficients drawn uniformly from
// {-1, 0, 1}, represented in [0, q) (i.e. -1 becomes q-1). Two random bits
// per coefficient are drawn and the value 3 is rejected, giving each of the
// three outcomes probability 1/3 with no bias toward 0.
func (s *TernarySampler) Read(pol *Poly) error {
	buf := make([]byte, 1)
	for i := range pol.Coeffs {
		for {
			if err := s.prng.Clock(buf); err != nil {
				return err
			}
			// Each byte yields up to four 2-bit draws; only the low 2 bits
			// are used per coefficient for simplicity and auditability.
			v := buf[0] & 0b11
			if v == 0b11 {
				continue
			}
			switch v {
			case 0:
				pol.Coeffs[i] = 0
			case 1:
				pol.Coeffs[i] = 1
			case 2:
				pol.Coeffs[i] = s.q - 1
			}
			break
		}
	}
	pol.IsNTT = false
	return nil
}

// ReadNew allocates and fills a new ternary polynomial of degree N.
func (s *TernarySampler) ReadNew(N int) (*Poly, error) {
	p := NewPoly(N)
	if err := s.Read(p); err != nil {
		return nil, err
	}
	return p, nil
}
