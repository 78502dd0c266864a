package ring

import "math"

// gaussianTailCutoff bounds the support of the discrete Gaussian to
// [-⌈6σ⌉, ⌈6σ⌉]; probability mass beyond that is statistically negligible for
// the security parameters this package targets.
const gaussianTailCutoff = 6.0

// GaussianSampler draws error polynomials from a discrete Gaussian
// distribution centered at 0 with standard deviation sigma, via inverse-CDT:
// precompute the cumulative distribution over the truncated support once,
// then map a uniform [0,1) draw to a sample with one binary search. Grounded
// on the sampling strategy of ring/sampler.go's Knuth-Yao-era
// GaussSampling/KYSampler (lattigo), simplified per spec.md §4.2's note that
// inverse-CDT is an acceptable, simpler alternative to Knuth-Yao or Ziggurat.
type GaussianSampler struct {
	prng  *KeyedPRNG
	q     uint64
	sigma float64
	// cdt[i] is the cumulative probability of drawing a value <= support[i].
	support []int64
	cdt     []float64
}

// NewGaussianSampler builds the inverse-CDT table for standard deviation
// sigma and constructs a sampler drawing from prng, reducing samples mod q.
func NewGaussianSampler(prng *KeyedPRNG, q uint64, sigma float64) *GaussianSampler {
	bound := int64(math.Ceil(gaussianTailCutoff * sigma))
	support := make([]int64, 0, 2*bound+1)
	weights := make([]float64, 0, 2*bound+1)
	var total float64
	for x := -bound; x <= bound; x++ {
		w := math.Exp(-float64(x*x) / (2 * sigma * sigma))
		support = append(support, x)
		weights = append(weights, w)
		total += w
	}
	cdt := make([]float64, len(weights))
	var running float64
	for i, w := range weights {
		running += w / total
		cdt[i] = running
	}
	cdt[len(cdt)-1] = 1.0
	return &GaussianSampler{prng: prng, q: q, sigma: sigma, support: support, cdt: cdt}
}

// sampleOne draws a single centered integer error value via one uniform
// float draw and a binary search over the precomputed CDT.
func (s *GaussianSampler) sampleOne() (int64, error) {
	var buf [8]byte
	if err := s.prng.Clock(buf[:]); err != nil {
		return 0, err
	}
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(buf[i]) << (8 * i)
	}
	// 53 bits of mantissa precision, matching float64.
	u := float64(bits>>11) / float64(uint64(1)<<53)

	lo, hi := 0, len(s.cdt)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.cdt[mid] < u {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return s.support[lo], nil
}

// Read fills pol with independent discrete-Gaussian samples, each reduced
// into [0, q) (negative values wrap via q + x).
func (s *GaussianSampler) Read(pol *Poly) error {
	for i := range pol.Coeffs {
		x, err := s.sampleOne()
		if err != nil {
			return err
		}
		if x < 0 {
			pol.Coeffs[i] = s.q - uint64(-x)
		} else {
			pol.Coeffs[i] = uint64(x)
		}
	}
	pol.IsNTT = false
	return nil
}

// ReadNew allocates and fills a new Gaussian-error polynomial of degree N.
func (s *GaussianSampler) ReadNew(N int) (*Poly, error) {
	p := NewPoly(N)
	if err := s.Read(p); err != nil {
		return nil, err
	}
	return p, nil
}
