package bfv

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"
)

// NoiseEstimator reports the remaining decryption noise budget of a
// ciphertext: the number of bits of headroom before the accumulated RLWE
// error would push decryption past the q/(2t) failure boundary (spec.md
// §9's noise-budget note). This component has no direct analogue in the
// reference Python implementation; it is grounded on lattigo's
// general posture of exposing invariant-adjacent diagnostics (e.g.
// rlwe.Parameters' NoiseFreshSK, NoiseRelinearizationKey estimators) while
// substituting this module's libraries for the underlying computation:
// montanaflynn/stats for empirical moments of a sampled noise polynomial
// and ALTree/bigfloat for the high-precision log2 needed once Q grows
// beyond float64's exponent-free precision.
type NoiseEstimator struct {
	params Parameters
}

// NewNoiseEstimator constructs a NoiseEstimator for params.
func NewNoiseEstimator(params Parameters) *NoiseEstimator {
	return &NoiseEstimator{params: params}
}

// Budget estimates the remaining noise budget, in bits, for a ciphertext
// decrypted under sk: log2(q/(2t)) minus log2 of the empirical standard
// deviation of the decrypted (but not rounded) noise term v - Delta*m.
// A negative or near-zero result means decryption is likely to fail.
func (ne *NoiseEstimator) Budget(decryptedNoise []int64) (float64, error) {
	samples := make([]float64, len(decryptedNoise))
	for i, v := range decryptedNoise {
		samples[i] = float64(v)
	}

	stdev, err := stats.StandardDeviation(samples)
	if err != nil {
		return 0, err
	}
	if stdev == 0 {
		stdev = 1
	}

	q := new(big.Float).SetPrec(128).SetUint64(ne.params.Q())
	twoT := new(big.Float).SetPrec(128).SetUint64(2 * ne.params.T())
	ratio := new(big.Float).SetPrec(128).Quo(q, twoT)

	logCeiling, _ := bigfloat.Log2(ratio).Float64()
	logNoise := math.Log2(stdev)

	return logCeiling - logNoise, nil
}

// FreshBudget estimates the noise budget of a newly-encrypted ciphertext,
// before any homomorphic operation, from the scheme's Gaussian error
// parameter alone (no sample needed).
func (ne *NoiseEstimator) FreshBudget() float64 {
	q := new(big.Float).SetPrec(128).SetUint64(ne.params.Q())
	twoT := new(big.Float).SetPrec(128).SetUint64(2 * ne.params.T())
	ratio := new(big.Float).SetPrec(128).Quo(q, twoT)

	logCeiling, _ := bigfloat.Log2(ratio).Float64()
	logNoise := math.Log2(ne.params.Sigma() * math.Sqrt(float64(ne.params.N())))

	return logCeiling - logNoise
}
