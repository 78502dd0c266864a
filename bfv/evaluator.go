package bfv

import (
	"fmt"
	"math/big"

	"github.com/latticeforge/bfv/ring"
	"github.com/latticeforge/bfv/rlwe"
)

// Evaluator implements the homomorphic operation set over ciphertexts:
// add, subtract, negate, multiply (by ciphertext or plaintext), relinearize,
// and rotate. Grounded on bfv/evaluator.go (lattigo, lca1-era) for the
// overall Add/Sub/Neg/Mul/Relinearize/RotateColumns surface and the
// switchKeys digit-decomposition pattern; the multiplication rescale is
// upgraded from original_source/bfv_scheme.py's float64 np.round(d/t) to
// exact big.Int arithmetic per spec.md §9, since a float64 mantissa cannot
// represent the product of two ~60-bit ciphertext coefficients exactly.
type Evaluator struct {
	params Parameters
}

// NewEvaluator constructs an Evaluator for params.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{params: params}
}

func (ev *Evaluator) checkParams(others ...Parameters) error {
	for _, o := range others {
		if !ev.params.Equals(o) {
			return ErrShapeMismatch
		}
	}
	return nil
}

// AddNew returns ct0+ct1. The operands may have different sizes (one fresh,
// one post-multiplication); the result's size is the larger of the two,
// with the shorter operand's missing high components treated as zero
// (spec.md §4.8).
func (ev *Evaluator) AddNew(ct0, ct1 *Ciphertext) (*Ciphertext, error) {
	return ev.combine(ct0, ct1, false)
}

// SubNew returns ct0-ct1, with the same size-padding rule as AddNew.
func (ev *Evaluator) SubNew(ct0, ct1 *Ciphertext) (*Ciphertext, error) {
	return ev.combine(ct0, ct1, true)
}

func (ev *Evaluator) combine(ct0, ct1 *Ciphertext, subtract bool) (*Ciphertext, error) {
	if err := ev.checkParams(ct0.Params, ct1.Params); err != nil {
		return nil, err
	}

	r := ev.params.RingQ()
	size := ct0.Size()
	if ct1.Size() > size {
		size = ct1.Size()
	}
	out := NewCiphertext(ev.params, size)
	for i := 0; i < size; i++ {
		switch {
		case i < ct0.Size() && i < ct1.Size():
			if subtract {
				r.Sub(ct0.Value[i], ct1.Value[i], out.Value[i])
			} else {
				r.Add(ct0.Value[i], ct1.Value[i], out.Value[i])
			}
		case i < ct0.Size():
			out.Value[i].Copy(ct0.Value[i])
		default:
			if subtract {
				r.Neg(ct1.Value[i], out.Value[i])
			} else {
				out.Value[i].Copy(ct1.Value[i])
			}
		}
	}
	return out, nil
}

// NegateNew returns -ct, componentwise.
func (ev *Evaluator) NegateNew(ct *Ciphertext) *Ciphertext {
	r := ev.params.RingQ()
	out := NewCiphertext(ev.params, ct.Size())
	for i, c := range ct.Value {
		r.Neg(c, out.Value[i])
	}
	return out
}

// MultiplyPlainNew returns ct*pt: each ciphertext component multiplied by
// the (unscaled) plaintext polynomial. Unlike ciphertext-ciphertext
// multiplication this needs no rescale, since pt was never multiplied by
// Delta (spec.md §4.9).
func (ev *Evaluator) MultiplyPlainNew(ct *Ciphertext, pt *Plaintext) (*Ciphertext, error) {
	if err := ev.checkParams(ct.Params, pt.Params); err != nil {
		return nil, err
	}
	r := ev.params.RingQ()
	out := NewCiphertext(ev.params, ct.Size())
	for i, c := range ct.Value {
		r.Mul(c, pt.Value, out.Value[i])
	}
	return out, nil
}

// MultiplyNew tensors two fresh (size-2) ciphertexts into a size-3
// ciphertext, rescaling each tensor component by T/Q with rounding
// (spec.md §4.8). Returns ErrCiphertextState if either operand already
// carries a degree-2 term (size 3): relinearize before multiplying again.
func (ev *Evaluator) MultiplyNew(ct0, ct1 *Ciphertext) (*Ciphertext, error) {
	if err := ev.checkParams(ct0.Params, ct1.Params); err != nil {
		return nil, err
	}
	if ct0.Size() != 2 || ct1.Size() != 2 {
		return nil, fmt.Errorf("%w: multiply requires two size-2 ciphertexts, got sizes %d and %d", ErrCiphertextState, ct0.Size(), ct1.Size())
	}

	r := ev.params.RingQ()
	q := ev.params.Q()
	t := ev.params.T()

	c0 := r.CenterMod(ct0.Value[0])
	c1 := r.CenterMod(ct0.Value[1])
	d0 := r.CenterMod(ct1.Value[0])
	d1 := r.CenterMod(ct1.Value[1])

	e0 := convolveExact(c0, d0)
	e1 := addBig(convolveExact(c0, d1), convolveExact(c1, d0))
	e2 := convolveExact(c1, d1)

	out := NewCiphertext(ev.params, 3)
	for i := 0; i < r.N; i++ {
		out.Value[0].Coeffs[i] = rescaleModQ(e0[i], t, q)
		out.Value[1].Coeffs[i] = rescaleModQ(e1[i], t, q)
		out.Value[2].Coeffs[i] = rescaleModQ(e2[i], t, q)
	}
	return out, nil
}

// RelinearizeNew switches a size-3 ciphertext back down to size 2 using
// rlk, the inverse of the size growth MultiplyNew introduces. Returns
// ErrCiphertextState for any size other than 3.
func (ev *Evaluator) RelinearizeNew(ct *Ciphertext, rlk *rlwe.RelinearizationKey) (*Ciphertext, error) {
	if err := ev.checkParams(ct.Params); err != nil {
		return nil, err
	}
	if ct.Size() != 3 {
		return nil, fmt.Errorf("%w: relinearize requires a size-3 ciphertext, got size %d", ErrCiphertextState, ct.Size())
	}
	if rlk == nil {
		return nil, fmt.Errorf("%w: relinearization key", ErrMissingKey)
	}

	r := ev.params.RingQ()
	d0, d1 := ev.keySwitch(ct.Value[2], rlk.EvaluationKey)

	out := NewCiphertext(ev.params, 2)
	r.Add(ct.Value[0], d0, out.Value[0])
	r.Add(ct.Value[1], d1, out.Value[1])
	return out, nil
}

// RotateColumnsNew applies the Galois automorphism X -> X^{5^r mod 2N}
// (r = rotateBy) to ct and key-switches back to the original secret key
// (spec.md §9's resolved Open Question). Under the Encoder's coefficient
// encoding this moves plaintext coefficient i to position i*5^r mod 2N
// (negated when that position is N or above); it is not a cyclic shift of
// the encoded values. Rotating by r and then by -r restores the original.
// Returns ErrMissingKey if galKeys has no entry for the requested rotation
// amount.
func (ev *Evaluator) RotateColumnsNew(ct *Ciphertext, rotateBy int, galKeys *rlwe.GaloisKeySet) (*Ciphertext, error) {
	if err := ev.checkParams(ct.Params); err != nil {
		return nil, err
	}
	if ct.Size() != 2 {
		return nil, fmt.Errorf("%w: rotate requires a size-2 ciphertext, got size %d", ErrCiphertextState, ct.Size())
	}
	galEl := ring.GaloisElement(rotateBy, ev.params.N())
	gk, ok := galKeys.Get(galEl)
	if !ok {
		return nil, fmt.Errorf("%w: no Galois key for rotation %d", ErrMissingKey, rotateBy)
	}

	r := ev.params.RingQ()
	c0p := r.NewPoly()
	c1p := r.NewPoly()
	r.Automorphism(ct.Value[0], galEl, c0p)
	r.Automorphism(ct.Value[1], galEl, c1p)

	d0, d1 := ev.keySwitch(c1p, gk.EvaluationKey)

	out := NewCiphertext(ev.params, 2)
	r.Add(c0p, d0, out.Value[0])
	out.Value[1].Copy(d1)
	return out, nil
}

// keySwitch decomposes cIn into evk.Decomposition.Beta base-W digit
// polynomials and accumulates digit_i * evk.Value[i] into (c0, c1), the
// shared machinery behind both relinearization and rotation. Grounded on
// bfv/evaluator.go's switchKeys (lattigo, lca1-era).
func (ev *Evaluator) keySwitch(cIn *ring.Poly, evk *rlwe.EvaluationKey) (c0, c1 *ring.Poly) {
	r := ev.params.RingQ()
	c0 = r.NewPoly()
	c1 = r.NewPoly()

	digit := r.NewPoly()
	tmp := r.NewPoly()
	for i := 0; i < evk.Decomposition.Beta; i++ {
		for j, coeff := range cIn.Coeffs {
			digit.Coeffs[j] = rlwe.DecomposeSingle(coeff, i, evk.Decomposition.LogBase)
		}

		r.Mul(digit, evk.Value[i][0], tmp)
		r.Add(c0, tmp, c0)

		r.Mul(digit, evk.Value[i][1], tmp)
		r.Add(c1, tmp, c1)
	}
	return c0, c1
}

// convolveExact computes the exact (unreduced) negacyclic convolution of
// two centered integer polynomials, using math/big so no precision is lost
// even though individual coefficients can exceed 64 bits once two ~60-bit
// values are multiplied and accumulated N times.
func convolveExact(a, b []int64) []*big.Int {
	N := len(a)
	out := make([]*big.Int, N)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i := 0; i < N; i++ {
		if a[i] == 0 {
			continue
		}
		ai := big.NewInt(a[i])
		for j := 0; j < N; j++ {
			if b[j] == 0 {
				continue
			}
			prod := new(big.Int).Mul(ai, big.NewInt(b[j]))
			k := i + j
			if k < N {
				out[k].Add(out[k], prod)
			} else {
				out[k-N].Sub(out[k-N], prod)
			}
		}
	}
	return out
}

// addBig returns the elementwise sum of two equal-length big.Int slices.
func addBig(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i := range out {
		out[i] = new(big.Int).Add(a[i], b[i])
	}
	return out
}

// rescaleModQ computes round(t*e/q) mod q for an exact (possibly huge,
// possibly negative) coefficient e produced by convolveExact, the integer
// replacement for the naive float64 rescale spec.md §9 flags as incorrect
// once Q exceeds 53 bits.
func rescaleModQ(e *big.Int, t, q uint64) uint64 {
	qBig := new(big.Int).SetUint64(q)
	half := new(big.Int).Rsh(qBig, 1)

	num := new(big.Int).Mul(e, new(big.Int).SetUint64(t))
	if num.Sign() >= 0 {
		num.Add(num, half)
	} else {
		num.Sub(num, half)
	}
	num.Quo(num, qBig)
	num.Mod(num, qBig)
	return num.Uint64()
}
