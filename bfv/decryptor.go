package bfv

import (
	"fmt"
	"math/big"

	"github.com/latticeforge/bfv/rlwe"
)

// Decryptor recovers a Plaintext from a Ciphertext under a SecretKey.
// Grounded on bfv/decryptor.go's Decrypt (lattigo, lca1-era): Horner's
// method accumulates v = c0 + c1*s + c2*s^2 + ... from the top component
// down. The final rounding step is upgraded from
// original_source/bfv_scheme.py's decrypt (np.round(v/Delta), a float
// approximation that drifts once Q exceeds float64's 53-bit mantissa) to
// the canonical integer computation round(T*v/Q) mod T, per spec.md
// §4.5/§9.
type Decryptor struct {
	params Parameters
	sk     *rlwe.SecretKey
}

// NewDecryptor constructs a Decryptor for params using sk.
func NewDecryptor(params Parameters, sk *rlwe.SecretKey) *Decryptor {
	return &Decryptor{params: params, sk: sk}
}

// DecryptNew decrypts ct, returning the recovered plaintext. It returns
// ErrDecryptionFailed, rather than a silently-wrong plaintext, when a
// coefficient's rescale lands exactly on the q/2 rounding boundary
// (spec.md §7) — the one case canonical round-half-away-from-zero cannot
// resolve. A tie needs an even q; NewParametersFromLiteral only accepts an
// odd prime q, so under validated Parameters this error does not occur.
func (dec *Decryptor) DecryptNew(ct *Ciphertext) (*Plaintext, error) {
	r := dec.params.RingQ()

	v := ct.Value[len(ct.Value)-1].CopyNew()
	for i := len(ct.Value) - 2; i >= 0; i-- {
		r.Mul(v, dec.sk.Value, v)
		r.Add(v, ct.Value[i], v)
	}

	centered := r.CenterMod(v)

	pt := NewPlaintext(dec.params)
	t := dec.params.T()
	q := dec.params.Q()
	for i, c := range centered {
		coeff, ok := roundedRescale(c, t, q)
		if !ok {
			return nil, fmt.Errorf("%w: coefficient %d landed exactly on the rounding boundary", ErrDecryptionFailed, i)
		}
		pt.Value.Coeffs[i] = coeff
	}
	return pt, nil
}

// roundedRescale computes round(t*v/q) mod t for a centered v in
// (-q/2, q/2], using math/big so the intermediate t*v product (which can
// exceed 64 bits once both t and q approach their practical maximums) never
// overflows. This is the scheme's canonical decryption rounding rule
// (spec.md §4.5): it tolerates noise up to q/(2t) before producing a wrong
// result, strictly more than the source's round(v/Delta) allows once
// rounding error in Delta=floor(q/t) itself is accounted for. The second
// return value is false exactly when t*v mod q is a tie (q even and the
// remainder is exactly q/2), meaning the sign of the round is ambiguous.
func roundedRescale(v int64, t, q uint64) (uint64, bool) {
	num := big.NewInt(v)
	num.Mul(num, new(big.Int).SetUint64(t))

	qBig := new(big.Int).SetUint64(q)
	halfQ := new(big.Int).Rsh(qBig, 1)

	rem := new(big.Int).Mod(num, qBig)
	tie := q%2 == 0 && rem.Cmp(halfQ) == 0

	// round-half-away-from-zero division by q
	if num.Sign() >= 0 {
		num.Add(num, halfQ)
	} else {
		num.Sub(num, halfQ)
	}
	num.Quo(num, qBig)

	tBig := new(big.Int).SetUint64(t)
	num.Mod(num, tBig)
	return num.Uint64(), !tie
}
