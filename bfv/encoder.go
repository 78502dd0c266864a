package bfv

import (
	"fmt"
)

// Encoder maps between plaintext integer vectors and the ring elements
// ciphertexts actually carry. This implementation uses the direct
// coefficient embedding (value i goes into coefficient slot i, mod T) that
// original_source/bfv_scheme.py's encode/decode use, rather than the CRT
// "batching" encoding lattigo's bfv/encoder.go builds via NTT over R_t
// (which needs T prime and T ≡ 1 mod 2N). spec.md §4.4 documents this as an
// accepted simplification: N integer slots rather than full SIMD batching.
// Ciphertext (and plaintext) multiplication therefore multiplies the encoded
// vectors as polynomials mod (X^N+1, T), not slot by slot, and the ring
// automorphism used by RotateColumnsNew permutes coefficients (with sign
// changes) rather than cyclically shifting the slots. Grounded on bfv/encoder.go's
// Encoder/EncodeNew/DecodeNew structure (lattigo).
type Encoder struct {
	params Parameters
}

// NewEncoder constructs an Encoder for params.
func NewEncoder(params Parameters) *Encoder {
	return &Encoder{params: params}
}

// Encode writes values (each reduced mod T) into pt's coefficient slots,
// zero-filling any remaining slots. Returns ErrEncodingOverflow if there
// are more values than N slots.
func (e *Encoder) Encode(values []uint64, pt *Plaintext) error {
	N := e.params.N()
	if len(values) > N {
		return fmt.Errorf("%w: %d values for %d slots", ErrEncodingOverflow, len(values), N)
	}
	t := e.params.T()
	for i := 0; i < N; i++ {
		if i < len(values) {
			pt.Value.Coeffs[i] = values[i] % t
		} else {
			pt.Value.Coeffs[i] = 0
		}
	}
	pt.Value.IsNTT = false
	return nil
}

// EncodeNew allocates a fresh Plaintext and encodes values into it.
func (e *Encoder) EncodeNew(values []uint64) (*Plaintext, error) {
	pt := NewPlaintext(e.params)
	if err := e.Encode(values, pt); err != nil {
		return nil, err
	}
	return pt, nil
}

// Decode reads pt's N coefficient slots back out as integers in [0, T).
func (e *Encoder) Decode(pt *Plaintext) []uint64 {
	N := e.params.N()
	t := e.params.T()
	out := make([]uint64, N)
	for i := 0; i < N; i++ {
		out[i] = pt.Value.Coeffs[i] % t
	}
	return out
}

// centeredToT maps a centered representative in (-q/2, q/2] down to a
// plaintext-domain value by reducing it into [0, T), wrapping negatives.
func centeredToT(x int64, t uint64) uint64 {
	m := x % int64(t)
	if m < 0 {
		m += int64(t)
	}
	return uint64(m)
}
