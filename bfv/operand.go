package bfv

import "github.com/latticeforge/bfv/ring"

// Plaintext holds an encoded message as a single ring element: the t-ary
// coefficients embedded into R_q, before the Delta scaling applied at
// encryption time (spec.md §4.4). Grounded on bfv/bigpoly.go /
// bfv/operand.go's Plaintext (lattigo, lca1-era).
type Plaintext struct {
	Params Parameters
	Value  *ring.Poly
}

// NewPlaintext allocates a zero plaintext sized for params.
func NewPlaintext(params Parameters) *Plaintext {
	return &Plaintext{Params: params, Value: params.RingQ().NewPoly()}
}

// CopyNew returns a deep copy of pt.
func (pt *Plaintext) CopyNew() *Plaintext {
	return &Plaintext{Params: pt.Params, Value: pt.Value.CopyNew()}
}

// Ciphertext holds a BFV ciphertext as `size` ring elements; size is 2 for
// a fresh or post-relinearization ciphertext and 3 immediately after a
// multiplication, before relinearization (spec.md §4.8's ciphertext-size
// state machine). Grounded on bfv/bigpoly.go's Ciphertext (lattigo, lca1
// lineage). Params records the parameter set it was produced under, so the
// Evaluator can reject operands drawn from different scheme instances
// (spec.md §7's parameter-mismatch error) instead of silently computing
// garbage on mismatched rings.
type Ciphertext struct {
	Params Parameters
	Value  []*ring.Poly
}

// NewCiphertext allocates a zero ciphertext of the given size (2 or 3),
// sized for params.
func NewCiphertext(params Parameters, size int) *Ciphertext {
	v := make([]*ring.Poly, size)
	for i := range v {
		v[i] = params.RingQ().NewPoly()
	}
	return &Ciphertext{Params: params, Value: v}
}

// Degree returns size-1, the number of "squarings" of the secret key this
// ciphertext currently carries (2 for fresh, so Degree()==1; 3 after one
// multiplication, Degree()==2).
func (ct *Ciphertext) Degree() int {
	return len(ct.Value) - 1
}

// Size returns the number of ring-element components.
func (ct *Ciphertext) Size() int {
	return len(ct.Value)
}

// Resize truncates or grows ct to the requested size, zero-padding new
// components. RelinearizeNew does not use it; it allocates a fresh size-2
// ciphertext instead.
func (ct *Ciphertext) Resize(size int, N int) {
	if size <= len(ct.Value) {
		ct.Value = ct.Value[:size]
		return
	}
	for len(ct.Value) < size {
		ct.Value = append(ct.Value, ring.NewPoly(N))
	}
}

// CopyNew returns a deep copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	v := make([]*ring.Poly, len(ct.Value))
	for i, p := range ct.Value {
		v[i] = p.CopyNew()
	}
	return &Ciphertext{Params: ct.Params, Value: v}
}
