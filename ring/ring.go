package ring

import "fmt"

// Ring implements arithmetic over R_q = Z_q[X]/(X^N+1) for a single prime
// modulus q and ring degree N. It owns the precomputed reduction constants
// and, when q is NTT-friendly, the NTT table used to multiply in O(N log N)
// instead of O(N^2). Grounded on ring/ring.go's Ring/Context type (lattigo),
// collapsed from an RNS modulus chain down to a single modulus per
// spec.md's L1.
type Ring struct {
	N          int
	Modulus    uint64
	BRedParams []uint64
	MRedParams uint64

	// ntt is nil when Modulus is not NTT-friendly; Mul then falls back to
	// schoolbook convolution.
	ntt *Table
}

// NewRing constructs a Ring of degree N over modulus q. N must be a power
// of two. If q is prime and q ≡ 1 (mod 2N), an NTT table is built and Mul
// runs in O(N log N); otherwise Mul falls back to schoolbook O(N^2)
// convolution, per spec.md §4.2's allowance for non-NTT-friendly moduli.
func NewRing(N int, q uint64) (*Ring, error) {
	if N <= 0 || N&(N-1) != 0 {
		return nil, fmt.Errorf("ring: N=%d is not a power of two", N)
	}
	if q == 0 {
		return nil, fmt.Errorf("ring: modulus must be non-zero")
	}

	r := &Ring{
		N:          N,
		Modulus:    q,
		BRedParams: BRedParams(q),
		MRedParams: MRedParams(q),
	}

	if err := CheckNTTFriendly(q, N); err == nil {
		table, err := NewTable(N, q)
		if err != nil {
			return nil, err
		}
		r.ntt = table
	}

	return r, nil
}

// HasNTT reports whether this ring multiplies via the NTT rather than
// schoolbook convolution.
func (r *Ring) HasNTT() bool {
	return r.ntt != nil
}

// NewPoly allocates a zero polynomial sized for this ring.
func (r *Ring) NewPoly() *Poly {
	return NewPoly(r.N)
}

// requireSameShape returns an error if any of ps does not have exactly N
// coefficients. The operations below do not call it: every Ring method
// assumes its Poly arguments were allocated by this same Ring (spec.md §4.2
// invariant: operations never mix degrees).
func (r *Ring) requireSameShape(ps ...*Poly) error {
	for _, p := range ps {
		if len(p.Coeffs) != r.N {
			return fmt.Errorf("ring: polynomial has degree %d, ring expects %d", len(p.Coeffs), r.N)
		}
	}
	return nil
}

// Add computes p1+p2 coefficient-wise mod q into out. out may alias p1 or p2.
func (r *Ring) Add(p1, p2, out *Poly) {
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = AddMod(p1.Coeffs[i], p2.Coeffs[i], q)
	}
	out.IsNTT = p1.IsNTT
}

// Sub computes p1-p2 coefficient-wise mod q into out. out may alias p1 or p2.
func (r *Ring) Sub(p1, p2, out *Poly) {
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = SubMod(p1.Coeffs[i], p2.Coeffs[i], q)
	}
	out.IsNTT = p1.IsNTT
}

// Neg computes -p coefficient-wise mod q into out.
func (r *Ring) Neg(p, out *Poly) {
	q := r.Modulus
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = NegMod(p.Coeffs[i], q)
	}
	out.IsNTT = p.IsNTT
}

// MulScalar multiplies every coefficient of p by the scalar s mod q into out.
func (r *Ring) MulScalar(p *Poly, s uint64, out *Poly) {
	q := r.Modulus
	sMod := s % q
	for i := 0; i < r.N; i++ {
		out.Coeffs[i] = BRed(p.Coeffs[i], sMod, q, r.BRedParams)
	}
	out.IsNTT = p.IsNTT
}

// Mul computes the negacyclic product p1*p2 mod (X^N+1, q) into out. Uses
// the NTT when available (NTT(a) . NTT(b), InvNTT), otherwise schoolbook
// convolution. out may alias p1 or p2: the inputs are copied (or read into a
// fresh buffer) before out is written.
func (r *Ring) Mul(p1, p2, out *Poly) {
	if r.ntt != nil {
		a := make([]uint64, r.N)
		b := make([]uint64, r.N)
		copy(a, p1.Coeffs)
		copy(b, p2.Coeffs)
		r.ntt.NTT(a)
		r.ntt.NTT(b)
		for i := 0; i < r.N; i++ {
			a[i] = BRed(a[i], b[i], r.Modulus, r.BRedParams)
		}
		r.ntt.InvNTT(a)
		copy(out.Coeffs, a)
	} else {
		copy(out.Coeffs, mulSchoolbook(p1.Coeffs, p2.Coeffs, r.Modulus, r.BRedParams))
	}
	out.IsNTT = false
}

// NTT transforms p from coefficient form to evaluation form in place.
// Panics if the ring has no NTT table; callers check HasNTT first.
func (r *Ring) NTT(p *Poly) {
	r.ntt.NTT(p.Coeffs)
	p.IsNTT = true
}

// InvNTT transforms p from evaluation form back to coefficient form in
// place. Panics if the ring has no NTT table.
func (r *Ring) InvNTT(p *Poly) {
	r.ntt.InvNTT(p.Coeffs)
	p.IsNTT = false
}

// CenterMod returns the centered-representative coefficients of p in
// (-q/2, q/2], the canonical form used when decoding/decrypting (spec.md
// §4.5).
func (r *Ring) CenterMod(p *Poly) []int64 {
	out := make([]int64, r.N)
	for i, c := range p.Coeffs {
		out[i] = CenterMod(c, r.Modulus)
	}
	return out
}

// Equal reports whether two rings share the same degree and modulus.
func (r *Ring) Equal(other *Ring) bool {
	return r.N == other.N && r.Modulus == other.Modulus
}
