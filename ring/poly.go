package ring

// Poly is a polynomial in R_q, stored as N coefficients in coefficient form,
// canonically reduced to [0, q). Operations never consume or produce a Poly
// with coefficients outside that range (§4.2 invariant), except transient
// NTT-form buffers which callers must track explicitly via IsNTT.
type Poly struct {
	Coeffs []uint64
	IsNTT  bool
}

// NewPoly allocates a zero polynomial of degree N.
func NewPoly(N int) *Poly {
	return &Poly{Coeffs: make([]uint64, N)}
}

// CopyNew returns a deep copy of p.
func (p *Poly) CopyNew() *Poly {
	q := &Poly{Coeffs: make([]uint64, len(p.Coeffs)), IsNTT: p.IsNTT}
	copy(q.Coeffs, p.Coeffs)
	return q
}

// Copy overwrites the receiver's coefficients with src's.
func (p *Poly) Copy(src *Poly) {
	copy(p.Coeffs, src.Coeffs)
	p.IsNTT = src.IsNTT
}

// Zero sets all coefficients to zero.
func (p *Poly) Zero() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// Equal reports whether p and other hold identical coefficients.
func (p *Poly) Equal(other *Poly) bool {
	if len(p.Coeffs) != len(other.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i] != other.Coeffs[i] {
			return false
		}
	}
	return true
}
