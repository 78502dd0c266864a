package ring

// GaloisElement returns the exponent k = 5^rotateBy mod 2N defining the ring
// automorphism X -> X^k that bfv's RotateColumnsNew applies for a rotation
// amount rotateBy. 5 generates a cyclic subgroup of order N/2 of
// (Z/2NZ)^*, the standard BFV/BGV choice (grounded on spec.md §9's Galois-automorphism
// resolution of the rotation Open Question; mirrors rlwe.GaloisGen in
// lattigo).
func GaloisElement(rotateBy, N int) uint64 {
	twoN := uint64(2 * N)
	k := uint64(1)
	g := uint64(5) % twoN
	e := rotateBy
	if e < 0 {
		e = -e
		// The order of 5 mod 2N divides N (ord(5) | φ(2N) = N for N a
		// power of two), so 5^N = 1 and 5^(N-e) = 5^(-e): negative
		// rotation amounts use that positive exponent.
		e = N - (e % N)
	}
	for i := 0; i < e; i++ {
		k = (k * g) % twoN
	}
	return k
}

// Automorphism applies the substitution X -> X^galEl to p, writing the
// result to out. galEl must be odd and less than 2N. Grounded on the
// coefficient-permutation automorphism used throughout rlwe/ (lattigo) to
// implement Galois key-switching; this replaces the coefficient np.roll
// shift in original_source/bfv_scheme.py's generate_rotation_keys per the
// rotation Open Question resolved in SPEC_FULL.md/DESIGN.md.
func (r *Ring) Automorphism(p *Poly, galEl uint64, out *Poly) {
	N := r.N
	twoN := uint64(2 * N)
	q := r.Modulus

	src := p.Coeffs
	dst := out.Coeffs
	for i := 0; i < N; i++ {
		e := (uint64(i) * galEl) % twoN
		if e < uint64(N) {
			dst[e] = src[i]
		} else {
			dst[e-uint64(N)] = NegMod(src[i], q)
		}
	}
	out.IsNTT = false
}
