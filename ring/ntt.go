package ring

import "fmt"

// Table holds the precomputed constants needed to evaluate the negacyclic
// NTT over R_q for a fixed (N, q): bit-reversed, Montgomery-form powers of
// the primitive 2N-th root of unity ψ (forward) and its inverse (backward),
// plus N^-1 mod q for the final inverse-transform scaling. Grounded on
// ring/table.go's Table/NewTable/GenNTTParams (lattigo).
type Table struct {
	N          int
	Q          uint64
	QInv       uint64 // MRedParams(Q), the Montgomery reduction constant.
	BRedParams []uint64
	// RootsForward[i] = MForm(ψ^bitReverse(i, logN)), used by the forward
	// (coefficient -> evaluation) transform.
	RootsForward []uint64
	// RootsBackward[i] = MForm(ψ^-bitReverse(i, logN)), used by the inverse
	// transform.
	RootsBackward []uint64
	// NInv is N^-1 mod q, in Montgomery form, applied once at the end of
	// the inverse transform.
	NInv uint64
}

// NewTable builds the NTT table for a ring of degree N over modulus q. q
// must be prime and q ≡ 1 (mod 2N); N must be a power of two. Grounded on
// GenNTTParams (lattigo): find a generator of Z_q^*, raise it to the
// (q-1)/2N power to get a primitive 2N-th root ψ, then populate both
// direction tables in bit-reversed Montgomery form.
func NewTable(N int, q uint64) (*Table, error) {
	if N <= 0 || N&(N-1) != 0 {
		return nil, fmt.Errorf("ring: N=%d is not a power of two", N)
	}
	if err := CheckNTTFriendly(q, N); err != nil {
		return nil, err
	}

	g, _, err := PrimitiveRoot(q)
	if err != nil {
		return nil, fmt.Errorf("ring: building NTT table: %w", err)
	}

	bredParams := BRedParams(q)
	mredParams := MRedParams(q)

	psi := ModExp(g, (q-1)/uint64(2*N), q)
	psiInv := ModExp(psi, q-2, q) // q prime => a^(q-2) == a^-1 mod q.

	logN := log2(N)
	rootsForward := make([]uint64, N)
	rootsBackward := make([]uint64, N)
	for i := 0; i < N; i++ {
		j := bitReverse64(uint64(i), logN)
		rootsForward[i] = MForm(ModExp(psi, j, q), q, bredParams)
		rootsBackward[i] = MForm(ModExp(psiInv, j, q), q, bredParams)
	}

	nInv := MForm(ModExp(uint64(N), q-2, q), q, bredParams)

	return &Table{
		N:             N,
		Q:             q,
		QInv:          mredParams,
		BRedParams:    bredParams,
		RootsForward:  rootsForward,
		RootsBackward: rootsBackward,
		NInv:          nInv,
	}, nil
}

// reduce2q maps x in [0, 4q) down to [0, 2q), a cheap partial reduction used
// between NTT butterfly stages; the final full reduction to [0, q) happens
// once, after all stages complete.
func reduce2q(x, q uint64) uint64 {
	if x >= 2*q {
		x -= 2 * q
	}
	return x
}

// NTT applies the forward negacyclic transform to coeffs in place, taking a
// polynomial from coefficient form to evaluation form at the roots of
// X^N+1. Cooley-Tukey decimation-in-time with Montgomery-domain twiddles,
// grounded on ring/ntt.go's NTT/butterfly (lattigo).
func (t *Table) NTT(coeffs []uint64) {
	N, q, qInv := t.N, t.Q, t.QInv
	roots := t.RootsForward
	unroll4 := wideStride()

	stride := N
	for m := 1; m < N; m <<= 1 {
		stride >>= 1
		for i := 0; i < m; i++ {
			root := roots[m+i]
			j1 := 2 * i * stride
			j2 := j1 + stride
			step := 1
			if unroll4 && stride&3 == 0 {
				step = 4
			}
			for j := j1; j < j2; j += step {
				for k := j; k < j+step; k++ {
					U := reduce2q(coeffs[k], q)
					V := MRedConstant(coeffs[k+stride], root, q, qInv)
					coeffs[k] = U + V
					coeffs[k+stride] = U + 2*q - V
				}
			}
		}
	}
	for i := 0; i < N; i++ {
		coeffs[i] = CRed(reduce2q(coeffs[i], q), q)
	}
}

// InvNTT applies the inverse negacyclic transform to coeffs in place,
// bringing a polynomial from evaluation form back to coefficient form and
// scaling by N^-1. Gentleman-Sande decimation-in-frequency, grounded on
// ring/ntt.go's InvNTT/invbutterfly (lattigo).
func (t *Table) InvNTT(coeffs []uint64) {
	N, q, qInv := t.N, t.Q, t.QInv
	roots := t.RootsBackward
	unroll4 := wideStride()

	stride := 1
	for m := N; m > 1; m >>= 1 {
		half := m >> 1
		for i := 0; i < half; i++ {
			root := roots[half+i]
			j1 := 2 * i * stride
			j2 := j1 + stride
			step := 1
			if unroll4 && stride&3 == 0 {
				step = 4
			}
			for j := j1; j < j2; j += step {
				for k := j; k < j+step; k++ {
					U := coeffs[k]
					V := coeffs[k+stride]
					sum := U + V
					if sum >= q {
						sum -= q
					}
					diff := U + q - V
					if diff >= q {
						diff -= q
					}
					coeffs[k] = sum
					coeffs[k+stride] = MRed(diff, root, q, qInv)
				}
			}
		}
		stride <<= 1
	}
	for i := 0; i < N; i++ {
		coeffs[i] = MRed(coeffs[i], t.NInv, q, qInv)
	}
}

// mulSchoolbook computes the negacyclic product c = a*b mod (X^N+1) in R_q
// by direct O(N^2) convolution, reducing each partial product with X^N
// wrapping to -1. Used as the fallback path for moduli that are not
// NTT-friendly (spec.md §4.2), grounded on the plain-convolution branch of
// BFVSchemeAccelerated.multiply in original_source/.../bfv_accelerated.py,
// which falls back to schoolbook whenever the compiled NTT backend is
// unavailable.
func mulSchoolbook(a, b []uint64, q uint64, bredParams []uint64) []uint64 {
	N := len(a)
	out := make([]uint64, N)
	for i := 0; i < N; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < N; j++ {
			if b[j] == 0 {
				continue
			}
			prod := BRed(a[i], b[j], q, bredParams)
			k := i + j
			if k < N {
				out[k] = AddMod(out[k], prod, q)
			} else {
				out[k-N] = SubMod(out[k-N], prod, q)
			}
		}
	}
	return out
}
