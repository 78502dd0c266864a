// Package ring implements arithmetic in the negacyclic quotient ring
// R_q = Z_q[X]/(X^N+1) over a single NTT-friendly modulus q.
package ring

import (
	"math/big"
	"math/bits"
)

// MForm switches a to the Montgomery domain by computing a*2^64 mod q.
// Only used at setup time (NTT table precomputation), so a big.Int
// reduction is acceptable here.
func MForm(a, q uint64, bredParams []uint64) (r uint64) {
	x := new(big.Int).SetUint64(a)
	x.Lsh(x, 64)
	x.Mod(x, new(big.Int).SetUint64(q))
	return x.Uint64()
}

// InvMForm switches a out of the Montgomery domain by computing
// a*(1/2^64) mod q.
func InvMForm(a, q, qInv uint64) (r uint64) {
	r, _ = bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// MRedParams computes qInv = q^-1 mod 2^64 as q^(2^63-1) by repeated
// squaring (odd q has order dividing 2^62 mod 2^64), the constant required
// by the subtraction-form MRed/MRedConstant below.
func MRedParams(q uint64) (qInv uint64) {
	qInv = 1
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return qInv
}

// MRed computes x*y*(1/2^64) mod q (Montgomery multiplication). x is assumed
// to already be in the Montgomery domain; the result is too.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	m := alo * qInv
	mhi, _ := bits.Mul64(m, q)
	r = ahi - mhi + q
	if r >= q {
		r -= q
	}
	return
}

// MRedConstant is MRed but leaves the result in [0, 2q) — used inside the NTT
// butterfly where a final CRed sweep happens once at the end.
func MRedConstant(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	m := alo * qInv
	mhi, _ := bits.Mul64(m, q)
	return ahi - mhi + q
}

// BRedParams computes the Barrett reduction constants for q: floor(2^128/q)
// split into high/low 64-bit words.
func BRedParams(q uint64) (params []uint64) {
	bigR := new(big.Int).Lsh(big.NewInt(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))
	mhi := new(big.Int).Rsh(bigR, 64).Uint64()
	mlo := bigR.Uint64()
	return []uint64{mhi, mlo}
}

// BRedAdd reduces x (up to 64 bits) modulo q using Barrett reduction.
func BRedAdd(x, q uint64, u []uint64) (r uint64) {
	s0, _ := bits.Mul64(x, u[0])
	r = x - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRed computes the exact mathematical product x*y mod q using a 128-bit
// intermediate and Barrett reduction. This is the L0 contract: correct for
// all 0 <= x,y < q, including when q is close to 2^60.
func BRed(x, y, q uint64, u []uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)

	// (ahi:alo) * (u[0]:u[1]) >> 128, the Barrett quotient estimate.
	lhi, _ := bits.Mul64(alo, u[1])
	mhi, mlo := bits.Mul64(alo, u[0])
	s0, carry := bits.Add64(mlo, lhi, 0)
	s1 := mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q
	if r >= q {
		r -= q
	}
	return
}

// CRed conditionally subtracts q once: returns a mod q for a in [0, 2q).
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// AddMod returns (x+y) mod q for x, y in [0, q).
func AddMod(x, y, q uint64) uint64 {
	return CRed(x+y, q)
}

// SubMod returns (x-y) mod q for x, y in [0, q).
func SubMod(x, y, q uint64) uint64 {
	if x >= y {
		return x - y
	}
	return q - y + x
}

// NegMod returns (-x) mod q for x in [0, q).
func NegMod(x, q uint64) uint64 {
	if x == 0 {
		return 0
	}
	return q - x
}

// MulMod returns the exact product x*y mod q for x, y in [0, q), via a
// 128-bit intermediate. Naive 64-bit multiplication overflows once q exceeds
// ~32 bits and is never used in this package.
func MulMod(x, y, q uint64, bredParams []uint64) uint64 {
	return BRed(x, y, q, bredParams)
}

// CenterMod maps x in [0, q) to the centered representative in (-q/2, q/2].
func CenterMod(x, q uint64) int64 {
	if x > q>>1 {
		return int64(x) - int64(q)
	}
	return int64(x)
}

// ModExp computes x^e mod q by square-and-multiply.
func ModExp(x, e, q uint64) uint64 {
	params := BRedParams(q)
	result := uint64(1) % q
	base := x % q
	for e > 0 {
		if e&1 == 1 {
			result = BRed(result, base, q, params)
		}
		base = BRed(base, base, q, params)
		e >>= 1
	}
	return result
}
