// Package rlwe implements the key types and key-switching machinery shared
// by ring-LWE based schemes: secret/public keys, digit-decomposed
// relinearization keys, and Galois (rotation) keys. Grounded on
// rlwe/keys.go + rlwe/keygenerator.go (lattigo), collapsed to the
// single-modulus setting bfv builds on.
package rlwe

import (
	"fmt"
	"math/bits"

	"github.com/latticeforge/bfv/ring"
)

// DecompositionParams describes how an evaluation key digit-decomposes a
// ring element of degree N modulo q into Beta base-W digits, the standard
// technique for bounding key-switching noise growth (spec.md §9's
// recommended upgrade over a single-component relinearization key).
type DecompositionParams struct {
	LogBase int // bits per digit
	Beta    int // number of digits
}

// NewDecompositionParams picks Beta = ceil(log2(q) / logBase) digits for a
// modulus q and a chosen digit width logBase.
func NewDecompositionParams(q uint64, logBase int) (DecompositionParams, error) {
	if logBase <= 0 || logBase > 62 {
		return DecompositionParams{}, fmt.Errorf("rlwe: logBase=%d out of range", logBase)
	}
	logQ := bits.Len64(q)
	beta := (logQ + logBase - 1) / logBase
	return DecompositionParams{LogBase: logBase, Beta: beta}, nil
}

// Digit returns the i-th decomposition base value, w^i where w = 2^LogBase,
// computed mod q.
func (d DecompositionParams) Digit(i int, q uint64) uint64 {
	return ring.ModExp(uint64(1)<<uint(d.LogBase), uint64(i), q)
}

// DecomposeSingle extracts the i-th base-W digit of the scalar x (x assumed
// already reduced mod q and treated as an unsigned Beta*LogBase-bit value).
func DecomposeSingle(x uint64, i, logBase int) uint64 {
	return (x >> uint(i*logBase)) & ((uint64(1) << uint(logBase)) - 1)
}
