package rlwe

import "github.com/latticeforge/bfv/ring"

// SecretKey holds the ternary polynomial s used to decrypt and to generate
// every other key. Grounded on rlwe/secretkey.go + bfv/keys.go's SecretKey
// (lattigo).
type SecretKey struct {
	Value *ring.Poly
}

// CopyNew returns a deep copy of sk.
func (sk *SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: sk.Value.CopyNew()}
}

// PublicKey holds (b, a) with b = -(a*s + e), the encryption of zero under
// sk that fresh ciphertexts are built from. Grounded on bfv/keys.go's
// PublicKey (lattigo, lca1-era).
type PublicKey struct {
	Value [2]*ring.Poly
}

// CopyNew returns a deep copy of pk.
func (pk *PublicKey) CopyNew() *PublicKey {
	return &PublicKey{Value: [2]*ring.Poly{pk.Value[0].CopyNew(), pk.Value[1].CopyNew()}}
}

// EvaluationKey is a digit-decomposed key-switching key: Beta pairs
// (b_i, a_i), each an RLWE encryption under skOut of w^i * skIn, where
// w = 2^Decomposition.LogBase. Used for both relinearization (skIn = s^2)
// and rotation (skIn = automorphism(s)). Grounded on bfv/keys.go's
// SwitchingKey (lattigo, lca1-era) and rlwe/evaluationkey.go's
// generalization to an arbitrary digit count.
type EvaluationKey struct {
	Decomposition DecompositionParams
	Value         [][2]*ring.Poly
}

// CopyNew returns a deep copy of evk.
func (evk *EvaluationKey) CopyNew() *EvaluationKey {
	v := make([][2]*ring.Poly, len(evk.Value))
	for i, pair := range evk.Value {
		v[i] = [2]*ring.Poly{pair[0].CopyNew(), pair[1].CopyNew()}
	}
	return &EvaluationKey{Decomposition: evk.Decomposition, Value: v}
}

// RelinearizationKey is the EvaluationKey that switches an encryption under
// s^2 back to an encryption under s, used after a ciphertext multiplication
// (spec.md §4.8).
type RelinearizationKey struct {
	*EvaluationKey
}

// GaloisKey is the EvaluationKey that switches an encryption under
// automorphism(s, GaloisElement) back to an encryption under s, used to
// implement plaintext-slot rotation (spec.md §9's resolved Open Question:
// a true automorphism rather than a coefficient shift).
type GaloisKey struct {
	GaloisElement uint64
	*EvaluationKey
}

// GaloisKeySet indexes GaloisKeys by the Galois element they switch from,
// mirroring rlwe.RotationKeySet (lattigo).
type GaloisKeySet struct {
	Keys map[uint64]*GaloisKey
}

// NewGaloisKeySet returns an empty key set.
func NewGaloisKeySet() *GaloisKeySet {
	return &GaloisKeySet{Keys: make(map[uint64]*GaloisKey)}
}

// Add inserts gk into the set, indexed by its Galois element.
func (s *GaloisKeySet) Add(gk *GaloisKey) {
	s.Keys[gk.GaloisElement] = gk
}

// Get retrieves the key for a given Galois element, if present.
func (s *GaloisKeySet) Get(galEl uint64) (*GaloisKey, bool) {
	k, ok := s.Keys[galEl]
	return k, ok
}
