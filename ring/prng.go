package ring

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// clockChunkSize is lattigo's CRPGenerator chunk size. Clock does not use
// it: each Clock call reads exactly len(out) bytes from the XOF.
const clockChunkSize = 64

// KeyedPRNG is a deterministic, seedable CSPRNG built on blake2b's extendable
// output function (XOF). Given the same key, it reproduces the same stream,
// so a fixed key gives reproducible samples (the tests rely on this). Keys
// store every sampled component, including the `a` of a public key; nothing
// regenerates them from the seed. Grounded on
// ring/prng.go's CRPGenerator (lattigo, lca1-era), swapping the
// unspecified underlying stream cipher for blake2b's XOF.
type KeyedPRNG struct {
	xof io.Reader
	key []byte
}

// NewKeyedPRNG constructs a PRNG seeded by key. If key is nil, a random
// 32-byte key is drawn from crypto/rand first (matching lattigo's
// NewPRNG / NewKeyedPRNG split).
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("ring: seeding PRNG: %w", err)
		}
	}
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("ring: constructing blake2b XOF: %w", err)
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &KeyedPRNG{xof: xof, key: k}, nil
}

// Key returns the seed this PRNG was constructed with.
func (p *KeyedPRNG) Key() []byte {
	k := make([]byte, len(p.key))
	copy(k, p.key)
	return k
}

// Clock fills out with pseudo-random bytes drawn from the XOF stream.
func (p *KeyedPRNG) Clock(out []byte) error {
	if _, err := io.ReadFull(p.xof, out); err != nil {
		return fmt.Errorf("ring: clocking PRNG: %w", err)
	}
	return nil
}

// clockUint64 draws a single pseudo-random uint64 from the PRNG stream.
func (p *KeyedPRNG) clockUint64() (uint64, error) {
	var buf [8]byte
	if err := p.Clock(buf[:]); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}
	return v, nil
}
