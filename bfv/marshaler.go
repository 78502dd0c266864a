package bfv

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/latticeforge/bfv/ring"
)

// Wire format (spec.md §6's persisted-state layout): a fixed header
// (magic, logN, Q, T) followed by one uint64 per coefficient per ring
// component, little-endian throughout. Grounded on bfv/marshaler.go's
// MarshalBinary/UnmarshalBinary structure (lattigo), simplified to a single
// modulus and no RNS level metadata.
const wireMagic uint32 = 0x42465631 // "BFV1"

// MarshalBinary serializes pt's coefficients, prefixed with a header
// identifying the parameter set it was produced under.
func (pt *Plaintext) MarshalBinary(params Parameters) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeHeader(&buf, params); err != nil {
		return nil, err
	}
	if err := writePoly(&buf, pt.Value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalPlaintext parses bytes produced by MarshalBinary, validating
// the header against params.
func UnmarshalPlaintext(data []byte, params Parameters) (*Plaintext, error) {
	r := bytes.NewReader(data)
	if err := readHeader(r, params); err != nil {
		return nil, err
	}
	p, err := readPoly(r, params.N())
	if err != nil {
		return nil, err
	}
	return &Plaintext{Params: params, Value: p}, nil
}

// MarshalBinary serializes ct's components, prefixed with a header
// identifying the parameter set and the ciphertext's size.
func (ct *Ciphertext) MarshalBinary(params Parameters) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeHeader(&buf, params); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(ct.Size())); err != nil {
		return nil, fmt.Errorf("bfv: writing ciphertext size: %w", err)
	}
	for _, p := range ct.Value {
		if err := writePoly(&buf, p); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalCiphertext parses bytes produced by Ciphertext.MarshalBinary,
// validating the header against params.
func UnmarshalCiphertext(data []byte, params Parameters) (*Ciphertext, error) {
	r := bytes.NewReader(data)
	if err := readHeader(r, params); err != nil {
		return nil, err
	}
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("bfv: reading ciphertext size: %w", err)
	}
	value := make([]*ring.Poly, size)
	for i := range value {
		p, err := readPoly(r, params.N())
		if err != nil {
			return nil, err
		}
		value[i] = p
	}
	return &Ciphertext{Params: params, Value: value}, nil
}

func writeHeader(buf *bytes.Buffer, params Parameters) error {
	if err := binary.Write(buf, binary.LittleEndian, wireMagic); err != nil {
		return fmt.Errorf("bfv: writing header magic: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(params.LogN())); err != nil {
		return fmt.Errorf("bfv: writing header logN: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, params.Q()); err != nil {
		return fmt.Errorf("bfv: writing header Q: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, params.T()); err != nil {
		return fmt.Errorf("bfv: writing header T: %w", err)
	}
	return nil
}

func readHeader(r *bytes.Reader, params Parameters) error {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return fmt.Errorf("bfv: reading header magic: %w", err)
	}
	if magic != wireMagic {
		return fmt.Errorf("%w: bad magic %x", ErrShapeMismatch, magic)
	}
	var logN uint32
	var q, t uint64
	if err := binary.Read(r, binary.LittleEndian, &logN); err != nil {
		return fmt.Errorf("bfv: reading header logN: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &q); err != nil {
		return fmt.Errorf("bfv: reading header Q: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
		return fmt.Errorf("bfv: reading header T: %w", err)
	}
	if int(logN) != params.LogN() || q != params.Q() || t != params.T() {
		return fmt.Errorf("%w: serialized under a different parameter set", ErrShapeMismatch)
	}
	return nil
}

func writePoly(buf *bytes.Buffer, p *ring.Poly) error {
	for _, c := range p.Coeffs {
		if err := binary.Write(buf, binary.LittleEndian, c); err != nil {
			return fmt.Errorf("bfv: writing coefficient: %w", err)
		}
	}
	return nil
}

func readPoly(r *bytes.Reader, N int) (*ring.Poly, error) {
	p := ring.NewPoly(N)
	for i := 0; i < N; i++ {
		if err := binary.Read(r, binary.LittleEndian, &p.Coeffs[i]); err != nil {
			return nil, fmt.Errorf("bfv: reading coefficient: %w", err)
		}
	}
	return p, nil
}
