package ring

import "golang.org/x/exp/constraints"

func minInt[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxInt[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func absInt[T constraints.Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// bitReverse64 reverses the lowest bits-many bits of x, used to permute the
// NTT twiddle-factor table into bit-reversed order. Grounded on
// utils.BitReverse64 (lattigo).
func bitReverse64(index uint64, bits int) uint64 {
	var r uint64
	for i := 0; i < bits; i++ {
		r |= ((index >> uint(i)) & 1) << uint(bits-1-i)
	}
	return r
}

// log2 returns log2(x) for a power-of-two x.
func log2(x int) int {
	n := 0
	for x > 1 {
		x >>= 1
		n++
	}
	return n
}
