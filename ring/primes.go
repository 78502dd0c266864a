package ring

import (
	"fmt"
	"math/big"
)

// IsPrime reports whether q is probably prime (Baillie-PSW via math/big,
// 20 Miller-Rabin rounds), matching lattigo's ring.IsPrime/Int.IsPrime.
func IsPrime(q uint64) bool {
	return new(big.Int).SetUint64(q).ProbablyPrime(20)
}

// GenNTTFriendlyPrime searches downward from the largest value with bitLen
// bits for a prime q satisfying q ≡ 1 (mod 2N), the condition required for a
// primitive 2N-th root of unity to exist mod q (§3, §4.2). N must be a power
// of two.
func GenNTTFriendlyPrime(bitLen, N int) (uint64, error) {
	if bitLen < 2 || bitLen > 62 {
		return 0, fmt.Errorf("ring: bit length %d out of supported range [2,62]", bitLen)
	}
	twoN := uint64(2 * N)
	upper := (uint64(1) << uint(bitLen)) - 1
	// Largest candidate <= upper with candidate ≡ 1 (mod 2N).
	candidate := upper - (upper % twoN) + 1
	if candidate > upper {
		candidate -= twoN
	}
	for candidate > twoN {
		if IsPrime(candidate) {
			return candidate, nil
		}
		candidate -= twoN
	}
	return 0, fmt.Errorf("ring: no NTT-friendly %d-bit prime found for N=%d", bitLen, N)
}

// CheckNTTFriendly reports whether q is prime and q ≡ 1 (mod 2N).
func CheckNTTFriendly(q uint64, N int) error {
	if !IsPrime(q) {
		return fmt.Errorf("ring: modulus %d is not prime", q)
	}
	twoN := uint64(2 * N)
	if q%twoN != 1 {
		return fmt.Errorf("ring: modulus %d is not congruent to 1 mod 2N=%d", q, twoN)
	}
	return nil
}

// factorize returns the distinct prime factors of m via trial division
// followed by Pollard's rho for any large remaining cofactor. m = q-1 for the
// primes this package deals with (at most 62 bits), so this completes
// quickly in practice.
func factorize(m uint64) []uint64 {
	factors := make(map[uint64]struct{})
	n := m
	for _, p := range smallPrimes {
		if p*p > n {
			break
		}
		for n%p == 0 {
			factors[p] = struct{}{}
			n /= p
		}
	}
	if n > 1 {
		for _, p := range pollardRhoFactors(n) {
			factors[p] = struct{}{}
		}
	}
	out := make([]uint64, 0, len(factors))
	for p := range factors {
		out = append(out, p)
	}
	return out
}

var smallPrimes = sieve(100000)

func sieve(limit int) []uint64 {
	composite := make([]bool, limit+1)
	var primes []uint64
	for i := 2; i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// pollardRhoFactors fully factors n (assumed to have no factor already
// removed by trial division below 10^5) into its distinct primes.
func pollardRhoFactors(n uint64) []uint64 {
	if n == 1 {
		return nil
	}
	if IsPrime(n) {
		return []uint64{n}
	}
	d := pollardRho(n)
	left := pollardRhoFactors(d)
	right := pollardRhoFactors(n / d)
	return append(left, right...)
}

func pollardRho(n uint64) uint64 {
	if n%2 == 0 {
		return 2
	}
	bredParams := BRedParams(n)
	for c := uint64(1); ; c++ {
		f := func(x uint64) uint64 {
			return AddMod(BRed(x, x, n, bredParams), c, n)
		}
		x, y, d := uint64(2), uint64(2), uint64(1)
		for d == 1 {
			x = f(x)
			y = f(f(y))
			diff := x
			if y > x {
				diff = y - x
			} else {
				diff = x - y
			}
			if diff == 0 {
				d = n
				break
			}
			d = gcd(diff, n)
		}
		if d != n {
			return d
		}
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// PrimitiveRoot finds the smallest primitive root g of prime q, using the
// factorization of q-1: g is primitive iff g^((q-1)/p) != 1 mod q for every
// prime factor p of q-1. Grounded on ring/table.go's PrimitiveRoot (lattigo).
func PrimitiveRoot(q uint64) (uint64, []uint64, error) {
	if !IsPrime(q) {
		return 0, nil, fmt.Errorf("ring: %d is not prime", q)
	}
	factors := factorize(q - 1)
	for g := uint64(2); g < q; g++ {
		isPrimitive := true
		for _, f := range factors {
			if ModExp(g, (q-1)/f, q) == 1 {
				isPrimitive = false
				break
			}
		}
		if isPrimitive {
			return g, factors, nil
		}
	}
	return 0, nil, fmt.Errorf("ring: no primitive root found for %d", q)
}
