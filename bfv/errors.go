package bfv

import "errors"

// Sentinel errors per spec.md §7: callers match with errors.Is, wrapped
// error chains preserve the underlying cause via %w. Grounded on the error
// style of bfv/evaluator.go + bfv/params.go (lattigo), which return plain
// fmt.Errorf today; this module upgrades those to sentinels so callers can
// branch on failure class without string matching.
var (
	// ErrInvalidParameters is returned when a ParametersLiteral fails
	// validation: LogN outside [1, 20], T < 2, neither Q nor LogQ set, a
	// modulus that is not prime / not NTT-friendly for N (spec.md §9), or
	// Q <= T.
	ErrInvalidParameters = errors.New("bfv: invalid parameters")

	// ErrCiphertextState is returned when an operation is attempted on a
	// ciphertext of the wrong size for that operation, e.g. Multiply on a
	// size-3 ciphertext, or Relinearize on a size-2 one (spec.md §4.8's
	// ciphertext-size state machine).
	ErrCiphertextState = errors.New("bfv: ciphertext is not in a valid state for this operation")

	// ErrShapeMismatch is returned when two operands were built from
	// different Parameters (different N, t, or q) and cannot be combined.
	ErrShapeMismatch = errors.New("bfv: operand shape mismatch")

	// ErrMissingKey is returned when an operation needs a key that was not
	// supplied, e.g. Relinearize without a RelinearizationKey, or
	// RotateColumns without a GaloisKey for the requested amount.
	ErrMissingKey = errors.New("bfv: required key not provided")

	// ErrEncodingOverflow is returned when Encode is given more values than
	// the ring degree N has coefficient slots for (spec.md §4.4).
	ErrEncodingOverflow = errors.New("bfv: too many values for available slots")

	// ErrDecryptionFailed is returned when a decrypted value's rounding
	// step lands exactly halfway between two integers (t*v mod q == q/2),
	// which the canonical rounding rule cannot resolve unambiguously
	// (spec.md §4.5, §7).
	ErrDecryptionFailed = errors.New("bfv: decryption rounding failed")
)
