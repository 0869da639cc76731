// SPDX-License-Identifier: MIT
// Package hensel: sentinel error set.
//
// Every error returned by this package matches one of the sentinels below
// through errors.Is. Operand mismatches are reported as *OperandError,
// which keeps both operands as structured fields and unwraps to its cause.

package hensel

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/henselcode/modarith"
)

var (
	// ErrWrongInputShape indicates a constructor argument that is neither a
	// rational nor a validly shaped encoded form: wrong digit count, digit or
	// residue out of range, prime < 2, exponent < 1, mismatched code list.
	ErrWrongInputShape = errors.New("hensel: wrong input shape")

	// ErrNoInverse indicates a non-unit divisor: gcd(value, modulus) ≠ 1, or
	// an expansion whose constant digit is divisible by p.
	ErrNoInverse = modarith.ErrNoInverse

	// ErrIncompatibleOperandTypes indicates operands of different representations.
	ErrIncompatibleOperandTypes = errors.New("hensel: incompatible operand types")

	// ErrDifferentPrimes indicates operands over different primes with equal exponents.
	ErrDifferentPrimes = errors.New("hensel: hensel codes with different primes")

	// ErrDifferentExponents indicates operands over the same primes with different exponents.
	ErrDifferentExponents = errors.New("hensel: hensel codes with different exponents")

	// ErrDifferentPrimesAndExponents indicates operands differing in both primes and exponent.
	ErrDifferentPrimesAndExponents = errors.New("hensel: hensel codes with different primes and exponents")

	// ErrBadBitRange indicates a random prime request below 2 bits, a random
	// integer request below 1 bit, or a bit length too small to supply the
	// requested number of distinct values.
	ErrBadBitRange = errors.New("hensel: bit length out of range")

	// ErrLiftingDiverged indicates Hensel lifting did not reach a · x = 1
	// within its iteration cap. Valid input never triggers it.
	ErrLiftingDiverged = errors.New("hensel: hensel lifting did not converge")

	// ErrUnknownOperation indicates an operator outside {+, -, *, /}.
	ErrUnknownOperation = errors.New("hensel: unknown operation")

	// ErrUnknownKind indicates a representation outside the three supported kinds.
	ErrUnknownKind = errors.New("hensel: unknown representation")
)

// OperandError is returned by Check and by every binary operator when the
// operands cannot be combined. Cause is one of ErrIncompatibleOperandTypes,
// ErrDifferentPrimes, ErrDifferentExponents or ErrDifferentPrimesAndExponents.
type OperandError struct {
	Cause error
	Left  Code
	Right Code
}

func (e *OperandError) Error() string {
	switch e.Cause {
	case ErrIncompatibleOperandTypes:
		return fmt.Sprintf("%v: %s is a %s while %s is a %s",
			e.Cause, describe(e.Left), kindOf(e.Left), describe(e.Right), kindOf(e.Right))
	case ErrDifferentPrimes:
		return fmt.Sprintf("%v: %s has primes %v while %s has primes %v",
			e.Cause, describe(e.Left), e.Left.Primes(), describe(e.Right), e.Right.Primes())
	case ErrDifferentExponents:
		return fmt.Sprintf("%v: %s has exponent %d while %s has exponent %d",
			e.Cause, describe(e.Left), e.Left.Exponent(), describe(e.Right), e.Right.Exponent())
	case ErrDifferentPrimesAndExponents:
		return fmt.Sprintf("%v: %s has primes %v and exponent %d while %s has primes %v and exponent %d",
			e.Cause, describe(e.Left), e.Left.Primes(), e.Left.Exponent(),
			describe(e.Right), e.Right.Primes(), e.Right.Exponent())
	}

	return fmt.Sprintf("%v", e.Cause)
}

// Unwrap exposes the sentinel cause to errors.Is.
func (e *OperandError) Unwrap() error { return e.Cause }

func describe(c Code) string {
	if isNilCode(c) {
		return "<nil>"
	}
	return c.String()
}

func kindOf(c Code) string {
	if isNilCode(c) {
		return "nil"
	}
	return c.Kind().String()
}

// shapeErrorf wraps ErrWrongInputShape with constructor context.
func shapeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrWrongInputShape}, args...)...)
}
