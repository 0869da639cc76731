// SPDX-License-Identifier: MIT

package modarith

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoInverse is matched by every *NoInverseError.
	ErrNoInverse = errors.New("modarith: no modular inverse exists")

	// ErrLengthMismatch indicates CRT input slices of different or zero length.
	ErrLengthMismatch = errors.New("modarith: moduli and remainders length mismatch")

	// ErrOutOfBound is returned by ReconstructChecked when the residue does
	// not correspond to a rational inside the reconstruction bound.
	ErrOutOfBound = errors.New("modarith: residue outside reconstruction bound")

	// ErrBadModulus indicates a non-positive modulus.
	ErrBadModulus = errors.New("modarith: modulus must be positive")
)

// NoInverseError carries the operands of a failed ModInverse call.
type NoInverseError struct {
	A *big.Int
	M *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("modarith: %s has no inverse modulo %s", e.A, e.M)
}

// Is reports ErrNoInverse so callers can branch with errors.Is.
func (e *NoInverseError) Is(target error) bool {
	return target == ErrNoInverse
}
