package modarith

import (
	"fmt"
	"math/big"
)

// Bound returns n = floor(sqrt((m-1)/2)), the largest numerator and
// denominator magnitude that is guaranteed to reconstruct uniquely from a
// residue modulo m. Moduli below 3 yield 0.
func Bound(m *big.Int) *big.Int {
	n := new(big.Int).Sub(m, one)
	if n.Sign() <= 0 {
		return n.SetInt64(0)
	}
	n.Quo(n, two)

	return n.Sqrt(n)
}

// Encode maps r = a/b to a·b⁻¹ mod m.
//
// Errors:
//   - *NoInverseError when the denominator shares a factor with m.
func Encode(r *big.Rat, m *big.Int) (*big.Int, error) {
	inv, err := ModInverse(r.Denom(), m)
	if err != nil {
		return nil, err
	}
	h := new(big.Int).Mul(r.Num(), inv)

	return h.Mod(h, m), nil
}

// Reconstruct recovers the rational encoded by residue h modulo m.
//
// Algorithm:
//  1. n = Bound(m).
//  2. Run the bounded recursion on (m, h) until the remainder x ≤ n; let i
//     be the iteration count and y the coefficient of h at that point.
//  3. Return ((-1)^(i+1)·x) / ((-1)^(i+1)·y), normalized by big.Rat.
//
// The result is exact for residues of rationals inside the bound. Residues
// of rationals outside it produce an unrelated rational without error.
//
// Complexity: O(log m) division steps.
func Reconstruct(m, h *big.Int) *big.Rat {
	st := eea(m, h, Bound(m), true)
	num := new(big.Int).Set(st.X1)
	den := new(big.Int).Set(st.Y1)
	if (st.Iterations+1)%2 != 0 {
		num.Neg(num)
		den.Neg(den)
	}
	if den.Sign() == 0 {
		return new(big.Rat)
	}

	return new(big.Rat).SetFrac(num, den)
}

// ReconstructChecked is Reconstruct plus verification: the result must lie
// inside Bound(m) and must encode back to h.
//
// Errors:
//   - ErrBadModulus for m < 1.
//   - ErrOutOfBound when h is not the image of an in-bound rational.
func ReconstructChecked(m, h *big.Int) (*big.Rat, error) {
	if m.Sign() <= 0 {
		return nil, ErrBadModulus
	}
	var (
		r   = Reconstruct(m, h)
		n   = Bound(m)
		num = new(big.Int).Abs(r.Num())
	)
	if num.Cmp(n) > 0 || r.Denom().Cmp(n) > 0 {
		return nil, fmt.Errorf("%w: residue %s modulo %s", ErrOutOfBound, h, m)
	}
	back, err := Encode(r, m)
	if err != nil {
		return nil, fmt.Errorf("%w: residue %s modulo %s", ErrOutOfBound, h, m)
	}
	if back.Cmp(new(big.Int).Mod(h, m)) != 0 {
		return nil, fmt.Errorf("%w: residue %s modulo %s", ErrOutOfBound, h, m)
	}

	return r, nil
}
