package modarith

import (
	"fmt"
	"math/big"
)

// CRT combines remainders r_i modulo pairwise-coprime moduli m_i into the
// unique residue modulo g = Π m_i.
//
// Algorithm:
//
//	g      = Π m_i
//	g'_i   = g / m_i
//	inv_i  = ModInverse(g'_i, m_i)
//	result = Σ g'_i · inv_i · r_i  (mod g)
//
// Errors:
//   - ErrLengthMismatch if the slices differ in length or are empty.
//   - ErrBadModulus if any modulus is < 1.
//   - ErrNoInverse (wrapped) if two moduli share a factor.
//
// Complexity: O(t) big multiplications and t inversions for t moduli.
func CRT(moduli, remainders []*big.Int) (*big.Int, error) {
	if len(moduli) == 0 || len(moduli) != len(remainders) {
		return nil, ErrLengthMismatch
	}

	g := big.NewInt(1)
	for _, m := range moduli {
		if m.Sign() <= 0 {
			return nil, ErrBadModulus
		}
		g.Mul(g, m)
	}

	var (
		sum  = new(big.Int)
		gi   = new(big.Int)
		term = new(big.Int)
	)
	for i, m := range moduli {
		gi.Quo(g, m)
		inv, err := ModInverse(gi, m)
		if err != nil {
			return nil, fmt.Errorf("crt: modulus %d (%s): %w", i, m, err)
		}
		term.Mul(gi, inv)
		term.Mul(term, remainders[i])
		sum.Add(sum, term)
	}

	return sum.Mod(sum, g), nil
}

// Product returns Π values, or 1 for an empty slice.
func Product(values []*big.Int) *big.Int {
	p := big.NewInt(1)
	for _, v := range values {
		p.Mul(p, v)
	}

	return p
}
