// SPDX-License-Identifier: MIT

package hensel

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"github.com/katalvlaran/henselcode/modarith"
)

// Polynomial is a truncated power series in the formal variable p: the
// coefficient at index i multiplies p^i, index 0 is least significant.
//
// Fixed-length polynomials (the default) keep exactly len(coefficients)
// digits through every operation. Expanding polynomials keep the full
// product of a multiplication, carry digits included, until Truncate.
type Polynomial struct {
	prime        *big.Int
	coefficients []*big.Int
	fixedLength  bool
}

// NewPolynomial returns a fixed-length polynomial.
//
// Errors:
//   - ErrWrongInputShape for prime < 2, no coefficients, or any coefficient
//     outside [0, p).
func NewPolynomial(prime *big.Int, coefficients []*big.Int) (*Polynomial, error) {
	return newPolynomial(prime, coefficients, true)
}

// NewExpandingPolynomial returns a polynomial whose products are not
// truncated.
func NewExpandingPolynomial(prime *big.Int, coefficients []*big.Int) (*Polynomial, error) {
	return newPolynomial(prime, coefficients, false)
}

func newPolynomial(prime *big.Int, coefficients []*big.Int, fixed bool) (*Polynomial, error) {
	if err := validateParams(prime, 1); err != nil {
		return nil, err
	}
	if len(coefficients) == 0 {
		return nil, shapeErrorf("polynomial needs at least one coefficient")
	}
	if err := validateDigits(prime, coefficients); err != nil {
		return nil, err
	}
	return &Polynomial{
		prime:        new(big.Int).Set(prime),
		coefficients: copyInts(coefficients),
		fixedLength:  fixed,
	}, nil
}

func validateDigits(prime *big.Int, digits []*big.Int) error {
	for i, d := range digits {
		if d == nil || d.Sign() < 0 || d.Cmp(prime) >= 0 {
			return shapeErrorf("digit %d must be an integer in [0, %s), got %v", i, prime, d)
		}
	}
	return nil
}

// Prime returns p.
func (f *Polynomial) Prime() *big.Int { return new(big.Int).Set(f.prime) }

// Coefficients returns a copy of the digits, least significant first.
func (f *Polynomial) Coefficients() []*big.Int { return copyInts(f.coefficients) }

// Len returns the number of digits.
func (f *Polynomial) Len() int { return len(f.coefficients) }

// FixedLength reports whether multiplication truncates.
func (f *Polynomial) FixedLength() bool { return f.fixedLength }

// Equal reports whether f and g share prime and digits.
func (f *Polynomial) Equal(g *Polynomial) bool {
	return f.prime.Cmp(g.prime) == 0 && equalPrimes(f.coefficients, g.coefficients)
}

// IsOne reports whether f == [1, 0, ..., 0].
func (f *Polynomial) IsOne() bool {
	if len(f.coefficients) == 0 || f.coefficients[0].Cmp(big.NewInt(1)) != 0 {
		return false
	}
	for _, c := range f.coefficients[1:] {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Value returns Σ digit[i]·p^i, the residue this digit vector stands for.
func (f *Polynomial) Value() *big.Int {
	var (
		v   = new(big.Int)
		pow = big.NewInt(1)
		t   = new(big.Int)
	)
	for _, d := range f.coefficients {
		v.Add(v, t.Mul(d, pow))
		pow.Mul(pow, f.prime)
	}
	return v
}

// Truncate keeps the first k digits (zero-padding shorter polynomials) and
// returns a fixed-length polynomial. k below 1 is clamped to 1: a
// polynomial always has a constant digit.
func (f *Polynomial) Truncate(k int) *Polynomial {
	if k < 1 {
		k = 1
	}
	out := make([]*big.Int, k)
	for i := range out {
		if i < len(f.coefficients) {
			out[i] = new(big.Int).Set(f.coefficients[i])
		} else {
			out[i] = new(big.Int)
		}
	}
	return &Polynomial{prime: new(big.Int).Set(f.prime), coefficients: out, fixedLength: true}
}

// String renders "d0 + d1p + d2p^2 + ...".
func (f *Polynomial) String() string {
	terms := make([]string, len(f.coefficients))
	for i, d := range f.coefficients {
		switch i {
		case 0:
			terms[i] = d.String()
		case 1:
			terms[i] = d.String() + "p"
		default:
			terms[i] = fmt.Sprintf("%sp^%d", d, i)
		}
	}
	return strings.Join(terms, " + ")
}

func (f *Polynomial) compatible(g *Polynomial) error {
	if g == nil {
		return shapeErrorf("polynomial operand is nil")
	}
	if f.prime.Cmp(g.prime) != 0 {
		return shapeErrorf("polynomials over different primes %s and %s", f.prime, g.prime)
	}
	if len(f.coefficients) != len(g.coefficients) {
		return shapeErrorf("polynomials of different lengths %d and %d", len(f.coefficients), len(g.coefficients))
	}
	return nil
}

func (f *Polynomial) derive(coefficients []*big.Int) *Polynomial {
	return &Polynomial{prime: f.prime, coefficients: coefficients, fixedLength: f.fixedLength}
}

// Add is the positional ring sum over (Z/pZ)^k: (f[i] + g[i]) mod p, no carry.
func (f *Polynomial) Add(g *Polynomial) (*Polynomial, error) {
	if err := f.compatible(g); err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(f.coefficients))
	for i := range out {
		out[i] = new(big.Int).Add(f.coefficients[i], g.coefficients[i])
		out[i].Mod(out[i], f.prime)
	}
	return f.derive(out), nil
}

// Sub is the positional ring difference: (f[i] − g[i]) mod p, no borrow.
func (f *Polynomial) Sub(g *Polynomial) (*Polynomial, error) {
	if err := f.compatible(g); err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(f.coefficients))
	for i := range out {
		out[i] = new(big.Int).Sub(f.coefficients[i], g.coefficients[i])
		out[i].Mod(out[i], f.prime)
	}
	return f.derive(out), nil
}

// AddCarry adds f and g as base-p integers, carrying left to right and
// dropping the final carry: the sum in Z/p^kZ.
func (f *Polynomial) AddCarry(g *Polynomial) (*Polynomial, error) {
	if err := f.compatible(g); err != nil {
		return nil, err
	}
	return f.derive(carryCombine(f.prime, f.coefficients, g.coefficients, false)), nil
}

// SubCarry subtracts g from f as base-p integers with borrow, wrapping
// modulo p^k.
func (f *Polynomial) SubCarry(g *Polynomial) (*Polynomial, error) {
	if err := f.compatible(g); err != nil {
		return nil, err
	}
	return f.derive(carryCombine(f.prime, f.coefficients, g.coefficients, true)), nil
}

func carryCombine(p *big.Int, a, b []*big.Int, subtract bool) []*big.Int {
	var (
		out   = make([]*big.Int, len(a))
		carry = new(big.Int)
		s     = new(big.Int)
	)
	for i := range a {
		if subtract {
			s.Sub(a[i], b[i])
		} else {
			s.Add(a[i], b[i])
		}
		s.Add(s, carry)
		// Euclidean DivMod keeps the digit in [0, p) and floors the carry,
		// so a borrow shows up as carry = −1.
		out[i] = new(big.Int)
		carry.DivMod(s, p, out[i])
	}
	return out
}

// Mul is the Cauchy product with carry.
//
// Position i of the raw product is Σ_{j=0..i} f[j]·g[i−j]; the running
// carry is added, the digit is (carry + sum) mod p and the carry becomes
// (carry + sum) div p. Fixed-length polynomials keep len(f) digits
// (higher powers of p are dropped); expanding polynomials keep every
// position plus the trailing carry digits.
//
// Complexity: O(k²) digit products.
func (f *Polynomial) Mul(g *Polynomial) (*Polynomial, error) {
	if f.fixedLength {
		if err := f.compatible(g); err != nil {
			return nil, err
		}
		digits, _ := cauchyProduct(f.prime, f.coefficients, g.coefficients, len(f.coefficients))
		return f.derive(digits), nil
	}

	if g == nil || f.prime.Cmp(g.prime) != 0 {
		return nil, shapeErrorf("polynomial operands over different primes or nil")
	}
	digits, carry := cauchyProduct(f.prime, f.coefficients, g.coefficients, len(f.coefficients)+len(g.coefficients)-1)
	for carry.Sign() > 0 {
		d := new(big.Int)
		carry.DivMod(carry, f.prime, d)
		digits = append(digits, d)
	}
	return f.derive(digits), nil
}

// cauchyProduct returns the first length digits of a·b in base p and the
// carry left over beyond them.
func cauchyProduct(p *big.Int, a, b []*big.Int, length int) ([]*big.Int, *big.Int) {
	var (
		out   = make([]*big.Int, length)
		carry = new(big.Int)
		sum   = new(big.Int)
		term  = new(big.Int)
	)
	for i := 0; i < length; i++ {
		sum.Set(carry)
		for j := 0; j <= i; j++ {
			if j >= len(a) || i-j >= len(b) {
				continue
			}
			sum.Add(sum, term.Mul(a[j], b[i-j]))
		}
		out[i] = new(big.Int)
		carry.DivMod(sum, p, out[i])
	}
	return out, carry
}

// Inverse computes f⁻¹ in Z/p^kZ by Hensel lifting.
//
// Algorithm:
//  1. f[0] must be a unit modulo p, else ErrNoInverse.
//  2. Seed x = [f[0]⁻¹ mod p, r1, ..., r(k-1)] with ri drawn from src.
//  3. While f·x ≠ [1, 0, ..., 0]: x ← 2x − f·x·x (carrying ring operations,
//     every product truncated to k digits).
//
// Each step doubles the number of correct low-order digits, so at most
// ⌈log2 k⌉ steps run. Hitting the cap returns ErrLiftingDiverged.
// A nil src uses a fresh SeededSource(0).
func (f *Polynomial) Inverse(src RandomSource) (*Polynomial, error) {
	return f.inverse(src, 0)
}

func (f *Polynomial) inverse(src RandomSource, limit int) (*Polynomial, error) {
	a := f.Truncate(len(f.coefficients))
	k := len(a.coefficients)
	if src == nil {
		src = NewSeededSource(0)
	}
	if limit <= 0 {
		limit = bits.Len(uint(k)) + 1
	}

	c0inv, err := modarith.ModInverse(a.coefficients[0], a.prime)
	if err != nil {
		return nil, fmt.Errorf("hensel: constant digit is not a unit: %w", err)
	}
	seed := make([]*big.Int, k)
	seed[0] = c0inv
	for i := 1; i < k; i++ {
		if seed[i], err = src.Digit(a.prime); err != nil {
			return nil, err
		}
	}
	x := a.derive(seed)

	for step := 0; ; step++ {
		ax, _ := a.Mul(x)
		if ax.IsOne() {
			return x, nil
		}
		if step >= limit {
			return nil, fmt.Errorf("%w after %d steps", ErrLiftingDiverged, step)
		}
		axx, _ := ax.Mul(x)
		twoX, _ := x.AddCarry(x)
		if x, err = twoX.SubCarry(axx); err != nil {
			return nil, err
		}
	}
}

// Div returns f · g⁻¹ truncated to len(f) digits.
func (f *Polynomial) Div(g *Polynomial, src RandomSource) (*Polynomial, error) {
	if err := f.compatible(g); err != nil {
		return nil, err
	}
	inv, err := g.Inverse(src)
	if err != nil {
		return nil, err
	}
	q, err := f.Truncate(len(f.coefficients)).Mul(inv)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// digitsOf expands 0 ≤ h < p^k into k base-p digits.
func digitsOf(h, p *big.Int, k int) []*big.Int {
	var (
		out = make([]*big.Int, k)
		q   = new(big.Int).Set(h)
	)
	for i := 0; i < k; i++ {
		out[i] = new(big.Int)
		q.DivMod(q, p, out[i])
	}
	return out
}
