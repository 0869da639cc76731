package hensel

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/katalvlaran/henselcode/modarith"
)

// Expansion is a finite p-adic expansion Hensel code: the residue of a
// rational modulo p^k written as k base-p digits,
//
//	h = d0 + d1·p + d2·p^2 + … + d(k-1)·p^(k-1).
//
// Sums and differences carry between digits and products are Cauchy
// products with carry, so every operation stays in Z/p^kZ and agrees with
// the Truncated code of the same rational. Division multiplies by the
// Hensel-lifted inverse of the divisor.
type Expansion struct {
	prime    *big.Int
	exponent int
	poly     *Polynomial
	opts     options

	once sync.Once
	rat  *big.Rat
}

// NewExpansion encodes r as k base-p digits.
//
// Errors:
//   - ErrWrongInputShape for prime < 2, exponent < 1 or nil r.
//   - ErrNoInverse when the denominator is divisible by p.
func NewExpansion(prime *big.Int, exponent int, r *big.Rat, opts ...Option) (*Expansion, error) {
	t, err := NewTruncated(prime, exponent, r)
	if err != nil {
		return nil, err
	}
	return expansionOf(t, gatherOptions(opts...)), nil
}

// ExpansionFromDigits decodes a digit vector, least significant first.
//
// Errors:
//   - ErrWrongInputShape when len(digits) ≠ exponent or a digit lies
//     outside [0, p).
func ExpansionFromDigits(prime *big.Int, exponent int, digits []*big.Int, opts ...Option) (*Expansion, error) {
	if err := validateParams(prime, exponent); err != nil {
		return nil, err
	}
	if len(digits) != exponent {
		return nil, shapeErrorf("must be an array of integers of size %d, got %d", exponent, len(digits))
	}
	poly, err := NewPolynomial(prime, digits)
	if err != nil {
		return nil, err
	}
	return newExpansion(poly, exponent, gatherOptions(opts...)), nil
}

// ExpansionFromTruncated rewrites a residue code positionally.
func ExpansionFromTruncated(t *Truncated, opts ...Option) (*Expansion, error) {
	if t == nil {
		return nil, shapeErrorf("truncated code is nil")
	}
	return expansionOf(t, gatherOptions(opts...)), nil
}

func expansionOf(t *Truncated, o options) *Expansion {
	poly := &Polynomial{
		prime:        t.Prime(),
		coefficients: digitsOf(t.residue, t.prime, t.exponent),
		fixedLength:  true,
	}
	return newExpansion(poly, t.exponent, o)
}

func newExpansion(poly *Polynomial, exponent int, o options) *Expansion {
	return &Expansion{
		prime:    poly.prime,
		exponent: exponent,
		poly:     poly,
		opts:     o,
	}
}

// decoded reconstructs the rational of Σ d_i·p^i once.
func (e *Expansion) decoded() *big.Rat {
	e.once.Do(func() { e.rat = modarith.Reconstruct(e.Modulus(), e.poly.Value()) })
	return e.rat
}

// Kind implements Code.
func (e *Expansion) Kind() Kind { return KindExpansion }

// Prime returns p.
func (e *Expansion) Prime() *big.Int { return new(big.Int).Set(e.prime) }

// Primes implements Code.
func (e *Expansion) Primes() []*big.Int { return []*big.Int{e.Prime()} }

// Exponent implements Code.
func (e *Expansion) Exponent() int { return e.exponent }

// Modulus returns p^k.
func (e *Expansion) Modulus() *big.Int { return modarith.Pow(e.prime, e.exponent) }

// Bound returns floor(sqrt((p^k-1)/2)).
func (e *Expansion) Bound() *big.Int { return modarith.Bound(e.Modulus()) }

// Digits returns a copy of the digit vector, least significant first.
func (e *Expansion) Digits() []*big.Int { return e.poly.Coefficients() }

// Polynomial returns the digit vector as a fixed-length polynomial.
func (e *Expansion) Polynomial() *Polynomial { return e.poly.Truncate(e.exponent) }

// Rat implements Code.
func (e *Expansion) Rat() *big.Rat { return new(big.Rat).Set(e.decoded()) }

// ToTruncated collapses the digits into the residue Σ d_i·p^i.
func (e *Expansion) ToTruncated() *Truncated {
	return newTruncated(e.prime, e.exponent, e.Modulus(), e.poly.Value())
}

// String renders "d0 + d1p + d2p^2 + ...".
func (e *Expansion) String() string { return e.poly.String() }

// GoString wraps String in the Hensel code marker.
func (e *Expansion) GoString() string { return fmt.Sprintf("<HenselCode: %s>", e.poly) }

// Add implements Code.
func (e *Expansion) Add(other Code) (Code, error) { return e.evaluate(OpAdd, other) }

// Sub implements Code.
func (e *Expansion) Sub(other Code) (Code, error) { return e.evaluate(OpSub, other) }

// Mul implements Code.
func (e *Expansion) Mul(other Code) (Code, error) { return e.evaluate(OpMul, other) }

// Div implements Code; the divisor's constant digit must be a unit mod p.
func (e *Expansion) Div(other Code) (Code, error) { return e.evaluate(OpDiv, other) }

// Inverse implements Code by Hensel lifting.
func (e *Expansion) Inverse() (Code, error) {
	inv, err := e.poly.inverse(e.opts.src, e.opts.liftingLimit)
	if err != nil {
		return nil, err
	}
	return newExpansion(inv, e.exponent, e.opts), nil
}

func (e *Expansion) evaluate(op Op, other Code) (Code, error) {
	if err := Check(e, other); err != nil {
		return nil, err
	}
	var (
		o    = other.(*Expansion)
		poly *Polynomial
		err  error
	)
	switch op {
	case OpAdd:
		poly, err = e.poly.AddCarry(o.poly)
	case OpSub:
		poly, err = e.poly.SubCarry(o.poly)
	case OpMul:
		poly, err = e.poly.Mul(o.poly)
	case OpDiv:
		var inv *Polynomial
		if inv, err = o.poly.inverse(e.opts.src, e.opts.liftingLimit); err == nil {
			poly, err = e.poly.Mul(inv)
		}
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownOperation, op)
	}
	if err != nil {
		return nil, err
	}
	return newExpansion(poly, e.exponent, e.opts), nil
}

// WithPrime re-encodes the held rational over a new prime.
func (e *Expansion) WithPrime(prime *big.Int) (*Expansion, error) {
	return e.rebuild(prime, e.exponent, e.decoded())
}

// WithExponent re-encodes the held rational with k digits.
func (e *Expansion) WithExponent(exponent int) (*Expansion, error) {
	return e.rebuild(e.prime, exponent, e.decoded())
}

// WithRational encodes r over the same prime and exponent.
func (e *Expansion) WithRational(r *big.Rat) (*Expansion, error) {
	return e.rebuild(e.prime, e.exponent, r)
}

// WithDigits replaces the digit vector; it must have exactly k digits in [0, p).
func (e *Expansion) WithDigits(digits []*big.Int) (*Expansion, error) {
	if len(digits) != e.exponent {
		return nil, shapeErrorf("must be an array of integers of size %d, got %d", e.exponent, len(digits))
	}
	poly, err := NewPolynomial(e.prime, digits)
	if err != nil {
		return nil, err
	}
	return newExpansion(poly, e.exponent, e.opts), nil
}

func (e *Expansion) rebuild(prime *big.Int, exponent int, r *big.Rat) (*Expansion, error) {
	t, err := NewTruncated(prime, exponent, r)
	if err != nil {
		return nil, err
	}
	return expansionOf(t, e.opts), nil
}
