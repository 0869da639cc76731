package hensel

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/katalvlaran/henselcode/modarith"
)

// Composite is a truncated finite g-adic Hensel code: the same rational
// encoded independently modulo p_i^k for each prime of an ordered list.
//
// Arithmetic is pairwise per prime with no cross-prime interaction. Decoding
// recombines the residues by CRT into one residue modulo g^k, g = Π p_i, and
// reconstructs against the bound of g^k, so a composite reaches rationals
// far beyond any single prime's bound.
type Composite struct {
	primes   []*big.Int
	exponent int
	codes    []*Truncated
	g        *big.Int
	modulus  *big.Int // g^k

	once sync.Once
	rat  *big.Rat
	err  error
}

// NewComposite encodes r once per prime.
//
// Errors:
//   - ErrWrongInputShape for an empty prime list, a repeated or not
//     pairwise coprime entry, a prime < 2, exponent < 1 or nil r.
//   - ErrNoInverse when the denominator shares a factor with some prime.
func NewComposite(primes []*big.Int, exponent int, r *big.Rat) (*Composite, error) {
	if err := validatePrimes(primes, exponent); err != nil {
		return nil, err
	}
	if err := validateRat(r); err != nil {
		return nil, err
	}
	codes := make([]*Truncated, len(primes))
	for i, p := range primes {
		t, err := NewTruncated(p, exponent, r)
		if err != nil {
			return nil, err
		}
		codes[i] = t
	}
	return newComposite(primes, exponent, codes), nil
}

// CompositeFromCodes assembles per-prime residue codes. codes[i] must be
// over primes[i] with the given exponent.
func CompositeFromCodes(primes []*big.Int, exponent int, codes []*Truncated) (*Composite, error) {
	if err := validatePrimes(primes, exponent); err != nil {
		return nil, err
	}
	if len(codes) != len(primes) {
		return nil, shapeErrorf("must be an array of %d truncated p-adic Hensel codes, got %d", len(primes), len(codes))
	}
	for i, t := range codes {
		if t == nil {
			return nil, shapeErrorf("code %d is nil", i)
		}
		if t.prime.Cmp(primes[i]) != 0 || t.exponent != exponent {
			return nil, shapeErrorf("code %d is over (%s, %d), want (%s, %d)", i, t.prime, t.exponent, primes[i], exponent)
		}
	}
	return newComposite(primes, exponent, append([]*Truncated(nil), codes...)), nil
}

// CompositeFromResidues builds the per-prime codes from raw residues.
func CompositeFromResidues(primes []*big.Int, exponent int, residues []*big.Int) (*Composite, error) {
	if err := validatePrimes(primes, exponent); err != nil {
		return nil, err
	}
	if len(residues) != len(primes) {
		return nil, shapeErrorf("need %d residues, got %d", len(primes), len(residues))
	}
	codes := make([]*Truncated, len(primes))
	for i, p := range primes {
		t, err := TruncatedFromResidue(p, exponent, residues[i])
		if err != nil {
			return nil, err
		}
		codes[i] = t
	}
	return newComposite(primes, exponent, codes), nil
}

func newComposite(primes []*big.Int, exponent int, codes []*Truncated) *Composite {
	g := modarith.Product(primes)
	return &Composite{
		primes:   copyInts(primes),
		exponent: exponent,
		codes:    codes,
		g:        g,
		modulus:  modarith.Pow(g, exponent),
	}
}

func validatePrimes(primes []*big.Int, exponent int) error {
	if len(primes) == 0 {
		return shapeErrorf("prime list is empty")
	}
	g := new(big.Int)
	for i, p := range primes {
		if err := validateParams(p, exponent); err != nil {
			return err
		}
		// CRT needs pairwise coprime moduli; this also rejects repeats.
		for _, q := range primes[:i] {
			if p.Cmp(q) == 0 {
				return shapeErrorf("prime %s repeated", p)
			}
			if g.GCD(nil, nil, p, q).Cmp(big.NewInt(1)) != 0 {
				return shapeErrorf("primes %s and %s share the factor %s", q, p, g)
			}
		}
	}
	return nil
}

func (c *Composite) decoded() (*big.Rat, error) {
	c.once.Do(func() {
		combined, err := modarith.CRT(c.moduli(), c.residues())
		if err != nil {
			c.err = err
			return
		}
		c.rat = modarith.Reconstruct(c.modulus, combined)
	})
	return c.rat, c.err
}

func (c *Composite) moduli() []*big.Int {
	out := make([]*big.Int, len(c.codes))
	for i, t := range c.codes {
		out[i] = t.modulus
	}
	return out
}

func (c *Composite) residues() []*big.Int {
	out := make([]*big.Int, len(c.codes))
	for i, t := range c.codes {
		out[i] = t.residue
	}
	return out
}

// Kind implements Code.
func (c *Composite) Kind() Kind { return KindComposite }

// Primes implements Code.
func (c *Composite) Primes() []*big.Int { return copyInts(c.primes) }

// Exponent implements Code.
func (c *Composite) Exponent() int { return c.exponent }

// G returns Π p_i.
func (c *Composite) G() *big.Int { return new(big.Int).Set(c.g) }

// Modulus returns g^k = Π p_i^k.
func (c *Composite) Modulus() *big.Int { return new(big.Int).Set(c.modulus) }

// Moduli returns p_i^k for every prime.
func (c *Composite) Moduli() []*big.Int { return copyInts(c.moduli()) }

// Bound returns floor(sqrt((g^k-1)/2)).
func (c *Composite) Bound() *big.Int { return modarith.Bound(c.modulus) }

// Codes returns the per-prime residue codes.
func (c *Composite) Codes() []*Truncated { return append([]*Truncated(nil), c.codes...) }

// Residues returns the per-prime residues.
func (c *Composite) Residues() []*big.Int { return copyInts(c.residues()) }

// Combined returns the CRT residue modulo g^k.
func (c *Composite) Combined() (*big.Int, error) {
	return modarith.CRT(c.moduli(), c.residues())
}

// Rat implements Code. Constructors reject prime lists that are not
// pairwise coprime, so the CRT recombination behind Rat cannot fail for a
// Composite built by this package.
func (c *Composite) Rat() *big.Rat {
	r, err := c.decoded()
	if err != nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(r)
}

// String renders the per-prime residues as "[h1, h2, ...]".
func (c *Composite) String() string {
	parts := make([]string, len(c.codes))
	for i, t := range c.codes {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// GoString wraps String in the Hensel code marker.
func (c *Composite) GoString() string { return fmt.Sprintf("<HenselCode: %s>", c) }

// Add implements Code.
func (c *Composite) Add(other Code) (Code, error) { return c.evaluate(OpAdd, other) }

// Sub implements Code.
func (c *Composite) Sub(other Code) (Code, error) { return c.evaluate(OpSub, other) }

// Mul implements Code.
func (c *Composite) Mul(other Code) (Code, error) { return c.evaluate(OpMul, other) }

// Div implements Code; the divisor must be a unit modulo every p_i.
func (c *Composite) Div(other Code) (Code, error) { return c.evaluate(OpDiv, other) }

// Inverse implements Code, inverting each per-prime residue.
func (c *Composite) Inverse() (Code, error) {
	codes := make([]*Truncated, len(c.codes))
	for i, t := range c.codes {
		inv, err := t.inverse()
		if err != nil {
			return nil, fmt.Errorf("hensel: prime %s: %w", t.prime, err)
		}
		codes[i] = inv
	}
	return newComposite(c.primes, c.exponent, codes), nil
}

func (c *Composite) evaluate(op Op, other Code) (Code, error) {
	if err := Check(c, other); err != nil {
		return nil, err
	}
	var (
		o     = other.(*Composite)
		codes = make([]*Truncated, len(c.codes))
	)
	for i := range c.codes {
		t, err := c.codes[i].apply(op, o.codes[i])
		if err != nil {
			return nil, fmt.Errorf("hensel: prime %s: %w", c.primes[i], err)
		}
		codes[i] = t
	}
	return newComposite(c.primes, c.exponent, codes), nil
}

// WithPrimes re-encodes the held rational over a new prime list.
func (c *Composite) WithPrimes(primes []*big.Int) (*Composite, error) {
	return NewComposite(primes, c.exponent, c.Rat())
}

// WithExponent re-encodes the held rational with a new truncation depth.
func (c *Composite) WithExponent(exponent int) (*Composite, error) {
	return NewComposite(c.primes, exponent, c.Rat())
}

// WithRational encodes r over the same primes and exponent.
func (c *Composite) WithRational(r *big.Rat) (*Composite, error) {
	return NewComposite(c.primes, c.exponent, r)
}

// WithCodes replaces the per-prime codes, validated against the current
// primes and exponent.
func (c *Composite) WithCodes(codes []*Truncated) (*Composite, error) {
	return CompositeFromCodes(c.primes, c.exponent, codes)
}
