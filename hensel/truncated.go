package hensel

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/katalvlaran/henselcode/modarith"
)

// Truncated is a truncated finite p-adic Hensel code: one residue
// h ∈ [0, p^k) standing for the rational h decodes to.
//
// The rational is always reconstructed from the residue, never taken from
// the constructor argument: outside the bound a code decodes to whatever
// its residue reconstructs to. The result is derived on first use and
// cached; every accessor returns a copy, so a *Truncated can be shared
// freely across goroutines.
type Truncated struct {
	prime    *big.Int
	exponent int
	modulus  *big.Int
	residue  *big.Int

	once sync.Once
	rat  *big.Rat
}

// NewTruncated encodes r as r.Num · r.Denom⁻¹ mod p^k.
//
// Errors:
//   - ErrWrongInputShape for prime < 2, exponent < 1 or nil r.
//   - ErrNoInverse when the denominator is divisible by p.
func NewTruncated(prime *big.Int, exponent int, r *big.Rat) (*Truncated, error) {
	if err := validateParams(prime, exponent); err != nil {
		return nil, err
	}
	if err := validateRat(r); err != nil {
		return nil, err
	}
	modulus := modarith.Pow(prime, exponent)
	h, err := modarith.Encode(r, modulus)
	if err != nil {
		return nil, fmt.Errorf("hensel: encode %s modulo %s: %w", r.RatString(), modulus, err)
	}

	return newTruncated(prime, exponent, modulus, h), nil
}

// TruncatedFromResidue wraps an already encoded residue.
//
// Errors:
//   - ErrWrongInputShape for prime < 2, exponent < 1, nil residue or a
//     residue outside [0, p^k).
func TruncatedFromResidue(prime *big.Int, exponent int, residue *big.Int) (*Truncated, error) {
	if err := validateParams(prime, exponent); err != nil {
		return nil, err
	}
	modulus := modarith.Pow(prime, exponent)
	if residue == nil || residue.Sign() < 0 || residue.Cmp(modulus) >= 0 {
		return nil, shapeErrorf("residue must be an integer in [0, %s), got %v", modulus, residue)
	}
	return newTruncated(prime, exponent, modulus, residue), nil
}

// newTruncated copies prime and residue; modulus must already be p^k and is
// taken over as is.
func newTruncated(prime *big.Int, exponent int, modulus, residue *big.Int) *Truncated {
	return &Truncated{
		prime:    new(big.Int).Set(prime),
		exponent: exponent,
		modulus:  modulus,
		residue:  new(big.Int).Set(residue),
	}
}

func (t *Truncated) decoded() *big.Rat {
	t.once.Do(func() { t.rat = modarith.Reconstruct(t.modulus, t.residue) })
	return t.rat
}

// Kind implements Code.
func (t *Truncated) Kind() Kind { return KindTruncated }

// Prime returns p.
func (t *Truncated) Prime() *big.Int { return new(big.Int).Set(t.prime) }

// Primes implements Code.
func (t *Truncated) Primes() []*big.Int { return []*big.Int{t.Prime()} }

// Exponent implements Code.
func (t *Truncated) Exponent() int { return t.exponent }

// Modulus returns p^k.
func (t *Truncated) Modulus() *big.Int { return new(big.Int).Set(t.modulus) }

// Bound returns floor(sqrt((p^k-1)/2)).
func (t *Truncated) Bound() *big.Int { return modarith.Bound(t.modulus) }

// Residue returns h.
func (t *Truncated) Residue() *big.Int { return new(big.Int).Set(t.residue) }

// Rat implements Code.
func (t *Truncated) Rat() *big.Rat { return new(big.Rat).Set(t.decoded()) }

// Numerator returns the numerator of the decoded rational.
func (t *Truncated) Numerator() *big.Int { return new(big.Int).Set(t.decoded().Num()) }

// Denominator returns the (positive) denominator of the decoded rational.
func (t *Truncated) Denominator() *big.Int { return new(big.Int).Set(t.decoded().Denom()) }

// String returns the residue in base 10.
func (t *Truncated) String() string { return t.residue.String() }

// GoString describes the code together with its ring.
func (t *Truncated) GoString() string {
	return fmt.Sprintf("<HenselCode: %s, prime: %s, exponent: %d, modulus: %s>",
		t.residue, t.prime, t.exponent, t.modulus)
}

// Add implements Code: (h1 + h2) mod p^k.
func (t *Truncated) Add(other Code) (Code, error) { return t.evaluate(OpAdd, other) }

// Sub implements Code: (h1 − h2) mod p^k.
func (t *Truncated) Sub(other Code) (Code, error) { return t.evaluate(OpSub, other) }

// Mul implements Code: (h1 · h2) mod p^k.
func (t *Truncated) Mul(other Code) (Code, error) { return t.evaluate(OpMul, other) }

// Div implements Code: h1 · h2⁻¹ mod p^k. A divisor divisible by p yields
// ErrNoInverse.
func (t *Truncated) Div(other Code) (Code, error) { return t.evaluate(OpDiv, other) }

// Inverse implements Code: h⁻¹ mod p^k.
func (t *Truncated) Inverse() (Code, error) {
	inv, err := t.inverse()
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (t *Truncated) inverse() (*Truncated, error) {
	inv, err := modarith.ModInverse(t.residue, t.modulus)
	if err != nil {
		return nil, fmt.Errorf("hensel: invert %s: %w", t.residue, err)
	}
	return newTruncated(t.prime, t.exponent, t.modulus, inv), nil
}

func (t *Truncated) evaluate(op Op, other Code) (Code, error) {
	if err := Check(t, other); err != nil {
		return nil, err
	}
	res, err := t.apply(op, other.(*Truncated))
	if err != nil {
		return nil, err
	}
	return res, nil
}

// apply runs op on two residues of the same ring; callers have already
// checked compatibility.
func (t *Truncated) apply(op Op, o *Truncated) (*Truncated, error) {
	h := new(big.Int)
	switch op {
	case OpAdd:
		h.Add(t.residue, o.residue)
	case OpSub:
		h.Sub(t.residue, o.residue)
	case OpMul:
		h.Mul(t.residue, o.residue)
	case OpDiv:
		inv, err := modarith.ModInverse(o.residue, t.modulus)
		if err != nil {
			return nil, fmt.Errorf("hensel: divide %s by %s: %w", t.residue, o.residue, err)
		}
		h.Mul(t.residue, inv)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownOperation, op)
	}
	h.Mod(h, t.modulus)

	return newTruncated(t.prime, t.exponent, t.modulus, h), nil
}

// WithPrime re-encodes the held rational over a new prime.
func (t *Truncated) WithPrime(prime *big.Int) (*Truncated, error) {
	return NewTruncated(prime, t.exponent, t.decoded())
}

// WithExponent re-encodes the held rational with a new truncation depth.
func (t *Truncated) WithExponent(exponent int) (*Truncated, error) {
	return NewTruncated(t.prime, exponent, t.decoded())
}

// WithRational encodes r in the same ring.
func (t *Truncated) WithRational(r *big.Rat) (*Truncated, error) {
	return NewTruncated(t.prime, t.exponent, r)
}

// WithResidue replaces the residue; it must lie in [0, p^k).
func (t *Truncated) WithResidue(residue *big.Int) (*Truncated, error) {
	return TruncatedFromResidue(t.prime, t.exponent, residue)
}
