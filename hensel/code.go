package hensel

import (
	"fmt"
	"math/big"
)

// Kind tags the concrete representation behind a Code.
type Kind uint8

const (
	// KindTruncated is a single residue modulo p^k.
	KindTruncated Kind = iota + 1
	// KindExpansion is a length-k vector of base-p digits.
	KindExpansion
	// KindComposite is one residue per prime, recombined by CRT.
	KindComposite
)

// String returns the lowercase name used by the CLI and error messages.
func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindExpansion:
		return "expansion"
	case KindComposite:
		return "composite"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a representation name back to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "truncated", "residue":
		return KindTruncated, nil
	case "expansion", "digits":
		return KindExpansion, nil
	case "composite", "gadic":
		return KindComposite, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Op is one of the four field operations.
type Op uint8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// ParseOp maps "+", "-", "*" ("x") and "/" to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*", "x":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// Code is the arithmetic surface shared by Truncated, Expansion and
// Composite. Binary operators accept any Code and report mismatches through
// *OperandError before touching the operands.
type Code interface {
	// Kind reports the concrete representation.
	Kind() Kind
	// Primes returns a copy of the prime list (length 1 for single-prime codes).
	Primes() []*big.Int
	// Exponent returns the truncation depth k.
	Exponent() int
	// Rat decodes the code; the result is a fresh copy.
	Rat() *big.Rat

	Add(other Code) (Code, error)
	Sub(other Code) (Code, error)
	Mul(other Code) (Code, error)
	Div(other Code) (Code, error)
	Inverse() (Code, error)

	String() string
}

var (
	_ Code = (*Truncated)(nil)
	_ Code = (*Expansion)(nil)
	_ Code = (*Composite)(nil)
)

// Apply dispatches op on (a, b).
func Apply(op Op, a, b Code) (Code, error) {
	if isNilCode(a) {
		return nil, &OperandError{Cause: ErrIncompatibleOperandTypes, Left: a, Right: b}
	}
	switch op {
	case OpAdd:
		return a.Add(b)
	case OpSub:
		return a.Sub(b)
	case OpMul:
		return a.Mul(b)
	case OpDiv:
		return a.Div(b)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownOperation, op)
}

// New encodes r in the representation named by kind. Single-prime kinds
// use primes[0] and reject longer lists.
func New(kind Kind, primes []*big.Int, exponent int, r *big.Rat, opts ...Option) (Code, error) {
	switch kind {
	case KindTruncated, KindExpansion:
		if len(primes) != 1 {
			return nil, shapeErrorf("%s code needs exactly one prime, got %d", kind, len(primes))
		}
		if kind == KindTruncated {
			return NewTruncated(primes[0], exponent, r)
		}
		return NewExpansion(primes[0], exponent, r, opts...)
	case KindComposite:
		return NewComposite(primes, exponent, r)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// isNilCode reports nil interfaces and typed nil pointers alike.
func isNilCode(c Code) bool {
	switch v := c.(type) {
	case nil:
		return true
	case *Truncated:
		return v == nil
	case *Expansion:
		return v == nil
	case *Composite:
		return v == nil
	}
	return false
}

func equalPrimes(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

func copyInts(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in))
	for i, v := range in {
		out[i] = new(big.Int).Set(v)
	}
	return out
}

// validateParams enforces prime ≥ 2 and exponent ≥ 1.
func validateParams(prime *big.Int, exponent int) error {
	if prime == nil || prime.Cmp(big.NewInt(2)) < 0 {
		return shapeErrorf("prime must be >= 2, got %v", prime)
	}
	if exponent < 1 {
		return shapeErrorf("exponent must be >= 1, got %d", exponent)
	}
	return nil
}

func validateRat(r *big.Rat) error {
	if r == nil {
		return shapeErrorf("rational must not be nil")
	}
	return nil
}
