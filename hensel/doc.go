// Package hensel implements Hensel codes: exact, fixed-size encodings of
// rational numbers inside finite rings, with arithmetic that never grows the
// representation and division that is always defined for units.
//
// 🚀 Three representations, one interface:
//
//   - Truncated  - a single residue h ∈ [0, p^k). Arithmetic is plain
//     modular +, −, ×, and × by the modular inverse.
//   - Expansion  - the same ring element as k base-p digits
//     d0 + d1·p + … + d(k-1)·p^(k-1). Multiplication is a Cauchy product
//     with carry; inversion is Hensel (Newton) lifting.
//   - Composite  - one Truncated per prime p_1..p_t, recombined on decode
//     through the Chinese Remainder Theorem over Π p_i^k.
//
// All three satisfy Code. Every binary operator first runs Check, which
// rejects mismatched representations, primes or exponents before any
// arithmetic happens.
//
// ✨ Guarantees:
//
//   - Round trip: for r = a/b with |a|, b ≤ n = floor(sqrt((m-1)/2)),
//     decoding the code of r yields r exactly.
//   - Homomorphism: while operands and result stay inside n,
//     decode(x ⊕ y) == decode(x) ⊕ decode(y) for ⊕ ∈ {+, −, ×, ÷}.
//   - Immutability: codes never change after construction. The WithX
//     methods (WithPrime, WithExponent, WithRational, ...) return rebuilt
//     values instead of mutating.
//
// Outside the bound decoding silently returns an unrelated rational; this
// is a documented precondition. modarith.ReconstructChecked is available
// when the caller needs detection.
//
// ⚙️ Usage:
//
//	p := big.NewInt(257)
//	a, _ := hensel.NewTruncated(p, 3, big.NewRat(2, 3))
//	b, _ := hensel.NewTruncated(p, 3, big.NewRat(3, 5))
//	c, _ := a.Add(b)
//	fmt.Println(c.Rat()) // 19/15
//
// Concurrency: values are safe for concurrent reads. Inversion of an
// Expansion draws seed digits from a RandomSource; the bundled sources are
// goroutine-safe.
package hensel
