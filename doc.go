// Package henselcode is exact rational arithmetic inside finite rings.
//
// 🚀 What is henselcode?
//
//	A Go toolkit for Hensel codes: a rational a/b is mapped to a fixed-size
//	element of Z/p^kZ (or of several such rings at once), computed with, and
//	mapped back without rounding error. It brings together:
//		• Modular primitives: bounded extended Euclid, inverses, CRT
//		• Rational reconstruction with the classic sqrt((m-1)/2) bound
//		• Three code representations behind one Code interface
//		• Hensel (Newton) lifting for digit-vector inverses
//		• A cobra CLI with YAML configuration and zap logging
//
// ✨ Why Hensel codes?
//
//   - Exact: no floating point anywhere, division included
//   - Fixed size: k digits stay k digits through +, −, ×, ÷
//   - Guarded: operands from different rings are rejected, never mixed
//
// Packages:
//
//	modarith/   - EEA core, ExtendedGCD, ModInverse, CRT, Encode/Reconstruct
//	hensel/     - Truncated, Expansion, Composite codes; Check; random sources
//	config/     - YAML + HENSEL_* environment settings, validated
//	cmd/hensel/ - encode, decode, eval, crt, prime, config subcommands
//
// Quick example:
//
//	p := big.NewInt(257)
//	a, _ := hensel.NewTruncated(p, 3, big.NewRat(2, 3))  // 11316396
//	b, _ := hensel.NewTruncated(p, 3, big.NewRat(3, 5))
//	c, _ := a.Add(b)
//	fmt.Println(c.Rat())                                  // 19/15
//
//	go install github.com/katalvlaran/henselcode/cmd/hensel@latest
package henselcode
