// Package modarith provides the integer number theory underneath Hensel codes.
//
// What lives here:
//
//   - EEACore      - bounded extended Euclidean recursion exposing both
//     remainders and both Bézout trails at the halting point.
//   - ExtendedGCD  - gcd(a, b) with Bézout coefficients for any signs.
//   - ModInverse   - a⁻¹ mod m, or *NoInverseError when gcd(a, m) ≠ 1.
//   - CRT          - Chinese Remainder recombination over coprime moduli.
//   - Bound        - floor(sqrt((m-1)/2)), the reconstruction bound.
//   - Reconstruct  - rational recovery from a residue modulo m.
//
// Every function works on *big.Int, never mutates its arguments and
// returns freshly allocated results. Nothing here logs, panics on user
// input or keeps state between calls.
//
// Reconstruction contract:
//
//	for r = a/b in lowest terms with |a| ≤ n and 0 < b ≤ n, n = Bound(m):
//	    Reconstruct(m, a·b⁻¹ mod m) == r
//
// Outside the bound Reconstruct silently returns some other rational;
// use ReconstructChecked when the caller cannot guarantee the bound.
package modarith
