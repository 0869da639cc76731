// SPDX-License-Identifier: MIT

package modarith

import "math/big"

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// EEAState is the halting state of EEACore.
//
// At every step the invariant X_j ≡ Y_j·b (mod a) holds when the trail
// tracks the coefficient of b (bound > 0), and X_j ≡ Y_j·a (mod b) when it
// tracks the coefficient of a (bound == 0).
type EEAState struct {
	X0, Y0     *big.Int // previous remainder and its coefficient
	Iterations int      // 1 + number of division steps performed
	X1, Y1     *big.Int // current remainder (≤ bound) and its coefficient
}

// EEACore runs the extended Euclidean recursion on (a, b) while the current
// remainder exceeds bound, and returns the state at the point it halts.
//
// Trail selection mirrors the two users of the routine:
//   - bound == 0 (or nil): full gcd run; Y tracks the coefficient of a,
//     so X0 = gcd(a, b) and Y0 is its Bézout coefficient for a.
//   - bound > 0: reconstruction run; Y tracks the coefficient of b and the
//     loop stops at the first remainder X1 ≤ bound.
//
// Inputs are expected non-negative; ExtendedGCD normalizes signs first.
//
// Complexity: O(log(min(a, b))) division steps.
func EEACore(a, b, bound *big.Int) EEAState {
	limit := zero
	if bound != nil {
		limit = bound
	}

	return eea(a, b, limit, limit.Sign() != 0)
}

// eea is EEACore with an explicit trail choice, so that reconstruction on
// degenerate moduli (bound == 0) still tracks the coefficient of b.
func eea(a, b, limit *big.Int, trackB bool) EEAState {
	var (
		x0, x1 = new(big.Int).Set(a), new(big.Int).Set(b)
		y0, y1 *big.Int
		q, t   = new(big.Int), new(big.Int)
		i      = 1
	)
	if trackB {
		y0, y1 = big.NewInt(0), big.NewInt(1)
	} else {
		y0, y1 = big.NewInt(1), big.NewInt(0)
	}

	for x1.Cmp(limit) > 0 {
		q.Div(x0, x1)

		// (x0, x1) ← (x1, x0 − q·x1)
		t.Mul(q, x1)
		t.Sub(x0, t)
		x0, x1, t = x1, t, x0

		// (y0, y1) ← (y1, y0 − q·y1)
		t.Mul(q, y1)
		t.Sub(y0, t)
		y0, y1, t = y1, t, y0

		i++
	}

	return EEAState{X0: x0, Y0: y0, Iterations: i, X1: x1, Y1: y1}
}

// ExtendedGCD returns g = gcd(a, b) ≥ 0 and Bézout coefficients x, y with
// g = a·x + b·y. Negative operands are handled by recursing on the absolute
// value and flipping the sign of the matching coefficient.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	switch {
	case a.Sign() < 0:
		g, x, y = ExtendedGCD(new(big.Int).Neg(a), b)
		return g, x.Neg(x), y
	case b.Sign() < 0:
		g, x, y = ExtendedGCD(a, new(big.Int).Neg(b))
		return g, x, y.Neg(y)
	}

	st := EEACore(a, b, zero)
	g, x = st.X0, st.Y0

	// y = (g − a·x) / b; exact because g − a·x ≡ 0 (mod b).
	y = new(big.Int)
	if b.Sign() != 0 {
		y.Mul(a, x)
		y.Sub(g, y)
		y.Quo(y, b)
	}

	return g, x, y
}

// ModInverse returns x in [0, m) with a·x ≡ 1 (mod m).
//
// Errors:
//   - *NoInverseError (errors.Is ErrNoInverse) when gcd(a, m) ≠ 1 or m < 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, &NoInverseError{A: new(big.Int).Set(a), M: new(big.Int).Set(m)}
	}
	g, x, _ := ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil, &NoInverseError{A: new(big.Int).Set(a), M: new(big.Int).Set(m)}
	}

	return x.Mod(x, m), nil
}

// Pow returns base^k for k ≥ 0 as a fresh *big.Int.
func Pow(base *big.Int, k int) *big.Int {
	return new(big.Int).Exp(base, big.NewInt(int64(k)), nil)
}
