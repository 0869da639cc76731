package hensel

// Check verifies that a and b can be combined by a binary operator.
//
// Order of checks (exactly one failure is reported):
//  1. both non-nil and of the same Kind, else ErrIncompatibleOperandTypes;
//  2. different primes, same exponent       → ErrDifferentPrimes;
//  3. different primes, different exponent  → ErrDifferentPrimesAndExponents;
//  4. same primes, different exponent       → ErrDifferentExponents.
//
// Prime lists are compared in order. The returned error is *OperandError.
func Check(a, b Code) error {
	if isNilCode(a) || isNilCode(b) || a.Kind() != b.Kind() {
		return &OperandError{Cause: ErrIncompatibleOperandTypes, Left: a, Right: b}
	}

	samePrimes := equalPrimes(a.Primes(), b.Primes())
	sameExponent := a.Exponent() == b.Exponent()

	switch {
	case !samePrimes && sameExponent:
		return &OperandError{Cause: ErrDifferentPrimes, Left: a, Right: b}
	case !samePrimes && !sameExponent:
		return &OperandError{Cause: ErrDifferentPrimesAndExponents, Left: a, Right: b}
	case samePrimes && !sameExponent:
		return &OperandError{Cause: ErrDifferentExponents, Left: a, Right: b}
	}

	return nil
}
