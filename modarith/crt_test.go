package modarith_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/henselcode/modarith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bis(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// TestCRT_KnownVectors checks two published recombinations.
func TestCRT_KnownVectors(t *testing.T) {
	got, err := modarith.CRT(bis(231, 251, 257), bis(199, 222, 121))
	require.NoError(t, err)
	assertInt(t, 9024676, got)

	got, err = modarith.CRT(bis(367, 331, 389, 433, 479, 449), bis(188, 234, 27, 214, 205, 183))
	require.NoError(t, err)
	assertInt(t, 800155308225567, got)
}

// TestCRT_Consistency verifies the result reduces back to every remainder.
func TestCRT_Consistency(t *testing.T) {
	moduli := bis(257*257, 263*263, 269*269)
	rems := bis(12345, 54321, 11111)

	got, err := modarith.CRT(moduli, rems)
	require.NoError(t, err)
	for i, m := range moduli {
		assert.Equal(t, rems[i].String(), new(big.Int).Mod(got, m).String(), "modulus %s", m)
	}
	assert.True(t, got.Cmp(modarith.Product(moduli)) < 0)
}

// TestCRT_Errors covers shape and coprimality failures.
func TestCRT_Errors(t *testing.T) {
	_, err := modarith.CRT(nil, nil)
	assert.ErrorIs(t, err, modarith.ErrLengthMismatch)

	_, err = modarith.CRT(bis(3, 5), bis(1))
	assert.ErrorIs(t, err, modarith.ErrLengthMismatch)

	_, err = modarith.CRT(bis(6, 9), bis(1, 2))
	assert.ErrorIs(t, err, modarith.ErrNoInverse)

	_, err = modarith.CRT(bis(0, 9), bis(1, 2))
	assert.ErrorIs(t, err, modarith.ErrBadModulus)
}

// TestProduct covers the empty product.
func TestProduct(t *testing.T) {
	assertInt(t, 1, modarith.Product(nil))
	assertInt(t, 30, modarith.Product(bis(2, 3, 5)))
}
