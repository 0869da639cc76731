package hensel_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/katalvlaran/henselcode/hensel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func truncated(t *testing.T, p int64, k int, r *big.Rat) *hensel.Truncated {
	t.Helper()
	h, err := hensel.NewTruncated(big.NewInt(p), k, r)
	require.NoError(t, err)
	return h
}

// TestCheck_Table walks every outcome of the guard in order.
func TestCheck_Table(t *testing.T) {
	half := big.NewRat(1, 2)
	ex, err := hensel.NewExpansion(p257, 3, half)
	require.NoError(t, err)
	compA, err := hensel.NewComposite([]*big.Int{big.NewInt(313), big.NewInt(317), big.NewInt(331)}, 3, half)
	require.NoError(t, err)
	compB, err := hensel.NewComposite([]*big.Int{big.NewInt(367), big.NewInt(373), big.NewInt(379)}, 3, half)
	require.NoError(t, err)
	var nilTruncated *hensel.Truncated

	tests := []struct {
		name string
		a, b hensel.Code
		want error
	}{
		{"same ring", truncated(t, 257, 3, half), truncated(t, 257, 3, half), nil},
		{"different kinds", truncated(t, 257, 3, half), ex, hensel.ErrIncompatibleOperandTypes},
		{"nil right", truncated(t, 257, 3, half), nil, hensel.ErrIncompatibleOperandTypes},
		{"typed nil left", nilTruncated, truncated(t, 257, 3, half), hensel.ErrIncompatibleOperandTypes},
		{"different primes", truncated(t, 257, 3, half), truncated(t, 263, 3, half), hensel.ErrDifferentPrimes},
		{"different exponents", truncated(t, 257, 3, half), truncated(t, 257, 4, half), hensel.ErrDifferentExponents},
		{"different both", truncated(t, 257, 3, half), truncated(t, 263, 4, half), hensel.ErrDifferentPrimesAndExponents},
		{"composite primes", compA, compB, hensel.ErrDifferentPrimes},
		{"composite same", compA, compA, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := hensel.Check(tc.a, tc.b)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var oe *hensel.OperandError
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, tc.want, oe.Cause)
		})
	}
}

// TestCheck_Messages pins the human-readable descriptions.
func TestCheck_Messages(t *testing.T) {
	half := big.NewRat(1, 2)
	a := truncated(t, 257, 3, half)

	err := hensel.Check(a, truncated(t, 263, 3, half))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hensel codes with different primes")
	assert.Contains(t, err.Error(), "has primes [257]")
	assert.Contains(t, err.Error(), "has primes [263]")

	err = hensel.Check(a, truncated(t, 257, 5, half))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has exponent 3")
	assert.Contains(t, err.Error(), "has exponent 5")

	ex, err := hensel.NewExpansion(p257, 3, half)
	require.NoError(t, err)
	err = hensel.Check(a, ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a truncated while")
	assert.Contains(t, err.Error(), "is a expansion")
}

// TestCheck_OperatorsReportGuardErrors shows every operator runs the guard
// before any arithmetic.
func TestCheck_OperatorsReportGuardErrors(t *testing.T) {
	half := big.NewRat(1, 2)
	a := truncated(t, 257, 3, half)
	b := truncated(t, 263, 4, half)

	for _, op := range operators {
		parsed, err := hensel.ParseOp(op)
		require.NoError(t, err)
		res, err := hensel.Apply(parsed, a, b)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, hensel.ErrDifferentPrimesAndExponents, op)
	}

	_, err := hensel.Apply(hensel.OpAdd, nil, a)
	assert.ErrorIs(t, err, hensel.ErrIncompatibleOperandTypes)
	_, err = hensel.Apply(hensel.Op(99), a, a)
	assert.ErrorIs(t, err, hensel.ErrUnknownOperation)
}

// TestParse covers the name parsers shared with the CLI.
func TestParse(t *testing.T) {
	for in, want := range map[string]hensel.Kind{
		"truncated": hensel.KindTruncated,
		"residue":   hensel.KindTruncated,
		"expansion": hensel.KindExpansion,
		"digits":    hensel.KindExpansion,
		"composite": hensel.KindComposite,
		"gadic":     hensel.KindComposite,
	} {
		got, err := hensel.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := hensel.ParseKind("float")
	assert.ErrorIs(t, err, hensel.ErrUnknownKind)

	op, err := hensel.ParseOp("x")
	require.NoError(t, err)
	assert.Equal(t, hensel.OpMul, op)
	assert.Equal(t, "*", op.String())
	_, err = hensel.ParseOp("%")
	assert.ErrorIs(t, err, hensel.ErrUnknownOperation)
}

// TestNew dispatches on Kind.
func TestNew(t *testing.T) {
	r := big.NewRat(2, 3)
	for _, kind := range []hensel.Kind{hensel.KindTruncated, hensel.KindExpansion} {
		c, err := hensel.New(kind, []*big.Int{p257}, 3, r)
		require.NoError(t, err)
		assert.Equal(t, kind, c.Kind())
		assertRat(t, r, c.Rat())
	}
	c, err := hensel.New(hensel.KindComposite, primes, 3, r)
	require.NoError(t, err)
	assert.Equal(t, "[11316396, 12127632, 12976740]", c.String())

	_, err = hensel.New(hensel.KindTruncated, primes, 3, r)
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.New(hensel.Kind(0), primes, 3, r)
	assert.ErrorIs(t, err, hensel.ErrUnknownKind)
}
