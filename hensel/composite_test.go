package hensel_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/katalvlaran/henselcode/hensel"
	"github.com/katalvlaran/henselcode/modarith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComposite_Create checks per-prime residues and the combined ring.
func TestComposite_Create(t *testing.T) {
	c, err := hensel.NewComposite(primes, 3, big.NewRat(2, 3))
	require.NoError(t, err)

	assert.Equal(t, hensel.KindComposite, c.Kind())
	assertDigits(t, ints(11316396, 12127632, 12976740), c.Residues())
	assert.Equal(t, "[11316396, 12127632, 12976740]", c.String())
	assert.Equal(t, "<HenselCode: [11316396, 12127632, 12976740]>", c.GoString())
	assert.Equal(t, "18181979", c.G().String())
	assert.Equal(t, "54820971797", c.Bound().String())
	assertRat(t, big.NewRat(2, 3), c.Rat())

	moduli := c.Moduli()
	require.Len(t, moduli, 3)
	assert.Equal(t, "16974593", moduli[0].String())
	assert.Equal(t, c.Modulus().String(), new(big.Int).Exp(c.G(), big.NewInt(3), nil).String())
}

// TestComposite_DecodeFromResidues exercises the CRT path.
func TestComposite_DecodeFromResidues(t *testing.T) {
	c, err := hensel.CompositeFromResidues(primes, 3, ints(8487298, 9095725, 9732556))
	require.NoError(t, err)
	assertRat(t, big.NewRat(3, 2), c.Rat())

	combined, err := c.Combined()
	require.NoError(t, err)
	assert.Equal(t, -1, combined.Cmp(c.Modulus()))
	for i, m := range c.Moduli() {
		assert.Equal(t, c.Residues()[i].String(), new(big.Int).Mod(combined, m).String())
	}
}

// TestComposite_BeyondSinglePrimeBound decodes a rational no single prime
// of the list could represent at this exponent.
func TestComposite_BeyondSinglePrimeBound(t *testing.T) {
	r := big.NewRat(123456, 98765)

	single, err := hensel.NewTruncated(p257, 3, r)
	require.NoError(t, err)
	assert.NotEqual(t, r.RatString(), single.Rat().RatString())

	c, err := hensel.NewComposite(primes, 3, r)
	require.NoError(t, err)
	decoded, err := hensel.CompositeFromResidues(primes, 3, c.Residues())
	require.NoError(t, err)
	assertRat(t, r, decoded.Rat())
}

// TestComposite_FromCodes assembles independently built residue codes.
func TestComposite_FromCodes(t *testing.T) {
	r := big.NewRat(-5, 7)
	codes := make([]*hensel.Truncated, len(primes))
	for i, p := range primes {
		tc, err := hensel.NewTruncated(p, 3, r)
		require.NoError(t, err)
		codes[i] = tc
	}

	c, err := hensel.CompositeFromCodes(primes, 3, codes)
	require.NoError(t, err)
	assertRat(t, r, c.Rat())
	assert.Len(t, c.Codes(), 3)

	_, err = hensel.CompositeFromCodes(primes, 3, codes[:2])
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.CompositeFromCodes(primes, 3, []*hensel.Truncated{codes[1], codes[0], codes[2]})
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.CompositeFromCodes(primes, 3, []*hensel.Truncated{codes[0], nil, codes[2]})
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.CompositeFromCodes(primes, 4, codes)
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
}

// TestComposite_CreateErrors covers malformed prime lists and bad denominators.
func TestComposite_CreateErrors(t *testing.T) {
	_, err := hensel.NewComposite(nil, 3, big.NewRat(1, 2))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.NewComposite([]*big.Int{p257, p263, p257}, 3, big.NewRat(1, 2))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.NewComposite(primes, 0, big.NewRat(1, 2))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.NewComposite(primes, 3, nil)
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.NewComposite(primes, 3, big.NewRat(1, 263*2))
	assert.ErrorIs(t, err, hensel.ErrNoInverse)

	_, err = hensel.CompositeFromResidues(primes, 3, ints(1, 2))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.CompositeFromResidues(primes, 3, ints(1, 2, -3))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
}

// TestComposite_Arithmetic checks the homomorphism including rationals past
// the single-prime bound.
func TestComposite_Arithmetic(t *testing.T) {
	rats := []*big.Rat{
		big.NewRat(2, 3),
		big.NewRat(-7, 11),
		big.NewRat(123456, 98765),
		big.NewRat(4001, 3),
	}
	for _, ra := range rats {
		for _, rb := range rats {
			a, err := hensel.NewComposite(primes, 3, ra)
			require.NoError(t, err)
			b, err := hensel.NewComposite(primes, 3, rb)
			require.NoError(t, err)

			for _, op := range operators {
				parsed, err := hensel.ParseOp(op)
				require.NoError(t, err)
				c, err := hensel.Apply(parsed, a, b)
				require.NoError(t, err, "%s %s %s", ra, op, rb)
				assertRat(t, ratOp(op, ra, rb), c.Rat(), "%s %s %s", ra, op, rb)
			}
		}
	}
}

// TestComposite_Inverse inverts every per-prime residue.
func TestComposite_Inverse(t *testing.T) {
	c, err := hensel.NewComposite(primes, 3, big.NewRat(2, 3))
	require.NoError(t, err)

	inv, err := c.Inverse()
	require.NoError(t, err)
	assertDigits(t, ints(8487298, 9095725, 9732556), inv.(*hensel.Composite).Residues())
	assertRat(t, big.NewRat(3, 2), inv.Rat())
}

// TestComposite_NonUnitDivisor fails when one prime divides the divisor.
func TestComposite_NonUnitDivisor(t *testing.T) {
	a, err := hensel.NewComposite(primes, 3, big.NewRat(1, 2))
	require.NoError(t, err)
	b, err := hensel.CompositeFromResidues(primes, 3, ints(5, 0, 7))
	require.NoError(t, err)

	_, err = a.Div(b)
	assert.ErrorIs(t, err, hensel.ErrNoInverse)
	_, err = b.Inverse()
	assert.ErrorIs(t, err, hensel.ErrNoInverse)
}

// TestComposite_WithFamily checks rebuilt values.
func TestComposite_WithFamily(t *testing.T) {
	c, err := hensel.NewComposite(primes, 3, big.NewRat(2, 3))
	require.NoError(t, err)

	c2, err := c.WithRational(big.NewRat(3, 2))
	require.NoError(t, err)
	assertDigits(t, ints(8487298, 9095725, 9732556), c2.Residues())

	c3, err := c.WithExponent(2)
	require.NoError(t, err)
	assert.Equal(t, 2, c3.Exponent())
	assertRat(t, big.NewRat(2, 3), c3.Rat())

	other := []*big.Int{big.NewInt(313), big.NewInt(317), big.NewInt(331)}
	c4, err := c.WithPrimes(other)
	require.NoError(t, err)
	assertDigits(t, other, c4.Primes())
	assertRat(t, big.NewRat(2, 3), c4.Rat())

	c5, err := c.WithCodes(c2.Codes())
	require.NoError(t, err)
	assertRat(t, big.NewRat(3, 2), c5.Rat())
}

// TestComposite_ConcurrentDecode races lazy CRT decoding.
func TestComposite_ConcurrentDecode(t *testing.T) {
	c, err := hensel.CompositeFromResidues(primes, 3, ints(11316396, 12127632, 12976740))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assertRat(t, big.NewRat(2, 3), c.Rat())
		}()
	}
	wg.Wait()
}

// TestComposite_DecodesResidues checks an encoded composite reports what
// its CRT residue reconstructs to, inside and outside the bound.
func TestComposite_DecodesResidues(t *testing.T) {
	small := ints(3, 5, 7)
	c, err := hensel.NewComposite(small, 1, big.NewRat(100, 1))
	require.NoError(t, err)
	assertDigits(t, ints(1, 0, 2), c.Residues())
	assertRat(t, big.NewRat(-5, 1), c.Rat())

	again, err := hensel.CompositeFromResidues(small, 1, c.Residues())
	require.NoError(t, err)
	assertRat(t, again.Rat(), c.Rat(), "equal residues decode equally")
}

// TestComposite_ShrinkingRebuild re-encodes into a smaller product ring.
func TestComposite_ShrinkingRebuild(t *testing.T) {
	small := ints(3, 5, 7)
	c, err := hensel.NewComposite(small, 2, big.NewRat(50, 1))
	require.NoError(t, err)
	assertRat(t, big.NewRat(50, 1), c.Rat())

	shrunk, err := c.WithExponent(1)
	require.NoError(t, err)
	combined, err := shrunk.Combined()
	require.NoError(t, err)
	assert.Equal(t, "50", combined.String())
	assertRat(t, modarith.Reconstruct(shrunk.Modulus(), combined), shrunk.Rat())
	assert.NotEqual(t, "50", shrunk.Rat().RatString())
}

// TestComposite_RejectsNonCoprimeModuli keeps CRT decoding well defined.
func TestComposite_RejectsNonCoprimeModuli(t *testing.T) {
	_, err := hensel.NewComposite(ints(4, 6), 1, big.NewRat(1, 5))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
	_, err = hensel.CompositeFromResidues(ints(4, 6), 1, ints(1, 1))
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)

	c, err := hensel.NewComposite(ints(4, 9, 35), 1, big.NewRat(2, 1))
	require.NoError(t, err)
	assertRat(t, big.NewRat(2, 1), c.Rat())
}
