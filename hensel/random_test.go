package hensel_test

import (
	"math/big"
	"sync"
	"testing"

	"github.com/katalvlaran/henselcode/hensel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRandomSources_BitLengths checks both bundled sources honour bit sizes.
func TestRandomSources_BitLengths(t *testing.T) {
	sources := map[string]hensel.RandomSource{
		"crypto": hensel.CryptoSource{},
		"seeded": hensel.NewSeededSource(42),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			for _, bits := range []int{1, 2, 9, 16, 64} {
				n, err := src.Int(bits)
				require.NoError(t, err)
				assert.Equal(t, bits, n.BitLen(), "Int(%d)", bits)
			}
			for _, bits := range []int{2, 3, 16, 48} {
				p, err := src.Prime(bits)
				require.NoError(t, err)
				assert.Equal(t, bits, p.BitLen(), "Prime(%d)", bits)
				assert.True(t, p.ProbablyPrime(20), "Prime(%d) = %s", bits, p)
			}
			d, err := src.Digit(p257)
			require.NoError(t, err)
			assert.True(t, d.Sign() >= 0 && d.Cmp(p257) < 0)

			_, err = src.Int(0)
			assert.ErrorIs(t, err, hensel.ErrBadBitRange)
			_, err = src.Prime(1)
			assert.ErrorIs(t, err, hensel.ErrBadBitRange)
		})
	}
}

// TestSeededSource_Deterministic checks equal seeds give equal streams and
// seed 0 maps to the default.
func TestSeededSource_Deterministic(t *testing.T) {
	draw := func(src *hensel.SeededSource) []string {
		var out []string
		for i := 0; i < 5; i++ {
			n, err := src.Int(32)
			require.NoError(t, err)
			p, err := src.Prime(20)
			require.NoError(t, err)
			out = append(out, n.String(), p.String())
		}
		return out
	}

	assert.Equal(t, draw(hensel.NewSeededSource(9)), draw(hensel.NewSeededSource(9)))
	assert.Equal(t, draw(hensel.NewSeededSource(0)), draw(hensel.NewSeededSource(1)))
	assert.NotEqual(t, draw(hensel.NewSeededSource(2)), draw(hensel.NewSeededSource(3)))
}

// TestSeededSource_Concurrent shares one source across goroutines.
func TestSeededSource_Concurrent(t *testing.T) {
	src := hensel.NewSeededSource(5)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d, err := src.Digit(p257)
				assert.NoError(t, err)
				assert.True(t, d.Cmp(p257) < 0)
			}
		}()
	}
	wg.Wait()
}

// TestRandomRational draws lowest-terms fractions of fixed bit size.
func TestRandomRational(t *testing.T) {
	src := hensel.NewSeededSource(17)
	for i := 0; i < 20; i++ {
		r, err := hensel.RandomRational(src, 9)
		require.NoError(t, err)
		assert.Equal(t, 9, r.Num().BitLen(), r.String())
		assert.Equal(t, 9, r.Denom().BitLen(), r.String())
		assert.Equal(t, 1, r.Num().Sign())
		assert.Equal(t, "1", new(big.Int).GCD(nil, nil, r.Num(), r.Denom()).String())
	}

	_, err := hensel.RandomRational(src, 0)
	assert.ErrorIs(t, err, hensel.ErrBadBitRange)
}

// TestRandomDistinct checks uniqueness and the exhausted-range failure.
func TestRandomDistinct(t *testing.T) {
	src := hensel.NewSeededSource(23)

	ps, err := hensel.RandomDistinctPrimes(src, 4, 16)
	require.NoError(t, err)
	require.Len(t, ps, 4)
	seen := map[string]bool{}
	for _, p := range ps {
		assert.False(t, seen[p.String()], "duplicate %s", p)
		seen[p.String()] = true
		assert.True(t, p.ProbablyPrime(20))
	}

	ns, err := hensel.RandomDistinctIntegers(src, 6, 12)
	require.NoError(t, err)
	assert.Len(t, ns, 6)

	// Only 2 and 3 have two bits.
	_, err = hensel.RandomDistinctPrimes(src, 5, 2)
	assert.ErrorIs(t, err, hensel.ErrBadBitRange)
	// 1 is the only one-bit integer.
	_, err = hensel.RandomDistinctIntegers(src, 2, 1)
	assert.ErrorIs(t, err, hensel.ErrBadBitRange)

	_, err = hensel.RandomDistinctIntegers(src, -1, 8)
	assert.ErrorIs(t, err, hensel.ErrWrongInputShape)
}

// TestRandomRoundTrip encodes random rationals inside the bound of a random
// 16-bit prime at k = 4.
func TestRandomRoundTrip(t *testing.T) {
	src := hensel.NewSeededSource(31)
	p, err := src.Prime(16)
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		r, err := hensel.RandomRational(src, 12)
		require.NoError(t, err)
		if new(big.Int).Mod(r.Denom(), p).Sign() == 0 {
			continue
		}
		h, err := hensel.NewExpansion(p, 4, r, hensel.WithRandomSource(src))
		require.NoError(t, err)
		back, err := hensel.ExpansionFromDigits(p, 4, h.Digits())
		require.NoError(t, err)
		assertRat(t, r, back.Rat())
	}
}
