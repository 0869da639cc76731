// Package hensel: random sources for seed digits and test fixtures.
//
// Correctness never depends on randomness. Random values only fill the free
// digits of the Hensel-lifting seed and generate primes/rationals for
// fixtures and the CLI.
//
// Concurrency: both bundled sources are safe for concurrent use.
package hensel

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	mrand "math/rand"
	"sync"
)

// defaultRNGSeed is the seed used when callers pass seed == 0.
const defaultRNGSeed int64 = 1

// primalityRounds is the Miller–Rabin round count for SeededSource.Prime.
const primalityRounds = 20

// distinctAttemptsPerValue bounds the draws spent per requested distinct value.
const distinctAttemptsPerValue = 64

// RandomSource supplies the randomness the engine consumes.
type RandomSource interface {
	// Int returns a non-negative integer of exactly bits bits (bits ≥ 1).
	Int(bits int) (*big.Int, error)
	// Prime returns a prime of exactly bits bits; bits < 2 ⇒ ErrBadBitRange.
	Prime(bits int) (*big.Int, error)
	// Digit returns a uniform value in [0, p).
	Digit(p *big.Int) (*big.Int, error)
}

// CryptoSource draws from crypto/rand (or Reader, when set).
type CryptoSource struct {
	Reader io.Reader
}

func (s CryptoSource) reader() io.Reader {
	if s.Reader != nil {
		return s.Reader
	}
	return rand.Reader
}

// Int implements RandomSource.
func (s CryptoSource) Int(bits int) (*big.Int, error) {
	if bits < 1 {
		return nil, fmt.Errorf("%w: integer needs >= 1 bit, got %d", ErrBadBitRange, bits)
	}
	n, err := rand.Int(s.reader(), new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	if err != nil {
		return nil, err
	}
	return n.SetBit(n, bits-1, 1), nil
}

// Prime implements RandomSource.
func (s CryptoSource) Prime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime needs >= 2 bits, got %d", ErrBadBitRange, bits)
	}
	return rand.Prime(s.reader(), bits)
}

// Digit implements RandomSource.
func (s CryptoSource) Digit(p *big.Int) (*big.Int, error) {
	return rand.Int(s.reader(), p)
}

// SeededSource is a deterministic RandomSource: the same seed yields the same
// stream on every platform.
type SeededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic source.
// Policy: seed == 0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func NewSeededSource(seed int64) *SeededSource {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return &SeededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Int implements RandomSource.
func (s *SeededSource) Int(bits int) (*big.Int, error) {
	if bits < 1 {
		return nil, fmt.Errorf("%w: integer needs >= 1 bit, got %d", ErrBadBitRange, bits)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.intLocked(bits), nil
}

func (s *SeededSource) intLocked(bits int) *big.Int {
	n := new(big.Int).Rand(s.rng, new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))
	return n.SetBit(n, bits-1, 1)
}

// Prime implements RandomSource. Candidates of exactly bits bits are drawn
// until one passes ProbablyPrime; every bit length ≥ 2 contains a prime
// (Bertrand), so the loop terminates.
func (s *SeededSource) Prime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime needs >= 2 bits, got %d", ErrBadBitRange, bits)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		c := s.intLocked(bits)
		if bits > 2 {
			c.SetBit(c, 0, 1)
		}
		if c.ProbablyPrime(primalityRounds) {
			return c, nil
		}
	}
}

// Digit implements RandomSource.
func (s *SeededSource) Digit(p *big.Int) (*big.Int, error) {
	if p.Sign() <= 0 {
		return nil, shapeErrorf("digit base must be positive, got %s", p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return new(big.Int).Rand(s.rng, p), nil
}

// RandomRational returns a/b in lowest terms where a and b both have exactly
// bits bits.
func RandomRational(src RandomSource, bits int) (*big.Rat, error) {
	num, err := src.Int(bits)
	if err != nil {
		return nil, err
	}
	var (
		g     = new(big.Int)
		limit = distinctAttemptsPerValue * (bits + 1)
	)
	for attempt := 0; attempt < limit; attempt++ {
		den, err := src.Int(bits)
		if err != nil {
			return nil, err
		}
		if g.GCD(nil, nil, num, den).Cmp(big.NewInt(1)) == 0 {
			return new(big.Rat).SetFrac(num, den), nil
		}
	}
	return nil, fmt.Errorf("%w: no coprime %d-bit denominator found", ErrBadBitRange, bits)
}

// RandomDistinctIntegers returns quantity pairwise distinct integers of
// exactly bits bits.
func RandomDistinctIntegers(src RandomSource, quantity, bits int) ([]*big.Int, error) {
	return distinct(quantity, bits, src.Int)
}

// RandomDistinctPrimes returns quantity pairwise distinct primes of exactly
// bits bits, e.g. for a Composite prime list.
func RandomDistinctPrimes(src RandomSource, quantity, bits int) ([]*big.Int, error) {
	return distinct(quantity, bits, src.Prime)
}

func distinct(quantity, bits int, draw func(int) (*big.Int, error)) ([]*big.Int, error) {
	if quantity < 0 {
		return nil, shapeErrorf("quantity must be >= 0, got %d", quantity)
	}
	var (
		out   = make([]*big.Int, 0, quantity)
		seen  = make(map[string]struct{}, quantity)
		limit = distinctAttemptsPerValue * (quantity + 1)
	)
	for attempt := 0; len(out) < quantity; attempt++ {
		if attempt >= limit {
			return nil, fmt.Errorf("%w: cannot draw %d distinct %d-bit values", ErrBadBitRange, quantity, bits)
		}
		v, err := draw(bits)
		if err != nil {
			return nil, err
		}
		key := v.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
