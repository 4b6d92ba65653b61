package numtheory

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// PrimeGenerator draws random primes of a fixed bit length. The number of
// candidates it tries is bounded by the configuration.
type PrimeGenerator struct {
	random   io.Reader
	attempts int
	rounds   int
	logger   *zap.Logger
}

// Option configures a PrimeGenerator.
type Option func(*PrimeGenerator)

// WithLogger sets the logger used to report search progress.
func WithLogger(l *zap.Logger) Option {
	return func(g *PrimeGenerator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewPrimeGenerator returns a generator reading from random. A nil cfg
// selects mp.DefaultConfig.
func NewPrimeGenerator(random io.Reader, cfg *mp.Config, opts ...Option) *PrimeGenerator {
	if cfg == nil {
		cfg = mp.DefaultConfig()
	}
	g := &PrimeGenerator{
		random:   random,
		attempts: cfg.PrimeAttempts,
		rounds:   cfg.MillerRabinRounds,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a prime with exactly bits bits. Each candidate is odd
// with its top bit set. After the configured number of composite
// candidates it fails with mp.ErrRetryBoundExceeded.
func (g *PrimeGenerator) Generate(bits int) (*bigint.Int, error) {
	if bits < 2 {
		return nil, mp.Errorf(mp.ErrMalformedInput, "generate prime", "bit length %d is below 2", bits)
	}
	if g.rounds < 1 {
		return nil, mp.Errorf(mp.ErrMalformedInput, "generate prime", "%d Miller-Rabin rounds", g.rounds)
	}
	buf := make([]byte, (bits+7)/8)
	extra := uint(len(buf)*8 - bits)
	p := bigint.New(bits/64 + 1)

	for attempt := 1; attempt <= g.attempts; attempt++ {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return nil, errors.Wrap(err, "numtheory: reading random source")
		}
		buf[0] &= 0xff >> extra
		buf[0] |= 0x80 >> extra
		buf[len(buf)-1] |= 1
		if err := p.SetBytes(buf); err != nil {
			return nil, err
		}

		ok, err := ProbablyPrime(p, g.rounds, g.random)
		if err != nil {
			return nil, err
		}
		if ok {
			g.logger.Debug("prime found", zap.Int("bits", bits), zap.Int("attempts", attempt))
			return p, nil
		}
	}

	g.logger.Warn("prime search exhausted", zap.Int("bits", bits), zap.Int("attempts", g.attempts))
	return nil, mp.Errorf(mp.ErrRetryBoundExceeded, "generate prime", "no %d-bit prime in %d candidates", bits, g.attempts)
}

// GeneratePrime returns a prime with exactly bits bits, trying at most
// maxAttempts candidates.
func GeneratePrime(random io.Reader, bits, maxAttempts int) (*bigint.Int, error) {
	cfg := mp.DefaultConfig()
	cfg.PrimeAttempts = maxAttempts
	return NewPrimeGenerator(random, cfg).Generate(bits)
}
