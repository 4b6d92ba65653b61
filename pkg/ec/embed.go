package ec

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
	"github.com/smallyu/go-mpint/pkg/numtheory"
)

// maxCounter is the number of values of the one-byte counter.
const maxCounter = 256

// Embed maps msg to a curve point whose x-coordinate is msg followed by a
// one-byte counter. The counter starts at zero and is incremented until
// x^3 + ax + b is a square; at most min(retryBound, 256) values are tried
// before failing with mp.ErrRetryBoundExceeded. A message too long for x to
// stay below p fails with mp.ErrMalformedInput.
func (c *Curve) Embed(msg []byte, retryBound int) (*Point, error) {
	pt, _, err := c.embed(msg, retryBound)
	return pt, err
}

func (c *Curve) embed(msg []byte, retryBound int) (*Point, int, error) {
	buf := make([]byte, len(msg)+1)
	copy(buf, msg)
	x := bigint.New(len(buf)/8 + 1)

	attempts := max(min(retryBound, maxCounter), 0)
	for ctr := 0; ctr < attempts; ctr++ {
		buf[len(msg)] = byte(ctr)
		if err := x.SetBytes(buf); err != nil {
			return nil, ctr, err
		}
		if x.Cmp(c.P) >= 0 {
			return nil, ctr, mp.Errorf(mp.ErrMalformedInput, "embed", "%d-byte message does not fit a %d-bit field", len(msg), c.BitSize)
		}

		rhs, err := c.Polynomial(x)
		if err != nil {
			return nil, ctr, err
		}
		y, err := numtheory.ModSqrt(rhs, c.P)
		switch {
		case errors.Is(err, mp.ErrNotAResidue):
			continue
		case err != nil:
			return nil, ctr, err
		}
		return &Point{X: x.Clone(), Y: y}, ctr + 1, nil
	}
	return nil, attempts, mp.Errorf(mp.ErrRetryBoundExceeded, "embed", "no point after %d attempts", attempts)
}

// Extract recovers the msgSize-byte message embedded in pt by dropping the
// counter byte from its x-coordinate.
func (c *Curve) Extract(pt *Point, msgSize int) ([]byte, error) {
	if pt.IsInfinity() {
		return nil, mp.Errorf(mp.ErrMalformedInput, "extract", "point at infinity carries no message")
	}
	if msgSize < 0 {
		return nil, mp.Errorf(mp.ErrMalformedInput, "extract", "negative message size")
	}
	buf := make([]byte, msgSize+1)
	if err := pt.X.FillBytes(buf); err != nil {
		return nil, errors.Wrapf(err, "extract: x-coordinate is longer than %d bytes", msgSize+1)
	}
	return buf[:msgSize], nil
}

// Embedder embeds messages into a fixed curve with a configured retry
// bound, logging each search.
type Embedder struct {
	curve    *Curve
	attempts int
	logger   *zap.Logger
}

// NewEmbedder returns an Embedder for c. A nil cfg selects
// mp.DefaultConfig and a nil logger discards output.
func NewEmbedder(c *Curve, cfg *mp.Config, logger *zap.Logger) *Embedder {
	if cfg == nil {
		cfg = mp.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{curve: c, attempts: cfg.EmbedAttempts, logger: logger}
}

// Embed maps msg to a point on the Embedder's curve.
func (e *Embedder) Embed(msg []byte) (*Point, error) {
	pt, tries, err := e.curve.embed(msg, e.attempts)
	if err != nil {
		e.logger.Warn("embedding failed",
			zap.String("curve", e.curve.Name),
			zap.Int("message_bytes", len(msg)),
			zap.Int("attempts", tries),
			zap.Error(err))
		return nil, err
	}
	e.logger.Debug("message embedded",
		zap.String("curve", e.curve.Name),
		zap.Int("message_bytes", len(msg)),
		zap.Int("attempts", tries))
	return pt, nil
}

// Extract recovers a message of msgSize bytes from pt.
func (e *Embedder) Extract(pt *Point, msgSize int) ([]byte, error) {
	return e.curve.Extract(pt, msgSize)
}
