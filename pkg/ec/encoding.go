package ec

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
	"github.com/smallyu/go-mpint/pkg/numtheory"
)

// SEC 1, Version 2.0, Section 2.3.3 point prefixes.
const (
	prefixInfinity     = 0x00
	prefixCompressed   = 0x02
	prefixUncompressed = 0x04
)

func (c *Curve) byteLen() int {
	return (c.BitSize + 7) / 8
}

// Marshal encodes pt in the uncompressed SEC 1 form. The point at infinity
// is the single byte 0x00.
func (c *Curve) Marshal(pt *Point) ([]byte, error) {
	if !c.IsOnCurve(pt) {
		return nil, mp.Errorf(mp.ErrMalformedInput, "marshal", "point is not on curve %q", c.Name)
	}
	if pt.IsInfinity() {
		return []byte{prefixInfinity}, nil
	}
	n := c.byteLen()
	out := make([]byte, 1+2*n)
	out[0] = prefixUncompressed
	if err := pt.X.FillBytes(out[1 : 1+n]); err != nil {
		return nil, err
	}
	if err := pt.Y.FillBytes(out[1+n:]); err != nil {
		return nil, err
	}
	return out, nil
}

// MarshalCompressed encodes pt as its x-coordinate and the parity of y.
func (c *Curve) MarshalCompressed(pt *Point) ([]byte, error) {
	if !c.IsOnCurve(pt) {
		return nil, mp.Errorf(mp.ErrMalformedInput, "marshal compressed", "point is not on curve %q", c.Name)
	}
	if pt.IsInfinity() {
		return []byte{prefixInfinity}, nil
	}
	out := make([]byte, 1+c.byteLen())
	out[0] = prefixCompressed | byte(pt.Y.Bit(0))
	if err := pt.X.FillBytes(out[1:]); err != nil {
		return nil, err
	}
	return out, nil
}

// Unmarshal decodes either SEC 1 form and checks that the point is on the
// curve.
func (c *Curve) Unmarshal(data []byte) (*Point, error) {
	if len(data) == 1 && data[0] == prefixInfinity {
		return Infinity(), nil
	}
	n := c.byteLen()
	words := n/8 + 1
	switch {
	case len(data) == 1+2*n && data[0] == prefixUncompressed:
		x, y := bigint.New(words), bigint.New(words)
		if err := x.SetBytes(data[1 : 1+n]); err != nil {
			return nil, err
		}
		if err := y.SetBytes(data[1+n:]); err != nil {
			return nil, err
		}
		pt := &Point{X: x, Y: y}
		if !c.IsOnCurve(pt) {
			return nil, mp.Errorf(mp.ErrMalformedInput, "unmarshal", "point is not on curve %q", c.Name)
		}
		return pt, nil

	case len(data) == 1+n && data[0]&^1 == prefixCompressed:
		x := bigint.New(words)
		if err := x.SetBytes(data[1:]); err != nil {
			return nil, err
		}
		if x.Cmp(c.P) >= 0 {
			return nil, mp.Errorf(mp.ErrMalformedInput, "unmarshal", "x-coordinate out of range")
		}
		rhs, err := c.Polynomial(x)
		if err != nil {
			return nil, err
		}
		y, err := numtheory.ModSqrt(rhs, c.P)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal: x-coordinate has no point")
		}
		if y.Bit(0) != uint(data[0]&1) {
			if y.IsZero() {
				return nil, mp.Errorf(mp.ErrMalformedInput, "unmarshal", "odd prefix for y = 0")
			}
			f := c.field()
			if y = f.neg(y); f.err != nil {
				return nil, f.err
			}
		}
		return &Point{X: x, Y: y}, nil
	}
	return nil, mp.Errorf(mp.ErrMalformedInput, "unmarshal", "unrecognized %d-byte encoding", len(data))
}
