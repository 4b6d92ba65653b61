package ec

import (
	"fmt"

	"github.com/smallyu/go-mpint/pkg/bigint"
)

// Point is an affine point. The point at infinity has no coordinates.
type Point struct {
	X, Y     *bigint.Int
	infinity bool
}

// NewPoint returns the affine point (x, y). The coordinates are copied.
func NewPoint(x, y *bigint.Int) *Point {
	return &Point{X: x.Clone(), Y: y.Clone()}
}

// Infinity returns the identity element.
func Infinity() *Point {
	return &Point{infinity: true}
}

// IsInfinity reports whether pt is the identity element.
func (pt *Point) IsInfinity() bool {
	return pt.infinity
}

// Equal reports whether pt and q are the same point.
func (pt *Point) Equal(q *Point) bool {
	if pt.infinity || q.infinity {
		return pt.infinity == q.infinity
	}
	return pt.X.Cmp(q.X) == 0 && pt.Y.Cmp(q.Y) == 0
}

func (pt *Point) String() string {
	if pt.infinity {
		return "(inf)"
	}
	return fmt.Sprintf("(%s, %s)", pt.X, pt.Y)
}

// Neg returns -pt.
func (c *Curve) Neg(pt *Point) (*Point, error) {
	if pt.IsInfinity() {
		return Infinity(), nil
	}
	f := c.field()
	x, y := f.reduce(pt.X), f.neg(pt.Y)
	if f.err != nil {
		return nil, f.err
	}
	return &Point{X: x, Y: y}, nil
}

// Add returns p1 + p2 with the chord rule, dispatching to Double when the
// points are equal. It costs one field inversion.
func (c *Curve) Add(p1, p2 *Point) (*Point, error) {
	switch {
	case p1.IsInfinity():
		return c.reduced(p2)
	case p2.IsInfinity():
		return c.reduced(p1)
	}

	f := c.field()
	dx := f.sub(p2.X, p1.X)
	dy := f.sub(p2.Y, p1.Y)
	if f.err != nil {
		return nil, f.err
	}
	if dx.IsZero() {
		if dy.IsZero() {
			return c.Double(p1)
		}
		// p2 = -p1
		return Infinity(), nil
	}

	// lambda = (y2 - y1) / (x2 - x1)
	l := f.mul(dy, f.inv(dx))
	x3 := f.sub(f.sub(f.sqr(l), p1.X), p2.X)
	y3 := f.sub(f.mul(l, f.sub(p1.X, x3)), p1.Y)
	if f.err != nil {
		return nil, f.err
	}
	return &Point{X: x3, Y: y3}, nil
}

// Double returns 2*pt with the tangent rule.
func (c *Curve) Double(pt *Point) (*Point, error) {
	if pt.IsInfinity() {
		return Infinity(), nil
	}
	f := c.field()
	y := f.reduce(pt.Y)
	if f.err != nil {
		return nil, f.err
	}
	if y.IsZero() {
		return Infinity(), nil
	}

	// lambda = (3x^2 + a) / 2y
	l := f.mul(f.add(f.scale(3, f.sqr(pt.X)), c.A), f.inv(f.scale(2, y)))
	x3 := f.sub(f.sqr(l), f.scale(2, pt.X))
	y3 := f.sub(f.mul(l, f.sub(pt.X, x3)), y)
	if f.err != nil {
		return nil, f.err
	}
	return &Point{X: x3, Y: y3}, nil
}

// Sub returns p1 - p2.
func (c *Curve) Sub(p1, p2 *Point) (*Point, error) {
	n, err := c.Neg(p2)
	if err != nil {
		return nil, err
	}
	return c.Add(p1, n)
}

// ScalarMult returns k*pt by left-to-right double-and-add in affine
// coordinates. A negative k multiplies -pt by |k|.
func (c *Curve) ScalarMult(pt *Point, k *bigint.Int) (*Point, error) {
	base := pt
	if k.IsNegative() {
		var err error
		if base, err = c.Neg(pt); err != nil {
			return nil, err
		}
	}
	acc := Infinity()
	for i := k.HighestBit(); i >= 0; i-- {
		var err error
		if acc, err = c.Double(acc); err != nil {
			return nil, err
		}
		if k.Bit(i) == 1 {
			if acc, err = c.Add(acc, base); err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

// reduced returns pt with coordinates in [0, p).
func (c *Curve) reduced(pt *Point) (*Point, error) {
	if pt.IsInfinity() {
		return Infinity(), nil
	}
	f := c.field()
	x, y := f.reduce(pt.X), f.reduce(pt.Y)
	if f.err != nil {
		return nil, f.err
	}
	return &Point{X: x, Y: y}, nil
}
