// Package ec implements short Weierstrass elliptic curves
// y^2 = x^3 + ax + b over a prime field, in affine and Jacobian coordinates.
//
// Every operation is a pure function of its curve and operands and never
// mutates them. The parameter fields of a Curve are exported for reading;
// callers must not modify them in place while the curve is shared.
package ec

import (
	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// Curve holds the parameters of y^2 = x^3 + ax + b mod P. N, Gx and Gy are
// nil for curves built without a base point.
type Curve struct {
	Name    string
	A, B, P *bigint.Int
	N       *bigint.Int // order of the base point
	Gx, Gy  *bigint.Int // base point
	BitSize int         // bit length of P

	aIsMinus3 bool
}

// NewCurve returns the curve y^2 = x^3 + ax + b mod p. a and b are reduced
// mod p; a singular curve (4a^3 + 27b^2 = 0 mod p) is rejected. p itself is
// not tested for primality.
func NewCurve(a, b, p *bigint.Int) (*Curve, error) {
	if p.Cmp(bigint.NewInt(3)) < 0 {
		return nil, mp.Errorf(mp.ErrMalformedInput, "new curve", "modulus %s is too small", p)
	}
	f := &fieldOps{p: p}
	ar, br := f.reduce(a), f.reduce(b)
	disc := f.add(f.scale(4, f.mul(ar, f.sqr(ar))), f.scale(27, f.sqr(br)))
	if f.err != nil {
		return nil, f.err
	}
	if disc.IsZero() {
		return nil, mp.Errorf(mp.ErrMalformedInput, "new curve", "singular curve")
	}
	c := &Curve{A: ar, B: br, P: p.Clone(), BitSize: p.BitLen()}
	c.aIsMinus3 = f.add(ar, bigint.NewInt(3)).IsZero()
	return c, nil
}

// withBase returns a copy of c carrying a name and base point.
func (c *Curve) withBase(name string, n, gx, gy *bigint.Int) *Curve {
	cc := *c
	cc.Name, cc.N, cc.Gx, cc.Gy = name, n, gx, gy
	return &cc
}

// clone returns a deep copy of c.
func (c *Curve) clone() *Curve {
	cc := *c
	for _, v := range []**bigint.Int{&cc.A, &cc.B, &cc.P, &cc.N, &cc.Gx, &cc.Gy} {
		if *v != nil {
			*v = (*v).Clone()
		}
	}
	return &cc
}

func (c *Curve) field() *fieldOps {
	return &fieldOps{p: c.P}
}

// Polynomial returns x^3 + ax + b mod p.
func (c *Curve) Polynomial(x *bigint.Int) (*bigint.Int, error) {
	f := c.field()
	// (x^2 + a)x + b
	r := f.add(f.mul(f.add(f.sqr(x), c.A), x), c.B)
	if f.err != nil {
		return nil, f.err
	}
	return r, nil
}

// IsOnCurve reports whether pt satisfies the curve equation with reduced
// coordinates. The point at infinity is on every curve.
func (c *Curve) IsOnCurve(pt *Point) bool {
	if pt.IsInfinity() {
		return true
	}
	if pt.X.IsNegative() || pt.Y.IsNegative() || pt.X.Cmp(c.P) >= 0 || pt.Y.Cmp(c.P) >= 0 {
		return false
	}
	rhs, err := c.Polynomial(pt.X)
	if err != nil {
		return false
	}
	f := c.field()
	lhs := f.sqr(pt.Y)
	return f.err == nil && lhs.Cmp(rhs) == 0
}

// Generator returns the base point.
func (c *Curve) Generator() (*Point, error) {
	if c.Gx == nil || c.Gy == nil {
		return nil, mp.Errorf(mp.ErrMalformedInput, "generator", "curve %q has no base point", c.Name)
	}
	return NewPoint(c.Gx, c.Gy), nil
}
