package ec

import (
	"github.com/smallyu/go-mpint/pkg/bigint"
)

// JacobianPoint is (X, Y, Z) standing for the affine point (X/Z^2, Y/Z^3).
// Z = 0 is the point at infinity.
type JacobianPoint struct {
	X, Y, Z *bigint.Int
}

// IsInfinity reports whether pt is the identity element.
func (pt *JacobianPoint) IsInfinity() bool {
	return pt.Z.IsZero()
}

func jacobianInfinity() *JacobianPoint {
	return &JacobianPoint{X: bigint.NewInt(1), Y: bigint.NewInt(1), Z: bigint.NewInt(0)}
}

// ToJacobian lifts an affine point with Z = 1.
func (c *Curve) ToJacobian(pt *Point) (*JacobianPoint, error) {
	if pt.IsInfinity() {
		return jacobianInfinity(), nil
	}
	r, err := c.reduced(pt)
	if err != nil {
		return nil, err
	}
	return &JacobianPoint{X: r.X, Y: r.Y, Z: bigint.NewInt(1)}, nil
}

// ToAffine converts back to affine coordinates with one field inversion.
func (c *Curve) ToAffine(pt *JacobianPoint) (*Point, error) {
	if pt.IsInfinity() {
		return Infinity(), nil
	}
	f := c.field()
	zinv := f.inv(pt.Z)
	zinv2 := f.sqr(zinv)
	x := f.mul(pt.X, zinv2)
	y := f.mul(pt.Y, f.mul(zinv2, zinv))
	if f.err != nil {
		return nil, f.err
	}
	return &Point{X: x, Y: y}, nil
}

// JacobianAdd returns p1 + p2 without any field inversion.
func (c *Curve) JacobianAdd(p1, p2 *JacobianPoint) (*JacobianPoint, error) {
	switch {
	case p1.IsInfinity():
		return p2, nil
	case p2.IsInfinity():
		return p1, nil
	}

	// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian.html#addition-add-2007-bl
	f := c.field()
	z1z1 := f.sqr(p1.Z)
	z2z2 := f.sqr(p2.Z)
	u1 := f.mul(p1.X, z2z2)
	u2 := f.mul(p2.X, z1z1)
	s1 := f.mul(p1.Y, f.mul(p2.Z, z2z2))
	s2 := f.mul(p2.Y, f.mul(p1.Z, z1z1))
	h := f.sub(u2, u1)
	r := f.sub(s2, s1)
	if f.err != nil {
		return nil, f.err
	}
	if h.IsZero() {
		if r.IsZero() {
			return c.JacobianDouble(p1)
		}
		return jacobianInfinity(), nil
	}

	i := f.sqr(f.scale(2, h))
	j := f.mul(h, i)
	r = f.scale(2, r)
	v := f.mul(u1, i)

	// X3 = r^2 - J - 2V
	x3 := f.sub(f.sub(f.sqr(r), j), f.scale(2, v))
	// Y3 = r(V - X3) - 2*S1*J
	y3 := f.sub(f.mul(r, f.sub(v, x3)), f.scale(2, f.mul(s1, j)))
	// Z3 = ((Z1 + Z2)^2 - Z1Z1 - Z2Z2) * H
	z3 := f.mul(f.sub(f.sub(f.sqr(f.add(p1.Z, p2.Z)), z1z1), z2z2), h)
	if f.err != nil {
		return nil, f.err
	}
	return &JacobianPoint{X: x3, Y: y3, Z: z3}, nil
}

// JacobianDouble returns 2*pt without any field inversion.
func (c *Curve) JacobianDouble(pt *JacobianPoint) (*JacobianPoint, error) {
	if pt.IsInfinity() {
		return jacobianInfinity(), nil
	}

	// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian.html#doubling-dbl-2007-bl
	f := c.field()
	xx := f.sqr(pt.X)
	yy := f.sqr(pt.Y)
	yyyy := f.sqr(yy)
	zz := f.sqr(pt.Z)

	var m *bigint.Int
	if c.aIsMinus3 {
		// 3X^2 - 3Z^4 = 3(X - ZZ)(X + ZZ)
		m = f.scale(3, f.mul(f.sub(pt.X, zz), f.add(pt.X, zz)))
	} else {
		m = f.add(f.scale(3, xx), f.mul(c.A, f.sqr(zz)))
	}
	// S = 2((X + YY)^2 - XX - YYYY) = 4*X*YY
	s := f.scale(2, f.sub(f.sub(f.sqr(f.add(pt.X, yy)), xx), yyyy))

	x3 := f.sub(f.sqr(m), f.scale(2, s))
	y3 := f.sub(f.mul(m, f.sub(s, x3)), f.scale(8, yyyy))
	// Z3 = (Y + Z)^2 - YY - ZZ = 2YZ
	z3 := f.sub(f.sub(f.sqr(f.add(pt.Y, pt.Z)), yy), zz)
	if f.err != nil {
		return nil, f.err
	}
	return &JacobianPoint{X: x3, Y: y3, Z: z3}, nil
}

// JacobianScalarMult returns k*pt. The ladder runs in Jacobian coordinates
// and inverts once at the end. A negative k multiplies -pt by |k|.
func (c *Curve) JacobianScalarMult(pt *Point, k *bigint.Int) (*Point, error) {
	base := pt
	if k.IsNegative() {
		var err error
		if base, err = c.Neg(pt); err != nil {
			return nil, err
		}
	}
	b, err := c.ToJacobian(base)
	if err != nil {
		return nil, err
	}
	acc := jacobianInfinity()
	for i := k.HighestBit(); i >= 0; i-- {
		if acc, err = c.JacobianDouble(acc); err != nil {
			return nil, err
		}
		if k.Bit(i) == 1 {
			if acc, err = c.JacobianAdd(acc, b); err != nil {
				return nil, err
			}
		}
	}
	return c.ToAffine(acc)
}

// ScalarBaseMult returns k*G. k is reduced modulo the group order when the
// curve has one.
func (c *Curve) ScalarBaseMult(k *bigint.Int) (*Point, error) {
	g, err := c.Generator()
	if err != nil {
		return nil, err
	}
	if c.N != nil {
		f := &fieldOps{p: c.N}
		if k = f.reduce(k); f.err != nil {
			return nil, f.err
		}
	}
	return c.JacobianScalarMult(g, k)
}
