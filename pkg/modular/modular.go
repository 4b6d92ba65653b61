// Package modular implements arithmetic modulo a multiprecision integer.
//
// Results are freshly allocated and sized from the modulus. Operands may be
// negative or unreduced; they are brought into [0, |m|) first.
package modular

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// Mod returns a mod |m| in [0, |m|).
func Mod(a, m *bigint.Int) (*bigint.Int, error) {
	if m.IsZero() {
		return nil, mp.NewError(mp.ErrDivisionByZero, "mod")
	}
	r := bigint.New(m.Size())
	if err := bigint.UnsignedEuclid(nil, r, a, m); err != nil {
		return nil, err
	}
	if a.IsNegative() && !r.IsZero() {
		// -|a| = -q|m| - r, so wrap to |m| - r.
		r.Neg()
		if err := r.AddTo(abs(m, m.Size())); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add returns (a + b) mod m.
func Add(a, b, m *bigint.Int) (*bigint.Int, error) {
	s := bigint.New(max(a.Size(), b.Size()) + 1)
	if err := s.Add(a, b); err != nil {
		return nil, err
	}
	return Mod(s, m)
}

// Sub returns (a - b) mod m.
func Sub(a, b, m *bigint.Int) (*bigint.Int, error) {
	s := bigint.New(max(a.Size(), b.Size()) + 1)
	if err := s.Sub(a, b); err != nil {
		return nil, err
	}
	return Mod(s, m)
}

// Mul returns (a * b) mod m.
func Mul(a, b, m *bigint.Int) (*bigint.Int, error) {
	p := bigint.New(a.Size() + b.Size())
	if err := p.Mul(a, b); err != nil {
		return nil, err
	}
	return Mod(p, m)
}

// Div returns a * b^-1 mod m.
func Div(a, b, m *bigint.Int) (*bigint.Int, error) {
	inv, err := Inverse(b, m)
	if err != nil {
		return nil, err
	}
	return Mul(a, inv, m)
}

// Inverse returns x in [0, |m|) with a*x = 1 mod m. It fails with
// mp.ErrNotInvertible when gcd(a, m) != 1.
func Inverse(a, m *bigint.Int) (*bigint.Int, error) {
	ar, err := Mod(a, m)
	if err != nil {
		return nil, err
	}
	x, _, g, err := ExtendedGCD(ar, m)
	if err != nil {
		return nil, err
	}
	if !g.IsOne() {
		return nil, mp.Errorf(mp.ErrNotInvertible, "inverse", "gcd is %s", g)
	}
	return Mod(x, m)
}

// ExtendedGCD returns x, y and g = gcd(|a|, |b|) such that a*x + b*y = g.
//
// The coefficients are those of the iterative Euclidean algorithm run on
// |a| and |b|, with x negated when a < 0 and y negated when b < 0. For
// a = b = 0 all three results are zero; for b = 0, x = sign(a) and y = 0.
func ExtendedGCD(a, b *bigint.Int) (x, y, g *bigint.Int, err error) {
	n := max(a.Size(), b.Size())
	if a.IsZero() && b.IsZero() {
		return bigint.New(n + 1), bigint.New(n + 1), bigint.New(n), nil
	}

	r0, r1 := abs(a, n), abs(b, n)
	s0, s1 := bigint.FromInt64(1, n+1), bigint.New(n+1)
	t0, t1 := bigint.New(n+1), bigint.FromInt64(1, n+1)
	q, r := bigint.New(n), bigint.New(n)
	prod := bigint.New(2*n + 2)

	for !r1.IsZero() {
		if err := bigint.UnsignedEuclid(q, r, r0, r1); err != nil {
			return nil, nil, nil, err
		}
		r0, r1, r = r1, r, r0

		// s0, s1 = s1, s0 - q*s1
		if err := step(s0, s1, q, prod); err != nil {
			return nil, nil, nil, err
		}
		s0, s1 = s1, s0
		if err := step(t0, t1, q, prod); err != nil {
			return nil, nil, nil, err
		}
		t0, t1 = t1, t0
	}

	if a.IsNegative() {
		s0.Neg()
	}
	if b.IsNegative() {
		t0.Neg()
	}
	return s0, t0, r0, nil
}

// step sets c0 -= q*c1.
func step(c0, c1, q, prod *bigint.Int) error {
	if err := prod.Mul(q, c1); err != nil {
		return err
	}
	return c0.SubFrom(prod)
}

// CRT returns the unique x in [0, |m1*m2|) with x = a1 mod m1 and
// x = a2 mod m2. The moduli must be coprime.
func CRT(a1, m1, a2, m2 *bigint.Int) (*bigint.Int, error) {
	r1, err := Mod(a1, m1)
	if err != nil {
		return nil, err
	}
	inv, err := Inverse(m1, m2)
	if err != nil {
		return nil, errors.Wrap(err, "crt: moduli are not coprime")
	}
	// h = (a2 - r1) * m1^-1 mod m2
	h, err := Sub(a2, r1, m2)
	if err != nil {
		return nil, err
	}
	if h, err = Mul(h, inv, m2); err != nil {
		return nil, err
	}

	x := bigint.New(m1.Size() + m2.Size() + 1)
	if err := x.Mul(h, abs(m1, m1.Size())); err != nil {
		return nil, err
	}
	if err := x.AddTo(r1); err != nil {
		return nil, err
	}
	return x, nil
}

// Exp returns base^exp mod m.
//
// The exponent is scanned from its top bit down; every bit costs one
// squaring and one multiplication, and the product is kept only when the
// bit is set. A negative exponent inverts the base first.
func Exp(base, exp, m *bigint.Int) (*bigint.Int, error) {
	if m.IsZero() {
		return nil, mp.NewError(mp.ErrDivisionByZero, "exp")
	}
	n := m.Size()
	if m.CmpAbs(one) == 0 {
		return bigint.New(n), nil
	}

	var b *bigint.Int
	var err error
	if exp.IsNegative() {
		b, err = Inverse(base, m)
	} else {
		b, err = Mod(base, m)
	}
	if err != nil {
		return nil, err
	}

	acc, sq, mul := bigint.FromInt64(1, n), bigint.New(n), bigint.New(n)
	scratch := bigint.New(2 * n)
	for i := exp.HighestBit(); i >= 0; i-- {
		if err := squareMod(sq, acc, m, scratch); err != nil {
			return nil, err
		}
		if err := mulMod(mul, sq, b, m, scratch); err != nil {
			return nil, err
		}
		if exp.Bit(i) == 1 {
			acc, mul = mul, acc
		} else {
			acc, sq = sq, acc
		}
	}
	return acc, nil
}

var one = bigint.NewInt(1)

// abs returns a copy of |x| with the given capacity.
func abs(x *bigint.Int, capacity int) *bigint.Int {
	z := bigint.New(max(capacity, x.Size()))
	_ = z.Set(x)
	z.Abs()
	return z
}

// mulMod sets z = x*y mod |m| for non-negative x and y. z may be x or y.
func mulMod(z, x, y, m, scratch *bigint.Int) error {
	if err := scratch.Mul(x, y); err != nil {
		return err
	}
	return bigint.UnsignedEuclid(nil, z, scratch, m)
}

// squareMod sets z = x^2 mod |m| for non-negative x.
func squareMod(z, x, m, scratch *bigint.Int) error {
	if err := scratch.Square(x); err != nil {
		return err
	}
	return bigint.UnsignedEuclid(nil, z, scratch, m)
}
