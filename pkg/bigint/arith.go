package bigint

import (
	"github.com/smallyu/go-mpint/internal/digits"
	"github.com/smallyu/go-mpint/pkg/mp"
)

var oneDigit = digits.Nat{1}

// Add sets z = x + y.
func (z *Int) Add(x, y *Int) error {
	return z.add(x, y.mag, y.neg)
}

// Sub sets z = x - y.
func (z *Int) Sub(x, y *Int) error {
	return z.add(x, y.mag, !y.neg)
}

// add sets z = x + (-1)^yNeg * |y|.
func (z *Int) add(x *Int, y digits.Nat, yNeg bool) error {
	var err error
	switch {
	case x.neg == yNeg:
		_, err = digits.Add(z.mag, x.mag, y)
		z.neg = x.neg
	case digits.Compare(x.mag, y) >= 0:
		_, err = digits.Sub(z.mag, x.mag, y)
		z.neg = x.neg
	default:
		// |y| > |x|: the difference takes y's sign.
		_, err = digits.Sub(z.mag, y, x.mag)
		z.neg = yNeg
	}
	if err != nil {
		return err
	}
	z.Normalize()
	return nil
}

// AddTo sets z += y in place.
func (z *Int) AddTo(y *Int) error {
	return z.accumulate(y.mag, y.neg)
}

// SubFrom sets z -= y in place.
func (z *Int) SubFrom(y *Int) error {
	return z.accumulate(y.mag, !y.neg)
}

// Increment sets z += 1 in place.
func (z *Int) Increment() error {
	return z.accumulate(oneDigit, false)
}

// Decrement sets z -= 1 in place.
func (z *Int) Decrement() error {
	return z.accumulate(oneDigit, true)
}

func (z *Int) accumulate(y digits.Nat, yNeg bool) error {
	var err error
	switch {
	case z.neg == yNeg:
		_, err = digits.AddTo(z.mag, y)
	case digits.Compare(z.mag, y) >= 0:
		_, err = digits.SubFrom(z.mag, y)
	default:
		_, err = digits.SubReverse(z.mag, y)
		z.neg = yNeg
	}
	if err != nil {
		return err
	}
	z.Normalize()
	return nil
}

// Mul sets z = x * y.
func (z *Int) Mul(x, y *Int) error {
	if _, err := digits.Mult(z.mag, x.mag, y.mag); err != nil {
		return err
	}
	z.neg = x.neg != y.neg
	z.Normalize()
	return nil
}

// Square sets z = x * x.
func (z *Int) Square(x *Int) error {
	if _, err := digits.Square(z.mag, x.mag); err != nil {
		return err
	}
	z.neg = false
	return nil
}

// Shift sets z = x * 2^n for n >= 0 and z = sign(x) * (|x| >> -n) for n < 0.
// Right shifts truncate the magnitude toward zero.
func (z *Int) Shift(x *Int, n int) error {
	var err error
	if n >= 0 {
		_, err = digits.ShiftUp(z.mag, x.mag, uint(n))
	} else {
		_, err = digits.ShiftDown(z.mag, x.mag, uint(-n))
	}
	if err != nil {
		return err
	}
	z.neg = x.neg
	z.Normalize()
	return nil
}

// Truncate keeps the low n bits of |z| in place; the sign is kept.
func (z *Int) Truncate(n int) {
	digits.Truncate(z.mag, uint(max(n, 0)))
	z.Normalize()
}

// UnsignedEuclid sets q and r such that |a| = q*|b| + r with 0 <= r < |b|.
// Either q or r may be nil.
func UnsignedEuclid(q, r, a, b *Int) error {
	if b.IsZero() {
		return mp.NewError(mp.ErrDivisionByZero, "unsigned euclid")
	}
	if q != nil && q == r {
		return mp.NewError(mp.ErrOverlap, "unsigned euclid")
	}
	var qm, rm digits.Nat
	if q != nil {
		qm = q.mag
	}
	if r != nil {
		rm = r.mag
	}
	if err := digits.LongDivision(qm, rm, a.mag, b.mag); err != nil {
		return err
	}
	if q != nil {
		q.neg = false
	}
	if r != nil {
		r.neg = false
	}
	return nil
}
