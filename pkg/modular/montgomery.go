package modular

import (
	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// Montgomery holds the precomputed context for arithmetic in the
// Montgomery domain a*R mod m, with R = 2^r. Reduction uses only
// multiplication, masking and shifting.
//
// A Montgomery value is immutable and may be shared.
type Montgomery struct {
	m      *bigint.Int
	rBits  int
	mPrime *bigint.Int // -m^-1 mod R
	rModM  *bigint.Int // R mod m, the Montgomery form of one
	width  int         // scratch capacity in digits
}

// NewMontgomery precomputes the context for modulus m and R = 2^rBits. m
// must be odd and positive with R > m.
func NewMontgomery(m *bigint.Int, rBits int) (*Montgomery, error) {
	if !m.IsPositive() || !m.IsOdd() {
		return nil, mp.Errorf(mp.ErrNotInvertible, "montgomery", "modulus must be odd and positive")
	}
	if rBits < m.BitLen() {
		return nil, mp.Errorf(mp.ErrMalformedInput, "montgomery", "2^%d does not exceed a %d-bit modulus", rBits, m.BitLen())
	}

	rDigits := rBits/64 + 1
	r := bigint.New(rDigits)
	if err := r.Shift(one, rBits); err != nil {
		return nil, err
	}
	inv, err := Inverse(m, r)
	if err != nil {
		return nil, err
	}
	mPrime := bigint.New(rDigits)
	if err := mPrime.Sub(r, inv); err != nil {
		return nil, err
	}
	mPrime.Truncate(rBits)

	rModM, err := Mod(r, m)
	if err != nil {
		return nil, err
	}
	return &Montgomery{
		m:      m.Clone(),
		rBits:  rBits,
		mPrime: mPrime,
		rModM:  rModM,
		width:  2*max(m.Size(), rDigits) + 1,
	}, nil
}

// Modulus returns a copy of m.
func (mt *Montgomery) Modulus() *bigint.Int {
	return mt.m.Clone()
}

// RBits returns r, where R = 2^r.
func (mt *Montgomery) RBits() int {
	return mt.rBits
}

// MPrime returns a copy of -m^-1 mod R.
func (mt *Montgomery) MPrime() *bigint.Int {
	return mt.mPrime.Clone()
}

// ToMont returns a*R mod m.
func (mt *Montgomery) ToMont(a *bigint.Int) (*bigint.Int, error) {
	ar, err := Mod(a, mt.m)
	if err != nil {
		return nil, err
	}
	t := bigint.New(mt.width)
	if err := t.Shift(ar, mt.rBits); err != nil {
		return nil, err
	}
	return Mod(t, mt.m)
}

// Mul returns aR*bR*R^-1 mod m, the Montgomery form of a*b. Both operands
// must be in [0, m).
func (mt *Montgomery) Mul(aR, bR *bigint.Int) (*bigint.Int, error) {
	if err := mt.check(aR); err != nil {
		return nil, err
	}
	if err := mt.check(bR); err != nil {
		return nil, err
	}
	t := bigint.New(mt.width)
	if err := t.Mul(aR, bR); err != nil {
		return nil, err
	}
	z := bigint.New(mt.m.Size())
	if err := mt.redc(z, t); err != nil {
		return nil, err
	}
	return z, nil
}

// Reduce returns aR*R^-1 mod m, converting out of the Montgomery domain.
func (mt *Montgomery) Reduce(aR *bigint.Int) (*bigint.Int, error) {
	if err := mt.check(aR); err != nil {
		return nil, err
	}
	z := bigint.New(mt.m.Size())
	if err := mt.redc(z, aR); err != nil {
		return nil, err
	}
	return z, nil
}

// Exp returns base^exp mod m using Montgomery multiplication for every
// step. A negative exponent inverts the base first.
func (mt *Montgomery) Exp(base, exp *bigint.Int) (*bigint.Int, error) {
	b := base
	if exp.IsNegative() {
		inv, err := Inverse(base, mt.m)
		if err != nil {
			return nil, err
		}
		b = inv
	}
	bR, err := mt.ToMont(b)
	if err != nil {
		return nil, err
	}

	n := mt.m.Size()
	acc, sq, mul := bigint.New(n), bigint.New(n), bigint.New(n)
	_ = acc.Set(mt.rModM)
	t := bigint.New(mt.width)
	for i := exp.HighestBit(); i >= 0; i-- {
		if err := t.Square(acc); err != nil {
			return nil, err
		}
		if err := mt.redc(sq, t); err != nil {
			return nil, err
		}
		if err := t.Mul(sq, bR); err != nil {
			return nil, err
		}
		if err := mt.redc(mul, t); err != nil {
			return nil, err
		}
		if exp.Bit(i) == 1 {
			acc, mul = mul, acc
		} else {
			acc, sq = sq, acc
		}
	}
	return mt.Reduce(acc)
}

func (mt *Montgomery) check(x *bigint.Int) error {
	if x.IsNegative() || x.Cmp(mt.m) >= 0 {
		return mp.Errorf(mp.ErrMalformedInput, "montgomery", "operand outside [0, m)")
	}
	return nil
}

// redc sets z = t*R^-1 mod m for 0 <= t < m*R.
func (mt *Montgomery) redc(z, t *bigint.Int) error {
	// u = (t mod R) * m' mod R
	lo := bigint.New(mt.width)
	if err := lo.Set(t); err != nil {
		return err
	}
	lo.Truncate(mt.rBits)
	u := bigint.New(mt.width)
	if err := u.Mul(lo, mt.mPrime); err != nil {
		return err
	}
	u.Truncate(mt.rBits)

	// t + u*m is divisible by R.
	s := bigint.New(mt.width)
	if err := s.Mul(u, mt.m); err != nil {
		return err
	}
	if err := s.AddTo(t); err != nil {
		return err
	}
	w := bigint.New(mt.width)
	if err := w.Shift(s, -mt.rBits); err != nil {
		return err
	}
	if w.Cmp(mt.m) >= 0 {
		if err := w.SubFrom(mt.m); err != nil {
			return err
		}
	}
	return z.Set(w)
}
