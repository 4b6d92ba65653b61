package numtheory

import (
	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// IsQuadraticResidue reports whether a is a non-zero square modulo the odd
// prime p, by Euler's criterion a^((p-1)/2) = 1. Zero is not a residue.
func IsQuadraticResidue(a, p *bigint.Int) (bool, error) {
	ar, err := modular.Mod(a, p)
	if err != nil {
		return false, err
	}
	if ar.IsZero() {
		return false, nil
	}
	if p.CmpAbs(two) == 0 {
		return true, nil
	}
	e := bigint.New(p.Capacity())
	if err := e.Shift(p, -1); err != nil {
		return false, err
	}
	e.Abs()
	r, err := modular.Exp(ar, e, p)
	if err != nil {
		return false, err
	}
	return r.IsOne(), nil
}

// ModSqrt returns r with r^2 = a mod p for a prime p. It uses the closed
// forms for p = 3 mod 4 and p = 5 mod 8 and Tonelli-Shanks otherwise. A
// non-residue fails with mp.ErrNotAResidue.
func ModSqrt(a, p *bigint.Int) (*bigint.Int, error) {
	if !p.IsPositive() {
		return nil, mp.Errorf(mp.ErrMalformedInput, "mod sqrt", "modulus must be positive")
	}
	ar, err := modular.Mod(a, p)
	if err != nil {
		return nil, err
	}
	if ar.IsZero() || p.Cmp(two) == 0 {
		return ar, nil
	}
	ok, err := IsQuadraticResidue(ar, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, mp.NewError(mp.ErrNotAResidue, "mod sqrt")
	}

	switch {
	case p.Uint64()&3 == 3:
		return sqrt3Mod4(ar, p)
	case p.Uint64()&7 == 5:
		return sqrt5Mod8(ar, p)
	}
	return tonelliShanks(ar, p)
}

// sqrt3Mod4 returns a^((p+1)/4).
func sqrt3Mod4(a, p *bigint.Int) (*bigint.Int, error) {
	e := bigint.New(p.Capacity() + 1)
	if err := e.Add(p, one); err != nil {
		return nil, err
	}
	if err := e.Shift(e.Clone(), -2); err != nil {
		return nil, err
	}
	return modular.Exp(a, e, p)
}

// sqrt5Mod8 is Atkin's method: with v = (2a)^((p-5)/8) and i = 2a*v^2,
// the root is a*v*(i-1).
func sqrt5Mod8(a, p *bigint.Int) (*bigint.Int, error) {
	a2, err := modular.Add(a, a, p)
	if err != nil {
		return nil, err
	}
	e := bigint.New(p.Capacity())
	if err := e.Shift(p, -3); err != nil {
		return nil, err
	}
	v, err := modular.Exp(a2, e, p)
	if err != nil {
		return nil, err
	}
	i, err := modular.Mul(v, v, p)
	if err != nil {
		return nil, err
	}
	if i, err = modular.Mul(i, a2, p); err != nil {
		return nil, err
	}
	if i, err = modular.Sub(i, one, p); err != nil {
		return nil, err
	}
	r, err := modular.Mul(a, v, p)
	if err != nil {
		return nil, err
	}
	return modular.Mul(r, i, p)
}

// tonelliShanks handles any odd prime, including p = 1 mod 8.
func tonelliShanks(a, p *bigint.Int) (*bigint.Int, error) {
	// p - 1 = q * 2^s with q odd.
	pm1 := p.Clone()
	if err := pm1.Decrement(); err != nil {
		return nil, err
	}
	s := pm1.TrailingZeros()
	q := bigint.New(p.Capacity())
	if err := q.Shift(pm1, -s); err != nil {
		return nil, err
	}

	// Any non-residue z works; the first is small for a prime modulus.
	z := bigint.New(p.Capacity())
	_ = z.Set(two)
	for {
		if z.Cmp(p) >= 0 {
			return nil, mp.Errorf(mp.ErrMalformedInput, "mod sqrt", "no non-residue below the modulus")
		}
		res, err := IsQuadraticResidue(z, p)
		if err != nil {
			return nil, err
		}
		if !res {
			break
		}
		if err := z.Increment(); err != nil {
			return nil, err
		}
	}

	c, err := modular.Exp(z, q, p)
	if err != nil {
		return nil, err
	}
	t, err := modular.Exp(a, q, p)
	if err != nil {
		return nil, err
	}
	q1 := bigint.New(p.Capacity())
	if err := q1.Shift(q, -1); err != nil {
		return nil, err
	}
	if err := q1.Increment(); err != nil {
		return nil, err
	}
	r, err := modular.Exp(a, q1, p)
	if err != nil {
		return nil, err
	}

	m := s
	for !t.IsOne() {
		// Least i in (0, m) with t^(2^i) = 1.
		i, tt := 0, t
		for !tt.IsOne() {
			if i++; i == m {
				return nil, mp.NewError(mp.ErrNotAResidue, "mod sqrt")
			}
			if tt, err = modular.Mul(tt, tt, p); err != nil {
				return nil, err
			}
		}

		b := c
		for j := 0; j < m-i-1; j++ {
			if b, err = modular.Mul(b, b, p); err != nil {
				return nil, err
			}
		}
		m = i
		if c, err = modular.Mul(b, b, p); err != nil {
			return nil, err
		}
		if t, err = modular.Mul(t, c, p); err != nil {
			return nil, err
		}
		if r, err = modular.Mul(r, b, p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
