package digits

import (
	"math/bits"

	"github.com/smallyu/go-mpint/pkg/mp"
)

// ShortDivision sets q = a / d and returns a mod d. A nil q discards the
// quotient.
func ShortDivision(q, a Nat, d Word) (Word, error) {
	if d == 0 {
		return 0, mp.NewError(mp.ErrDivisionByZero, "short division")
	}
	if alias(q, a) {
		return 0, overlapErr("short division")
	}
	x := trim(a)
	if q != nil {
		need := len(x)
		if need > 0 && x[need-1] < d {
			need--
		}
		need = max(need, 1)
		if len(q) < need {
			return 0, capacityErr("short division", need, len(q))
		}
		clear(q)
	}
	var r Word
	for i := len(x) - 1; i >= 0; i-- {
		var qi Word
		qi, r = bits.Div64(r, x[i], d)
		if i < len(q) {
			q[i] = qi
		}
	}
	return r, nil
}

// EstimateQuotient returns the trial quotient digit of Knuth's Algorithm D:
// floor((a1*B^2 + a2*B + a3) / (b1*B + b2)), clamped to B-1.
//
// The divisor need not be normalized; both operands are shifted internally so
// that the top bit of the divisor is set, after which the classic estimate
// followed by at most two corrections is exact.
func EstimateQuotient(a1, a2, a3, b1, b2 Word) (Word, error) {
	if b1 == 0 {
		if b2 == 0 {
			return 0, mp.NewError(mp.ErrDivisionByZero, "estimate quotient")
		}
		if a1 != 0 || a2 >= b2 {
			return MaxWord, nil
		}
		q, _ := bits.Div64(a2, a3, b2)
		return q, nil
	}
	if a1 > b1 || (a1 == b1 && a2 >= b2) {
		return MaxWord, nil
	}

	// The shifted numerator fits in three digits because the quotient is
	// below B.
	s := uint(bits.LeadingZeros64(b1))
	v1 := b1<<s | b2>>(W-s)
	v2 := b2 << s
	u1 := a1<<s | a2>>(W-s)
	u2 := a2<<s | a3>>(W-s)
	u3 := a3 << s

	var qhat, rhat, c Word
	if u1 >= v1 {
		qhat = MaxWord
		rhat, c = bits.Add64(u2, v1, 0)
	} else {
		qhat, rhat = bits.Div64(u1, u2, v1)
	}
	// Once rhat reaches B the test below can no longer succeed.
	for c == 0 {
		hi, lo := bits.Mul64(qhat, v2)
		if hi < rhat || (hi == rhat && lo <= u3) {
			break
		}
		qhat--
		rhat, c = bits.Add64(rhat, v1, 0)
	}
	return qhat, nil
}

// LongDivision sets q = a / b and r = a mod b using Knuth's Algorithm D.
// Either output may be nil to discard it. The normalized working copies of a
// and b are allocated internally.
func LongDivision(q, r, a, b Nat) error {
	if alias(q, a) || alias(q, b) || alias(r, a) || alias(r, b) || alias(q, r) {
		return overlapErr("long division")
	}
	y := trim(b)
	if len(y) == 0 {
		return mp.NewError(mp.ErrDivisionByZero, "long division")
	}
	x := trim(a)
	if Compare(x, y) < 0 {
		if err := setOptional(r, x, "long division"); err != nil {
			return err
		}
		return setOptional(q, nil, "long division")
	}
	if len(y) == 1 {
		rem, err := ShortDivision(q, x, y[0])
		if err != nil {
			return err
		}
		return setOptional(r, Nat{rem}, "long division")
	}

	n := len(y)
	m := len(x) - n

	// D1: normalize so the divisor's top bit is set.
	s := uint(bits.LeadingZeros64(y[n-1]))
	v := make(Nat, n)
	shlVU(v, y, s)
	u := make(Nat, len(x)+1)
	u[len(x)] = shlVU(u[:len(x)], x, s)

	qs := make(Nat, m+1)
	for j := m; j >= 0; j-- {
		// D3: estimate. The divisor is normalized so this cannot fail.
		qhat, _ := EstimateQuotient(u[j+n], u[j+n-1], u[j+n-2], v[n-1], v[n-2])

		// D4: multiply and subtract.
		owed := mulSubVVW(u[j:j+n], v, qhat)
		var borrow Word
		u[j+n], borrow = bits.Sub64(u[j+n], owed, 0)

		// D6: add back while the partial remainder is negative.
		for borrow != 0 {
			qhat--
			var c Word
			for i := 0; i < n; i++ {
				u[j+i], c = bits.Add64(u[j+i], v[i], c)
			}
			u[j+n], c = bits.Add64(u[j+n], 0, c)
			if c != 0 {
				borrow = 0
			}
		}
		qs[j] = qhat
	}

	// D8: unnormalize the remainder.
	shrVU(u[:n], u[:n], s)
	if err := setOptional(r, u[:n], "long division"); err != nil {
		return err
	}
	return setOptional(q, qs, "long division")
}
