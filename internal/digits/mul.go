package digits

import "math/bits"

// addMulVVW adds x*y into z[:len(x)] and returns the carry digit.
func addMulVVW(z, x Nat, y Word) (c Word) {
	for i := range x {
		z[i], c = MultWithCarryStep(x[i], y, z[i], c)
	}
	return c
}

// mulSubVVW subtracts x*y from z[:len(x)] and returns the digit still owed
// by the position above.
func mulSubVVW(z, x Nat, y Word) (c Word) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], y)
		var cc, b Word
		lo, cc = bits.Add64(lo, c, 0)
		hi += cc
		z[i], b = bits.Sub64(z[i], lo, 0)
		c = hi + b
	}
	return c
}

// addAt adds w to z at digit position i, propagating the carry. It reports
// false if the carry runs past the end of z.
func addAt(z Nat, i int, w Word) bool {
	for w != 0 {
		if i >= len(z) {
			return false
		}
		z[i], w = bits.Add64(z[i], w, 0)
		i++
	}
	return true
}

// Mult sets out = a * b by schoolbook multiplication.
func Mult(out, a, b Nat) (int, error) {
	if alias(out, a) || alias(out, b) {
		return -1, overlapErr("mult")
	}
	x, y := trim(a), trim(b)
	if len(x) == 0 || len(y) == 0 {
		if err := setNat(out, nil, "mult"); err != nil {
			return -1, err
		}
		return 1, nil
	}
	if need := len(x) + len(y) - 1; len(out) < need {
		return -1, capacityErr("mult", need, len(out))
	}
	clear(out)
	for i, xi := range x {
		c := addMulVVW(out[i:i+len(y)], y, xi)
		if j := i + len(y); j < len(out) {
			out[j] = c
		} else if c != 0 {
			return -1, capacityErr("mult", j+1, len(out))
		}
	}
	return Size(out), nil
}

// MultBy sets a *= b in place. b must not share storage with a.
//
// Rows are accumulated from the most significant digit of a downwards, so
// each digit of a is consumed before its position is overwritten.
func MultBy(a, b Nat) (int, error) {
	if alias(a, b) {
		return -1, overlapErr("mult by")
	}
	x, y := trim(a), trim(b)
	if len(x) == 0 {
		return 1, nil
	}
	if len(y) == 0 {
		clear(a)
		return 1, nil
	}
	if need := len(x) + len(y) - 1; len(a) < need {
		return -1, capacityErr("mult by", need, len(a))
	}
	for i := len(x) - 1; i >= 0; i-- {
		t := a[i]
		a[i] = 0
		c := addMulVVW(a[i:i+len(y)], y, t)
		if !addAt(a, i+len(y), c) {
			return -1, capacityErr("mult by", len(a)+1, len(a))
		}
	}
	return Size(a), nil
}

// Square sets out = a * a. Each cross product a[i]*a[j] with i < j is
// computed once and doubled, roughly halving the digit multiplications of
// Mult.
func Square(out, a Nat) (int, error) {
	if alias(out, a) {
		return -1, overlapErr("square")
	}
	x := trim(a)
	n := len(x)
	if n == 0 {
		if err := setNat(out, nil, "square"); err != nil {
			return -1, err
		}
		return 1, nil
	}
	if need := 2*n - 1; len(out) < need {
		return -1, capacityErr("square", need, len(out))
	}
	clear(out)
	for i := 0; i < n-1; i++ {
		out[i+n] = addMulVVW(out[2*i+1:i+n], x[i+1:], x[i])
	}

	// Double the cross products.
	top := 2*n - 1
	c := shlVU(out[:top], out[:top], 1)
	if top < len(out) {
		out[top] = c
	} else if c != 0 {
		return -1, capacityErr("square", top+1, len(out))
	}

	for i, xi := range x {
		hi, lo := bits.Mul64(xi, xi)
		if !addAt(out, 2*i, lo) || !addAt(out, 2*i+1, hi) {
			return -1, capacityErr("square", 2*n, len(out))
		}
	}
	return Size(out), nil
}

// mulAddWord sets z = z*m + a and returns the carry out of the top digit.
func mulAddWord(z Nat, m, a Word) Word {
	c := a
	for i := range z {
		z[i], c = MultWithCarryStep(z[i], m, c, 0)
	}
	return c
}
