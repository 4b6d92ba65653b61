// Package digits implements unsigned arithmetic on magnitudes stored as
// little-endian sequences of 64-bit digits.
//
// A Nat's length is its capacity. The number of significant digits is never
// stored; Size recomputes it on demand. Outputs must not share storage with
// inputs, except for the in-place operations (AddTo, SubFrom, MultBy) which
// mutate their first operand. Functions that return a size return -1 together
// with an error on failure, and leave the output contents unspecified.
package digits

import (
	"math/bits"

	"github.com/smallyu/go-mpint/pkg/mp"
)

// Word is a single digit in radix 2^W.
type Word = uint64

const (
	// W is the digit width in bits.
	W = 64
	// MaxWord is the largest digit value, B-1.
	MaxWord = ^Word(0)
)

// Nat is a magnitude, least significant digit first.
type Nat []Word

// AddStep returns a+b as a digit and a carry in {0, 1}.
func AddStep(a, b Word) (sum, carry Word) {
	return bits.Add64(a, b, 0)
}

// SubStep returns a-b as a digit and a borrow in {0, 1}.
func SubStep(a, b Word) (diff, borrow Word) {
	return bits.Sub64(a, b, 0)
}

// AddWithCarryStep returns a+b+carry. carry must be 0 or 1.
func AddWithCarryStep(a, b, carry Word) (sum, carryOut Word) {
	return bits.Add64(a, b, carry)
}

// SubWithBorrowStep returns a-b-borrow. borrow must be 0 or 1.
func SubWithBorrowStep(a, b, borrow Word) (diff, borrowOut Word) {
	return bits.Sub64(a, b, borrow)
}

// MultStep returns the double-width product of a and b.
func MultStep(a, b Word) (lo, hi Word) {
	hi, lo = bits.Mul64(a, b)
	return lo, hi
}

// MultWithCarryStep returns a*b + c1 + c2 split into a low digit and a
// carry digit. The sum never exceeds B^2 - 1.
func MultWithCarryStep(a, b, c1, c2 Word) (lo, hi Word) {
	hi, lo = bits.Mul64(a, b)
	var c Word
	lo, c = bits.Add64(lo, c1, 0)
	hi += c
	lo, c = bits.Add64(lo, c2, 0)
	hi += c
	return lo, hi
}

// DivStep divides the double digit (hi, lo) by d. The quotient must fit in a
// single digit, so hi must be below d.
func DivStep(hi, lo, d Word) (q, r Word, err error) {
	if d == 0 {
		return 0, 0, mp.NewError(mp.ErrDivisionByZero, "div step")
	}
	if hi >= d {
		return 0, 0, mp.Errorf(mp.ErrDivStepOverflow, "div step", "high digit %#x >= divisor %#x", hi, d)
	}
	q, r = bits.Div64(hi, lo, d)
	return q, r, nil
}

// trim returns a without its high zero digits. Zero trims to length 0.
func trim(a Nat) Nat {
	i := len(a)
	for i > 0 && a[i-1] == 0 {
		i--
	}
	return a[:i]
}

// Size returns the index of the highest nonzero digit plus one, and 1 for zero.
func Size(a Nat) int {
	if n := len(trim(a)); n > 0 {
		return n
	}
	return 1
}

// IsZero reports whether every digit of a is zero.
func IsZero(a Nat) bool {
	return len(trim(a)) == 0
}

// Compare returns -1, 0 or +1 as a is less than, equal to or greater than b.
// Excess capacity is ignored.
func Compare(a, b Nat) int {
	x, y := trim(a), trim(b)
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// alias reports whether x and y share the same backing array end.
func alias(x, y Nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

func sameStart(x, y Nat) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
}

func overlapErr(op string) error {
	return mp.NewError(mp.ErrOverlap, op)
}

func capacityErr(op string, need, have int) error {
	return mp.Errorf(mp.ErrCapacityExceeded, op, "need %d digits, have %d", need, have)
}

// Copy sets out to a. out must hold at least one digit.
func Copy(out, a Nat) (int, error) {
	if alias(out, a) && !sameStart(out, a) {
		return -1, overlapErr("copy")
	}
	if err := setNat(out, a, "copy"); err != nil {
		return -1, err
	}
	return Size(out), nil
}

// setNat stores x into out. out must hold at least one digit.
func setNat(out, x Nat, op string) error {
	x = trim(x)
	if len(out) < len(x) || len(out) == 0 {
		return capacityErr(op, max(len(x), 1), len(out))
	}
	copy(out, x)
	clear(out[len(x):])
	return nil
}

// setOptional is setNat for outputs that may be nil to discard the value.
func setOptional(out, x Nat, op string) error {
	if out == nil {
		return nil
	}
	return setNat(out, x, op)
}

// Add sets out = a + b. out needs only as many digits as the sum's size.
func Add(out, a, b Nat) (int, error) {
	if alias(out, a) || alias(out, b) {
		return -1, overlapErr("add")
	}
	x, y := trim(a), trim(b)
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(out) < max(len(x), 1) {
		return -1, capacityErr("add", max(len(x), 1), len(out))
	}
	var c Word
	for i := range y {
		out[i], c = bits.Add64(x[i], y[i], c)
	}
	for i := len(y); i < len(x); i++ {
		out[i], c = bits.Add64(x[i], 0, c)
	}
	n := len(x)
	if c != 0 {
		if n >= len(out) {
			return -1, capacityErr("add", n+1, len(out))
		}
		out[n] = c
		n++
	}
	clear(out[n:])
	return max(n, 1), nil
}

// Sub sets out = a - b. It fails with ErrNegativeResult when b > a.
func Sub(out, a, b Nat) (int, error) {
	if alias(out, a) || alias(out, b) {
		return -1, overlapErr("sub")
	}
	if Compare(a, b) < 0 {
		return -1, mp.NewError(mp.ErrNegativeResult, "sub")
	}
	x, y := trim(a), trim(b)
	if len(out) == 0 {
		return -1, capacityErr("sub", 1, 0)
	}
	var c Word
	for i := range x {
		var yi Word
		if i < len(y) {
			yi = y[i]
		}
		var d Word
		d, c = bits.Sub64(x[i], yi, c)
		if i < len(out) {
			out[i] = d
		} else if d != 0 {
			return -1, capacityErr("sub", i+1, len(out))
		}
	}
	clear(out[min(len(x), len(out)):])
	return Size(out), nil
}

// AddTo sets a += b in place. b may be a itself.
func AddTo(a, b Nat) (int, error) {
	if alias(a, b) && !sameStart(a, b) {
		return -1, overlapErr("add to")
	}
	y := trim(b)
	if len(y) > len(a) {
		return -1, capacityErr("add to", len(y), len(a))
	}
	var c Word
	for i := range y {
		a[i], c = bits.Add64(a[i], y[i], c)
	}
	for i := len(y); c != 0 && i < len(a); i++ {
		a[i], c = bits.Add64(a[i], 0, c)
	}
	if c != 0 {
		return -1, capacityErr("add to", len(a)+1, len(a))
	}
	return Size(a), nil
}

// SubFrom sets a -= b in place. It fails with ErrNegativeResult when b > a.
func SubFrom(a, b Nat) (int, error) {
	if alias(a, b) && !sameStart(a, b) {
		return -1, overlapErr("sub from")
	}
	if Compare(a, b) < 0 {
		return -1, mp.NewError(mp.ErrNegativeResult, "sub from")
	}
	y := trim(b)
	var c Word
	for i := range y {
		a[i], c = bits.Sub64(a[i], y[i], c)
	}
	for i := len(y); c != 0 && i < len(a); i++ {
		a[i], c = bits.Sub64(a[i], 0, c)
	}
	return Size(a), nil
}

// BitLen returns the number of bits needed to represent a; 0 for zero.
func BitLen(a Nat) int {
	x := trim(a)
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*W + bits.Len64(x[len(x)-1])
}

// Bit returns bit i of a.
func Bit(a Nat, i uint) uint {
	j := i / W
	if j >= uint(len(a)) {
		return 0
	}
	return uint(a[j]>>(i%W)) & 1
}

// TrailingZeros returns the exponent of the largest power of two dividing a,
// and 0 for zero.
func TrailingZeros(a Nat) uint {
	for i, d := range a {
		if d != 0 {
			return uint(i)*W + uint(bits.TrailingZeros64(d))
		}
	}
	return 0
}

// SubReverse sets a = b - a in place. It fails with ErrNegativeResult when
// a > b.
func SubReverse(a, b Nat) (int, error) {
	if alias(a, b) && !sameStart(a, b) {
		return -1, overlapErr("sub reverse")
	}
	if Compare(b, a) < 0 {
		return -1, mp.NewError(mp.ErrNegativeResult, "sub reverse")
	}
	y := trim(b)
	if len(y) > len(a) {
		return -1, capacityErr("sub reverse", len(y), len(a))
	}
	var c Word
	for i := range y {
		a[i], c = bits.Sub64(y[i], a[i], c)
	}
	return Size(a), nil
}
