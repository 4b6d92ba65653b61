// Package bigint provides a signed multiprecision integer with an explicit,
// caller-controlled capacity.
//
// Binary operations write into their receiver, which must be a distinct
// value from the operands; the in-place operations (AddTo, SubFrom,
// Increment, Decrement, Neg, Abs, Truncate) mutate the receiver itself. An
// operation whose result does not fit the receiver's capacity fails with
// mp.ErrCapacityExceeded and leaves the receiver unspecified.
package bigint

import "github.com/smallyu/go-mpint/internal/digits"

// Int is a sign and a magnitude. Zero is never negative.
//
// The zero value is 0 with no capacity. It can be read, but writing a
// result into it fails with mp.ErrCapacityExceeded until Reserve grows it.
type Int struct {
	neg bool
	mag digits.Nat
}

// New returns zero with room for capacity digits (at least one).
func New(capacity int) *Int {
	return &Int{mag: make(digits.Nat, max(capacity, 1))}
}

// FromInt64 returns v with room for capacity digits.
func FromInt64(v int64, capacity int) *Int {
	z := New(capacity)
	if v < 0 {
		z.neg = true
		z.mag[0] = uint64(-v)
	} else {
		z.mag[0] = uint64(v)
	}
	return z
}

// FromUint64 returns v with room for capacity digits.
func FromUint64(v uint64, capacity int) *Int {
	z := New(capacity)
	z.mag[0] = v
	return z
}

// NewInt returns v in a single digit.
func NewInt(v int64) *Int {
	return FromInt64(v, 1)
}

// Capacity returns the number of digits z can hold.
func (z *Int) Capacity() int {
	return len(z.mag)
}

// Size returns the number of significant digits of |z|, at least 1.
func (z *Int) Size() int {
	return digits.Size(z.mag)
}

// Reserve grows z's capacity to at least n digits, keeping its value.
func (z *Int) Reserve(n int) {
	if n <= len(z.mag) {
		return
	}
	mag := make(digits.Nat, n)
	copy(mag, z.mag)
	z.mag = mag
}

// Set sets z = x.
func (z *Int) Set(x *Int) error {
	if z == x {
		return nil
	}
	if _, err := digits.Copy(z.mag, x.mag); err != nil {
		return err
	}
	z.neg = x.neg
	return nil
}

// Clone returns a copy of x with the same capacity.
func (x *Int) Clone() *Int {
	z := &Int{neg: x.neg, mag: make(digits.Nat, len(x.mag))}
	copy(z.mag, x.mag)
	return z
}

// Normalize restores the canonical form of zero.
func (z *Int) Normalize() {
	if digits.IsZero(z.mag) {
		z.neg = false
	}
}

// Wipe zeroes the digit buffer. Use it to release private values.
func (z *Int) Wipe() {
	clear(z.mag)
	z.neg = false
}

// IsZero reports whether z == 0.
func (z *Int) IsZero() bool {
	return digits.IsZero(z.mag)
}

// IsOne reports whether z == 1.
func (z *Int) IsOne() bool {
	return !z.neg && z.low() == 1 && digits.Size(z.mag) == 1
}

// IsPositive reports whether z > 0.
func (z *Int) IsPositive() bool {
	return !z.neg && !z.IsZero()
}

// IsNegative reports whether z < 0.
func (z *Int) IsNegative() bool {
	return z.neg
}

// IsOdd reports whether |z| is odd.
func (z *Int) IsOdd() bool {
	return z.low()&1 == 1
}

// Sign returns -1, 0 or +1.
func (z *Int) Sign() int {
	switch {
	case z.neg:
		return -1
	case z.IsZero():
		return 0
	}
	return 1
}

// Cmp compares x and y as signed values.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return -digits.Compare(x.mag, y.mag)
	}
	return digits.Compare(x.mag, y.mag)
}

// CmpAbs compares |x| and |y|.
func (x *Int) CmpAbs(y *Int) int {
	return digits.Compare(x.mag, y.mag)
}

// Neg negates z in place.
func (z *Int) Neg() {
	z.neg = !z.neg
	z.Normalize()
}

// Abs sets z = |z| in place.
func (z *Int) Abs() {
	z.neg = false
}

// Uint64 returns the low 64 bits of |z|.
func (z *Int) Uint64() uint64 {
	return z.low()
}

func (z *Int) low() uint64 {
	if len(z.mag) == 0 {
		return 0
	}
	return z.mag[0]
}

// Bits returns the significant digits of |z|, least significant first. The
// slice shares z's storage. Zero yields a single zero digit.
func (z *Int) Bits() []uint64 {
	if len(z.mag) == 0 {
		return []uint64{0}
	}
	return z.mag[:z.Size()]
}

// SetBits sets z to the non-negative value whose digits are w.
func (z *Int) SetBits(w []uint64) error {
	if _, err := digits.Copy(z.mag, w); err != nil {
		return err
	}
	z.neg = false
	return nil
}

// BitLen returns the bit length of |z|; 0 for zero.
func (z *Int) BitLen() int {
	return digits.BitLen(z.mag)
}

// HighestBit returns the index of the highest set bit of |z|, or -1 for zero.
func (z *Int) HighestBit() int {
	return z.BitLen() - 1
}

// Bit returns bit i of |z|.
func (z *Int) Bit(i int) uint {
	if i < 0 {
		return 0
	}
	return digits.Bit(z.mag, uint(i))
}

// TrailingZeros returns k such that 2^k is the largest power of two dividing
// z. It returns 0 for zero.
func (z *Int) TrailingZeros() int {
	return int(digits.TrailingZeros(z.mag))
}

// FillBytes writes |z| big-endian into buf, zero-padded on the left.
func (z *Int) FillBytes(buf []byte) error {
	return digits.FillBytes(buf, z.mag)
}

// Bytes returns |z| as a minimal big-endian byte slice.
func (z *Int) Bytes() []byte {
	buf := make([]byte, (z.BitLen()+7)/8)
	if err := digits.FillBytes(buf, z.mag); err != nil {
		panic(err) // buf is sized from BitLen
	}
	return buf
}

// SetBytes sets z to the non-negative big-endian value in buf.
func (z *Int) SetBytes(buf []byte) error {
	if _, err := digits.SetBytes(z.mag, buf); err != nil {
		return err
	}
	z.neg = false
	return nil
}
