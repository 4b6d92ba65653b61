package bigint

import (
	"strings"

	"github.com/smallyu/go-mpint/internal/digits"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// String returns z in base ten with a leading '-' when negative.
func (z *Int) String() string {
	buf := make([]byte, 20*z.Size()+1)
	n, err := digits.FormatDecimal(buf, z.mag)
	if err != nil {
		return "<invalid>"
	}
	if z.neg {
		return "-" + string(buf[:n])
	}
	return string(buf[:n])
}

// Hex returns z as lower-case hex, zero-padded to whole digits, with a
// leading '-' when negative.
func (z *Int) Hex() string {
	buf := make([]byte, 16*z.Size())
	n, err := digits.FormatHex(buf, z.mag)
	if err != nil {
		return "<invalid>"
	}
	if z.neg {
		return "-" + string(buf[:n])
	}
	return string(buf[:n])
}

// SetString sets z to the base ten value of s, which may start with '-'.
func (z *Int) SetString(s string) error {
	neg, body, err := splitSign(s, "set string")
	if err != nil {
		return err
	}
	if _, err := digits.ParseDecimal(z.mag, body); err != nil {
		return err
	}
	z.neg = neg
	z.Normalize()
	return nil
}

// SetHex sets z to the hex value of s, which may start with '-'.
func (z *Int) SetHex(s string) error {
	neg, body, err := splitSign(s, "set hex")
	if err != nil {
		return err
	}
	if _, err := digits.ParseHex(z.mag, body); err != nil {
		return err
	}
	z.neg = neg
	z.Normalize()
	return nil
}

// Parse returns the base ten value of s in an Int of the given capacity.
func Parse(s string, capacity int) (*Int, error) {
	z := New(capacity)
	if err := z.SetString(s); err != nil {
		return nil, err
	}
	return z, nil
}

// ParseHex returns the hex value of s in an Int of the given capacity.
func ParseHex(s string, capacity int) (*Int, error) {
	z := New(capacity)
	if err := z.SetHex(s); err != nil {
		return nil, err
	}
	return z, nil
}

func splitSign(s, op string) (bool, string, error) {
	body, neg := strings.CutPrefix(s, "-")
	if neg && body == "" {
		return false, "", mp.Errorf(mp.ErrMalformedInput, op, "sign without digits")
	}
	return neg, body, nil
}
