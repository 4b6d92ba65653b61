package digits

import "github.com/smallyu/go-mpint/pkg/mp"

const (
	hexDigits = "0123456789abcdef"

	// decBase is the largest power of ten that fits in a digit.
	decBase      = 10000000000000000000
	decBaseWidth = 19
)

// FormatHex writes a into buf as lower-case hex, 16 characters per
// significant digit, and returns the number of bytes written.
func FormatHex(buf []byte, a Nat) (int, error) {
	x := trim(a)
	n := max(len(x), 1)
	need := n * 16
	if len(buf) < need {
		return -1, mp.Errorf(mp.ErrCapacityExceeded, "format hex", "need %d bytes, have %d", need, len(buf))
	}
	for i := 0; i < n; i++ {
		var d Word
		if j := n - 1 - i; j < len(x) {
			d = x[j]
		}
		for k := 15; k >= 0; k-- {
			buf[i*16+k] = hexDigits[d&0xf]
			d >>= 4
		}
	}
	return need, nil
}

// FormatDecimal writes a into buf in base ten without leading zeros and
// returns the number of bytes written.
func FormatDecimal(buf []byte, a Nat) (int, error) {
	x := trim(a)
	if len(x) == 0 {
		if len(buf) < 1 {
			return -1, mp.Errorf(mp.ErrCapacityExceeded, "format decimal", "need 1 byte, have 0")
		}
		buf[0] = '0'
		return 1, nil
	}

	// Peel off base 10^19 chunks, least significant first.
	work := make(Nat, len(x))
	copy(work, x)
	out := make([]byte, 0, len(x)*20)
	for len(work) > 0 {
		var r Word
		for i := len(work) - 1; i >= 0; i-- {
			work[i], r = divWW(r, work[i], decBase)
		}
		work = trim(work)
		for k := 0; k < decBaseWidth; k++ {
			out = append(out, byte('0'+r%10))
			r /= 10
			if len(work) == 0 && r == 0 {
				break
			}
		}
	}

	if len(buf) < len(out) {
		return -1, mp.Errorf(mp.ErrCapacityExceeded, "format decimal", "need %d bytes, have %d", len(out), len(buf))
	}
	for i := range out {
		buf[i] = out[len(out)-1-i]
	}
	return len(out), nil
}

// ParseHex sets out to the value of the hex string s. Upper and lower case
// are accepted; leading zeros do not count against the capacity.
func ParseHex(out Nat, s string) (int, error) {
	if len(s) == 0 {
		return -1, mp.Errorf(mp.ErrMalformedInput, "parse hex", "empty string")
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexValue(s[i]); !ok {
			return -1, mp.Errorf(mp.ErrMalformedInput, "parse hex", "invalid character %q at %d", s[i], i)
		}
	}
	start := 0
	for start < len(s)-1 && s[start] == '0' {
		start++
	}
	sig := s[start:]
	need := (len(sig) + 15) / 16
	if len(out) < need {
		return -1, mp.Errorf(mp.ErrCapacityExceeded, "parse hex", "need %d digits, have %d", need, len(out))
	}
	clear(out)
	for i := 0; i < len(sig); i++ {
		v, _ := hexValue(sig[len(sig)-1-i])
		out[i/16] |= Word(v) << (4 * (i % 16))
	}
	return Size(out), nil
}

// ParseDecimal sets out to the value of the base ten string s.
func ParseDecimal(out Nat, s string) (int, error) {
	if len(s) == 0 {
		return -1, mp.Errorf(mp.ErrMalformedInput, "parse decimal", "empty string")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1, mp.Errorf(mp.ErrMalformedInput, "parse decimal", "invalid character %q at %d", s[i], i)
		}
	}
	if len(out) == 0 {
		return -1, mp.Errorf(mp.ErrCapacityExceeded, "parse decimal", "need 1 digit, have 0")
	}
	clear(out)
	chunk := len(s) % decBaseWidth
	if chunk == 0 {
		chunk = decBaseWidth
	}
	for len(s) > 0 {
		var v, scale Word = 0, 1
		for _, ch := range []byte(s[:chunk]) {
			v = v*10 + Word(ch-'0')
			scale *= 10
		}
		if c := mulAddWord(out, scale, v); c != 0 {
			return -1, mp.Errorf(mp.ErrCapacityExceeded, "parse decimal", "value does not fit in %d digits", len(out))
		}
		s = s[chunk:]
		chunk = decBaseWidth
	}
	return Size(out), nil
}

// FillBytes writes a big-endian into buf, zero-padding on the left.
func FillBytes(buf []byte, a Nat) error {
	need := (BitLen(a) + 7) / 8
	if len(buf) < need {
		return mp.Errorf(mp.ErrCapacityExceeded, "fill bytes", "need %d bytes, have %d", need, len(buf))
	}
	clear(buf)
	for i, d := range trim(a) {
		for k := 0; k < 8; k++ {
			pos := len(buf) - 1 - (i*8 + k)
			if pos < 0 {
				break
			}
			buf[pos] = byte(d >> (8 * k))
		}
	}
	return nil
}

// SetBytes sets out to the big-endian value in buf.
func SetBytes(out Nat, buf []byte) (int, error) {
	for len(buf) > 0 && buf[0] == 0 {
		buf = buf[1:]
	}
	need := max((len(buf)+7)/8, 1)
	if len(out) < need {
		return -1, mp.Errorf(mp.ErrCapacityExceeded, "set bytes", "need %d digits, have %d", need, len(out))
	}
	clear(out)
	for i := 0; i < len(buf); i++ {
		out[i/8] |= Word(buf[len(buf)-1-i]) << (8 * (i % 8))
	}
	return Size(out), nil
}

func hexValue(ch byte) (byte, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

func divWW(hi, lo, d Word) (q, r Word) {
	q, r, _ = DivStep(hi, lo, d)
	return q, r
}
