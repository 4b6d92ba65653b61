package digits

// shlVU sets z = x << s for s < W and returns the bits shifted out of the
// top. z may be x.
func shlVU(z, x Nat, s uint) (c Word) {
	if len(x) == 0 {
		return 0
	}
	c = x[len(x)-1] >> (W - s)
	for i := len(x) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>(W-s)
	}
	z[0] = x[0] << s
	return c
}

// shrVU sets z = x >> s for s < W and returns the bits shifted out of the
// bottom, left aligned. z may be x.
func shrVU(z, x Nat, s uint) (c Word) {
	if len(x) == 0 {
		return 0
	}
	c = x[0] << (W - s)
	for i := 0; i < len(x)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<(W-s)
	}
	z[len(x)-1] = x[len(x)-1] >> s
	return c
}

// ShiftUp sets out = a << s, crossing digit boundaries as needed.
func ShiftUp(out, a Nat, s uint) (int, error) {
	if alias(out, a) {
		return -1, overlapErr("shift up")
	}
	x := trim(a)
	if len(x) == 0 {
		if err := setNat(out, nil, "shift up"); err != nil {
			return -1, err
		}
		return 1, nil
	}
	ds, bs := int(s/W), s%W
	need := len(x) + ds
	top := x[len(x)-1] >> (W - bs)
	if bs != 0 && top != 0 {
		need++
	}
	if need > len(out) {
		return -1, capacityErr("shift up", need, len(out))
	}
	clear(out)
	c := shlVU(out[ds:ds+len(x)], x, bs)
	if bs != 0 && c != 0 {
		out[ds+len(x)] = c
	}
	return need, nil
}

// ShiftDown sets out = a >> s, discarding the bits shifted out.
func ShiftDown(out, a Nat, s uint) (int, error) {
	if alias(out, a) {
		return -1, overlapErr("shift down")
	}
	x := trim(a)
	ds, bs := s/W, s%W
	if ds >= uint(len(x)) {
		if err := setNat(out, nil, "shift down"); err != nil {
			return -1, err
		}
		return 1, nil
	}
	src := x[ds:]
	need := len(src)
	if src[len(src)-1]>>bs == 0 {
		need--
	}
	need = max(need, 1)
	if need > len(out) {
		return -1, capacityErr("shift down", need, len(out))
	}
	clear(out)
	for i := 0; i < len(src); i++ {
		d := src[i] >> bs
		if i+1 < len(src) {
			d |= src[i+1] << (W - bs)
		}
		if i < len(out) {
			out[i] = d
		}
	}
	return Size(out), nil
}

// Truncate clears every bit of a at position n or above, in place.
func Truncate(a Nat, n uint) {
	d := n / W
	if d >= uint(len(a)) {
		return
	}
	a[d] &= (1 << (n % W)) - 1
	clear(a[d+1:])
}
