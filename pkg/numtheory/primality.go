// Package numtheory provides primality testing, prime generation and
// modular square roots on top of package modular.
package numtheory

import (
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/mp"
)

// smallPrimes are used for trial division before any Miller-Rabin round.
var smallPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67,
	71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149,
	151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
	233, 239, 241, 251,
}

// fixedWitnesses make IsPrime deterministic below 3.18 * 10^23.
var fixedWitnesses = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

var (
	one = bigint.NewInt(1)
	two = bigint.NewInt(2)
)

// MillerRabin reports whether n passes a strong probable-prime test for
// every witness. Witnesses are reduced mod n; those that reduce to 0, 1 or
// n-1 carry no information and are skipped.
func MillerRabin(n *bigint.Int, witnesses []*bigint.Int) (bool, error) {
	switch {
	case n.Cmp(two) < 0:
		return false, nil
	case n.Cmp(bigint.NewInt(3)) <= 0:
		return true, nil
	case !n.IsOdd():
		return false, nil
	}

	// n - 1 = d * 2^s with d odd.
	nm1 := n.Clone()
	if err := nm1.Decrement(); err != nil {
		return false, err
	}
	s := nm1.TrailingZeros()
	d := bigint.New(nm1.Capacity())
	if err := d.Shift(nm1, -s); err != nil {
		return false, err
	}

	mt, err := modular.NewMontgomery(n, n.BitLen())
	if err != nil {
		return false, err
	}

nextWitness:
	for _, w := range witnesses {
		a, err := modular.Mod(w, n)
		if err != nil {
			return false, err
		}
		if a.CmpAbs(one) <= 0 || a.Cmp(nm1) == 0 {
			continue
		}
		x, err := mt.Exp(a, d)
		if err != nil {
			return false, err
		}
		if x.IsOne() || x.Cmp(nm1) == 0 {
			continue
		}
		for i := 1; i < s; i++ {
			if x, err = modular.Mul(x, x, n); err != nil {
				return false, err
			}
			if x.Cmp(nm1) == 0 {
				continue nextWitness
			}
			if x.IsOne() {
				return false, nil
			}
		}
		return false, nil
	}
	return true, nil
}

// trialDivision reports whether n's primality was settled by the small
// primes, and if so whether n is prime.
func trialDivision(n *bigint.Int) (settled, prime bool, err error) {
	if n.Cmp(two) < 0 {
		return true, false, nil
	}
	for _, p := range smallPrimes {
		bp := bigint.NewInt(p)
		if n.Cmp(bp) == 0 {
			return true, true, nil
		}
		r, err := modular.Mod(n, bp)
		if err != nil {
			return true, false, err
		}
		if r.IsZero() {
			return true, false, nil
		}
	}
	// Without a factor up to 251, any n below 257^2 is prime.
	if n.BitLen() <= 17 && n.Uint64() < 257*257 {
		return true, true, nil
	}
	return false, false, nil
}

// IsPrime tests n with trial division and then Miller-Rabin over the
// witnesses 2, 3, ..., 37. It is exact below 3.18 * 10^23.
func IsPrime(n *bigint.Int) (bool, error) {
	if settled, prime, err := trialDivision(n); settled || err != nil {
		return prime, err
	}
	ws := make([]*bigint.Int, len(fixedWitnesses))
	for i, w := range fixedWitnesses {
		ws[i] = bigint.NewInt(w)
	}
	return MillerRabin(n, ws)
}

// ProbablyPrime tests n with trial division and then rounds Miller-Rabin
// rounds using witnesses drawn from random. A composite passes with
// probability at most 4^-rounds. rounds must be at least 1.
func ProbablyPrime(n *bigint.Int, rounds int, random io.Reader) (bool, error) {
	if rounds < 1 {
		return false, mp.Errorf(mp.ErrMalformedInput, "probably prime", "%d rounds", rounds)
	}
	if settled, prime, err := trialDivision(n); settled || err != nil {
		return prime, err
	}
	// Witnesses are uniform in [2, n-2].
	bound := n.Clone()
	if err := bound.SubFrom(bigint.NewInt(3)); err != nil {
		return false, err
	}
	ws := make([]*bigint.Int, rounds)
	for i := range ws {
		w, err := RandomBelow(random, bound)
		if err != nil {
			return false, err
		}
		if err := w.AddTo(two); err != nil {
			return false, err
		}
		ws[i] = w
	}
	return MillerRabin(n, ws)
}

// RandomBits returns a uniform value in [0, 2^bits).
func RandomBits(random io.Reader, bits int) (*bigint.Int, error) {
	if bits <= 0 {
		return nil, mp.Errorf(mp.ErrMalformedInput, "random bits", "bit length %d", bits)
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, errors.Wrap(err, "numtheory: reading random source")
	}
	if extra := uint(len(buf)*8 - bits); extra > 0 {
		buf[0] &= 0xff >> extra
	}
	z := bigint.New(bits/64 + 1)
	if err := z.SetBytes(buf); err != nil {
		return nil, err
	}
	return z, nil
}

// maxRejections bounds RandomBelow. Each draw is rejected with probability
// below one half.
const maxRejections = 128

// RandomBelow returns a uniform value in [0, bound) by rejection sampling.
func RandomBelow(random io.Reader, bound *bigint.Int) (*bigint.Int, error) {
	if !bound.IsPositive() {
		return nil, mp.Errorf(mp.ErrMalformedInput, "random below", "bound must be positive")
	}
	bits := bound.BitLen()
	for range maxRejections {
		z, err := RandomBits(random, bits)
		if err != nil {
			return nil, err
		}
		if z.Cmp(bound) < 0 {
			return z, nil
		}
	}
	return nil, mp.Errorf(mp.ErrRetryBoundExceeded, "random below", "%d draws rejected", maxRejections)
}
