package modular

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

func fromBig(t *testing.T, v *big.Int) *bigint.Int {
	t.Helper()
	z, err := bigint.Parse(v.String(), v.BitLen()/64+1)
	require.NoError(t, err)
	return z
}

func toBig(t *testing.T, z *bigint.Int) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(z.String(), 10)
	require.True(t, ok)
	return v
}

func randBig(rng *rand.Rand, bits int, signed bool) *big.Int {
	v := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	if signed && rng.Intn(2) == 0 {
		v.Neg(v)
	}
	return v
}

func TestExpScenario(t *testing.T) {
	r, err := Exp(bigint.NewInt(7), bigint.NewInt(6), bigint.NewInt(23))
	require.NoError(t, err)
	assert.Equal(t, "4", r.String())
}

func TestExpEdgeCases(t *testing.T) {
	r, err := Exp(bigint.NewInt(5), bigint.NewInt(0), bigint.NewInt(7))
	require.NoError(t, err)
	assert.True(t, r.IsOne())

	r, err = Exp(bigint.NewInt(5), bigint.NewInt(3), bigint.NewInt(1))
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	// 3^-1 mod 7 = 5, so 3^-2 = 25 mod 7 = 4.
	r, err = Exp(bigint.NewInt(3), bigint.NewInt(-2), bigint.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, "4", r.String())

	_, err = Exp(bigint.NewInt(2), bigint.NewInt(-1), bigint.NewInt(8))
	assert.True(t, errors.Is(err, mp.ErrNotInvertible))

	_, err = Exp(bigint.NewInt(2), bigint.NewInt(3), bigint.NewInt(0))
	assert.True(t, errors.Is(err, mp.ErrDivisionByZero))
}

func TestFermat(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	p25519 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	for _, p := range []*big.Int{big.NewInt(23), big.NewInt(65537), m127, p25519} {
		pm1 := new(big.Int).Sub(p, big.NewInt(1))
		for i := 0; i < 10; i++ {
			a := new(big.Int).Add(new(big.Int).Rand(rng, pm1), big.NewInt(1))
			r, err := Exp(fromBig(t, a), fromBig(t, pm1), fromBig(t, p))
			require.NoError(t, err)
			assert.True(t, r.IsOne(), "%s^(p-1) mod %s", a, p)
		}
	}
}

func TestArithmeticMatchesBig(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	for i := 0; i < 200; i++ {
		m := randBig(rng, 300, false)
		if m.Sign() == 0 {
			continue
		}
		a, b := randBig(rng, 400, true), randBig(rng, 400, true)
		x, y, mm := fromBig(t, a), fromBig(t, b), fromBig(t, m)

		r, err := Mod(x, mm)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mod(a, m).String(), r.String())

		r, err = Add(x, y, mm)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mod(new(big.Int).Add(a, b), m).String(), r.String())

		r, err = Sub(x, y, mm)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mod(new(big.Int).Sub(a, b), m).String(), r.String())

		r, err = Mul(x, y, mm)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mod(new(big.Int).Mul(a, b), m).String(), r.String())

		e := randBig(rng, 200, false)
		r, err = Exp(x, fromBig(t, e), mm)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Exp(new(big.Int).Mod(a, m), e, m).String(), r.String())
	}
}

func TestModNegativeModulus(t *testing.T) {
	r, err := Mod(bigint.NewInt(-7), bigint.NewInt(-5))
	require.NoError(t, err)
	assert.Equal(t, "3", r.String())

	r, err = Mod(bigint.NewInt(-10), bigint.NewInt(5))
	require.NoError(t, err)
	assert.True(t, r.IsZero())
	assert.False(t, r.IsNegative())
}

func TestInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 100; i++ {
		m := randBig(rng, 256, false)
		m.SetBit(m, 0, 1)
		a := randBig(rng, 300, true)
		want := new(big.Int).ModInverse(new(big.Int).Mod(a, m), m)

		inv, err := Inverse(fromBig(t, a), fromBig(t, m))
		if want == nil {
			assert.True(t, errors.Is(err, mp.ErrNotInvertible))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want.String(), inv.String())

		q, err := Div(fromBig(t, a), fromBig(t, a), fromBig(t, m))
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Mod(big.NewInt(1), m).String(), q.String())
	}

	_, err := Inverse(bigint.NewInt(6), bigint.NewInt(9))
	assert.True(t, errors.Is(err, mp.ErrNotInvertible))
	assert.False(t, mp.IsContract(err))
}

func TestExtendedGCD(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	check := func(a, b *big.Int) {
		x, y, g, err := ExtendedGCD(fromBig(t, a), fromBig(t, b))
		require.NoError(t, err)

		bx, by, bg := toBig(t, x), toBig(t, y), toBig(t, g)
		assert.Equal(t, new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b)).String(), bg.String())
		lhs := new(big.Int).Add(new(big.Int).Mul(a, bx), new(big.Int).Mul(b, by))
		assert.Equal(t, bg.String(), lhs.String(), "a=%s b=%s", a, b)
	}
	for i := 0; i < 200; i++ {
		check(randBig(rng, 1+rng.Intn(300), true), randBig(rng, 1+rng.Intn(300), true))
	}
	check(big.NewInt(240), big.NewInt(46))
	check(big.NewInt(-240), big.NewInt(46))
	check(big.NewInt(240), big.NewInt(-46))
	check(big.NewInt(-240), big.NewInt(-46))
}

func TestExtendedGCDSignConvention(t *testing.T) {
	x, y, g, err := ExtendedGCD(bigint.NewInt(240), bigint.NewInt(46))
	require.NoError(t, err)
	assert.Equal(t, "2", g.String())
	assert.Equal(t, "-9", x.String())
	assert.Equal(t, "47", y.String())

	// Negating an input negates only its coefficient.
	x, y, g, err = ExtendedGCD(bigint.NewInt(-240), bigint.NewInt(46))
	require.NoError(t, err)
	assert.Equal(t, "2", g.String())
	assert.Equal(t, "9", x.String())
	assert.Equal(t, "47", y.String())

	x, y, g, err = ExtendedGCD(bigint.NewInt(0), bigint.NewInt(0))
	require.NoError(t, err)
	assert.True(t, x.IsZero())
	assert.True(t, y.IsZero())
	assert.True(t, g.IsZero())

	x, y, g, err = ExtendedGCD(bigint.NewInt(-5), bigint.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "5", g.String())
	assert.Equal(t, "-1", x.String())
	assert.True(t, y.IsZero())
}

func TestCRT(t *testing.T) {
	x, err := CRT(bigint.NewInt(2), bigint.NewInt(3), bigint.NewInt(3), bigint.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, "8", x.String())

	rng := rand.New(rand.NewSource(25))
	for i := 0; i < 50; i++ {
		m1 := randBig(rng, 200, false)
		m1.SetBit(m1, 0, 1)
		m2 := new(big.Int).Lsh(big.NewInt(1), uint(1+rng.Intn(150)))
		a1, a2 := randBig(rng, 250, true), randBig(rng, 250, true)

		x, err := CRT(fromBig(t, a1), fromBig(t, m1), fromBig(t, a2), fromBig(t, m2))
		require.NoError(t, err)
		v := toBig(t, x)
		assert.Equal(t, new(big.Int).Mod(a1, m1).String(), new(big.Int).Mod(v, m1).String())
		assert.Equal(t, new(big.Int).Mod(a2, m2).String(), new(big.Int).Mod(v, m2).String())
		assert.Equal(t, -1, v.Cmp(new(big.Int).Mul(m1, m2)))
		assert.False(t, x.IsNegative())
	}

	_, err = CRT(bigint.NewInt(1), bigint.NewInt(4), bigint.NewInt(1), bigint.NewInt(6))
	assert.True(t, errors.Is(err, mp.ErrNotInvertible))
}
