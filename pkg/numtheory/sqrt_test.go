package numtheory

import (
	"math/big"
	mrand "math/rand"
	"slices"
	"testing"

	"filippo.io/edwards25519/field"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/mp"
)

func TestQuadraticResiduesSmallPrimes(t *testing.T) {
	for _, p := range []int64{3, 5, 7, 13, 17, 23, 41, 73, 97, 113} {
		squares := map[int64]bool{}
		for x := int64(1); x < p; x++ {
			squares[x*x%p] = true
		}
		bp := bigint.NewInt(p)
		for a := int64(0); a < p; a++ {
			ok, err := IsQuadraticResidue(bigint.NewInt(a), bp)
			require.NoError(t, err)
			assert.Equal(t, squares[a], ok, "%d mod %d", a, p)

			r, err := ModSqrt(bigint.NewInt(a), bp)
			if a != 0 && !squares[a] {
				assert.True(t, errors.Is(err, mp.ErrNotAResidue))
				continue
			}
			require.NoError(t, err)
			sq, err := modular.Mul(r, r, bp)
			require.NoError(t, err)
			assert.Equal(t, a, int64(sq.Uint64()), "sqrt(%d) mod %d = %s", a, p, r)
		}
	}
}

func TestModSqrtEdgeCases(t *testing.T) {
	r, err := ModSqrt(bigint.NewInt(1), bigint.NewInt(2))
	require.NoError(t, err)
	assert.True(t, r.IsOne())

	r, err = ModSqrt(bigint.NewInt(-4), bigint.NewInt(13))
	require.NoError(t, err)
	sq, err := modular.Mul(r, r, bigint.NewInt(13))
	require.NoError(t, err)
	assert.Equal(t, "9", sq.String())

	_, err = ModSqrt(bigint.NewInt(4), bigint.NewInt(0))
	assert.Error(t, err)
}

func TestModSqrtLargePrimes(t *testing.T) {
	rng := mrand.New(mrand.NewSource(61))
	primes := []string{
		"0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", // 5 mod 8
		"0xffffffff00000001000000000000000000000000ffffffffffffffffffffffff", // 3 mod 4
		"0xffffffffffffffffffffffffffffffff000000000000000000000001",         // 1 mod 8, s = 96
		"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", // 3 mod 4
	}
	for _, s := range primes {
		pb, _ := new(big.Int).SetString(s, 0)
		p := fromBig(t, pb)
		for i := 0; i < 10; i++ {
			x := new(big.Int).Rand(rng, pb)
			a := new(big.Int).Mod(new(big.Int).Mul(x, x), pb)

			r, err := ModSqrt(fromBig(t, a), p)
			require.NoError(t, err)
			sq, err := modular.Mul(r, r, p)
			require.NoError(t, err)
			assert.Equal(t, a.String(), sq.String())
		}
	}
}

func TestModSqrtMatchesField(t *testing.T) {
	pb := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	p := fromBig(t, pb)
	rng := mrand.New(mrand.NewSource(62))
	for i := 0; i < 40; i++ {
		a := new(big.Int).Rand(rng, pb)
		if a.Sign() == 0 {
			continue
		}
		buf := a.FillBytes(make([]byte, 32))
		slices.Reverse(buf)
		u, err := new(field.Element).SetBytes(buf)
		require.NoError(t, err)
		want, wasSquare := new(field.Element).SqrtRatio(u, new(field.Element).One())

		ok, err := IsQuadraticResidue(fromBig(t, a), p)
		require.NoError(t, err)
		assert.Equal(t, wasSquare == 1, ok)

		r, err := ModSqrt(fromBig(t, a), p)
		if wasSquare == 0 {
			assert.True(t, errors.Is(err, mp.ErrNotAResidue))
			continue
		}
		require.NoError(t, err)
		wb := want.Bytes()
		slices.Reverse(wb)
		w := new(big.Int).SetBytes(wb)
		got, _ := new(big.Int).SetString(r.String(), 10)
		// The two roots are w and p - w.
		if got.Cmp(w) != 0 {
			assert.Equal(t, new(big.Int).Sub(pb, w).String(), got.String())
		}
	}
}
