package ec

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

func TestMarshalRoundTrip(t *testing.T) {
	reg := StandardCurves()
	for _, name := range reg.Names() {
		c, err := reg.Lookup(name)
		require.NoError(t, err)
		for _, k := range []int64{1, 2, 3, 0xdeadbeef} {
			p, err := c.ScalarBaseMult(bigint.NewInt(k))
			require.NoError(t, err)

			data, err := c.Marshal(p)
			require.NoError(t, err)
			assert.Len(t, data, 1+2*c.byteLen())
			q, err := c.Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, p.Equal(q), name)

			data, err = c.MarshalCompressed(p)
			require.NoError(t, err)
			assert.Len(t, data, 1+c.byteLen())
			q, err = c.Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, p.Equal(q), name)
		}

		data, err := c.Marshal(Infinity())
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00}, data)
		q, err := c.Unmarshal(data)
		require.NoError(t, err)
		assert.True(t, q.IsInfinity())
	}
}

func TestMarshalMatchesLibrary(t *testing.T) {
	c, err := StandardCurves().Lookup("P-384")
	require.NoError(t, err)
	p, err := c.ScalarBaseMult(bigint.NewInt(99))
	require.NoError(t, err)

	x, y := elliptic.P384().ScalarBaseMult(big.NewInt(99).Bytes())
	got, err := c.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, elliptic.Marshal(elliptic.P384(), x, y), got)

	got, err = c.MarshalCompressed(p)
	require.NoError(t, err)
	assert.Equal(t, elliptic.MarshalCompressed(elliptic.P384(), x, y), got)
}

func TestUnmarshalRejectsBadInput(t *testing.T) {
	c, err := StandardCurves().Lookup("P-256")
	require.NoError(t, err)
	g, err := c.Generator()
	require.NoError(t, err)
	good, err := c.Marshal(g)
	require.NoError(t, err)

	bad := append([]byte(nil), good...)
	bad[len(bad)-1] ^= 1
	cases := [][]byte{
		nil,
		{0x04},
		good[:len(good)-1],
		append([]byte{0x05}, good[1:]...),
		bad,
	}
	for _, data := range cases {
		_, err := c.Unmarshal(data)
		assert.True(t, errors.Is(err, mp.ErrMalformedInput), "%x", data)
	}

	_, err = c.Marshal(NewPoint(bigint.NewInt(1), bigint.NewInt(1)))
	assert.True(t, errors.Is(err, mp.ErrMalformedInput))
}

func TestUnmarshalCompressedZeroY(t *testing.T) {
	c := smallCurve(t, 1, 0, 23)

	enc, err := c.MarshalCompressed(pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x00}, enc)
	got, err := c.Unmarshal(enc)
	require.NoError(t, err)
	assert.True(t, got.Equal(pt(0, 0)))

	_, err = c.Unmarshal([]byte{0x03, 0x00})
	assert.True(t, errors.Is(err, mp.ErrMalformedInput))
}
