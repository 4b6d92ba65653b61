package ec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/mp"
)

func smallCurve(t *testing.T, a, b, p int64) *Curve {
	t.Helper()
	c, err := NewCurve(bigint.NewInt(a), bigint.NewInt(b), bigint.NewInt(p))
	require.NoError(t, err)
	return c
}

func pt(x, y int64) *Point {
	return NewPoint(bigint.NewInt(x), bigint.NewInt(y))
}

func TestAddScenario(t *testing.T) {
	c := smallCurve(t, 4, 4, 5)
	require.True(t, c.IsOnCurve(pt(1, 2)))
	require.True(t, c.IsOnCurve(pt(4, 3)))

	r, err := c.Add(pt(1, 2), pt(4, 3))
	require.NoError(t, err)
	assert.True(t, r.Equal(pt(4, 2)), r.String())
	assert.True(t, c.IsOnCurve(r))
}

func TestDoubleScenario(t *testing.T) {
	c := smallCurve(t, 4, 4, 2773)
	g := pt(1, 3)
	require.True(t, c.IsOnCurve(g))

	r, err := c.ScalarMult(g, bigint.NewInt(2))
	require.NoError(t, err)
	assert.True(t, r.Equal(pt(1771, 705)), r.String())

	s, err := c.Add(g, g)
	require.NoError(t, err)
	assert.True(t, s.Equal(r))

	d, err := c.Double(g)
	require.NoError(t, err)
	assert.True(t, d.Equal(r))

	j, err := c.JacobianScalarMult(g, bigint.NewInt(2))
	require.NoError(t, err)
	assert.True(t, j.Equal(r))
}

func TestSpecialCases(t *testing.T) {
	c := smallCurve(t, 2, 3, 97)
	p := pt(3, 6)
	require.True(t, c.IsOnCurve(p))

	n, err := c.Neg(p)
	require.NoError(t, err)
	assert.True(t, n.Equal(pt(3, 91)))

	r, err := c.Add(p, n)
	require.NoError(t, err)
	assert.True(t, r.IsInfinity())

	r, err = c.Sub(p, p)
	require.NoError(t, err)
	assert.True(t, r.IsInfinity())

	r, err = c.Add(Infinity(), p)
	require.NoError(t, err)
	assert.True(t, r.Equal(p))
	r, err = c.Add(p, Infinity())
	require.NoError(t, err)
	assert.True(t, r.Equal(p))

	r, err = c.ScalarMult(p, bigint.NewInt(0))
	require.NoError(t, err)
	assert.True(t, r.IsInfinity())

	// Negative scalars use -P.
	r, err = c.ScalarMult(p, bigint.NewInt(-3))
	require.NoError(t, err)
	want, err := c.ScalarMult(n, bigint.NewInt(3))
	require.NoError(t, err)
	assert.True(t, r.Equal(want))
}

func TestOrderTwoPoint(t *testing.T) {
	// x^3 + x = x(x^2 + 1) vanishes at x = 0.
	c := smallCurve(t, 1, 0, 23)
	p := pt(0, 0)
	require.True(t, c.IsOnCurve(p))

	d, err := c.Double(p)
	require.NoError(t, err)
	assert.True(t, d.IsInfinity())

	j, err := c.ToJacobian(p)
	require.NoError(t, err)
	jd, err := c.JacobianDouble(j)
	require.NoError(t, err)
	assert.True(t, jd.IsInfinity())
}

func TestNewCurveValidation(t *testing.T) {
	// 4*(-3)^3 + 27*2^2 = 0
	_, err := NewCurve(bigint.NewInt(-3), bigint.NewInt(2), bigint.NewInt(101))
	assert.True(t, errors.Is(err, mp.ErrMalformedInput))

	_, err = NewCurve(bigint.NewInt(1), bigint.NewInt(1), bigint.NewInt(2))
	assert.True(t, errors.Is(err, mp.ErrMalformedInput))

	c := smallCurve(t, -1, 9, 7)
	assert.Equal(t, "6", c.A.String())
	assert.Equal(t, "2", c.B.String())
	assert.Equal(t, 3, c.BitSize)

	_, err = c.Generator()
	assert.True(t, errors.Is(err, mp.ErrMalformedInput))
	_, err = c.ScalarBaseMult(bigint.NewInt(1))
	assert.Error(t, err)
}

func TestIsOnCurveRejectsUnreduced(t *testing.T) {
	c := smallCurve(t, 4, 4, 5)
	assert.False(t, c.IsOnCurve(pt(6, 2)))
	assert.False(t, c.IsOnCurve(pt(1, -3)))
	assert.False(t, c.IsOnCurve(pt(1, 1)))
	assert.True(t, c.IsOnCurve(Infinity()))
}

func TestPolynomial(t *testing.T) {
	c := smallCurve(t, 4, 4, 2773)
	r, err := c.Polynomial(bigint.NewInt(1771))
	require.NoError(t, err)
	// 705^2 mod 2773
	assert.Equal(t, "658", r.String())
}
