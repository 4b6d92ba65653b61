// Package schnorr implements a non-interactive Schnorr proof of knowledge of
// a discrete logarithm over any curve from package ec that carries a base
// point.
package schnorr

import (
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/ec"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/numtheory"
)

var (
	ErrNoBasePoint = errors.New("schnorr: curve has no base point")
	ErrNilInput    = errors.New("schnorr: inputs cannot be nil")
)

// Proof proves knowledge of x such that X = x*G.
type Proof struct {
	R *ec.Point   // commitment R = k*G
	S *bigint.Int // response s = k + e*x mod N
}

// Prove generates a proof for the secret x. It returns the public point X
// alongside the proof.
func Prove(random io.Reader, c *ec.Curve, x *bigint.Int) (*Proof, *ec.Point, error) {
	if c == nil || x == nil {
		return nil, nil, ErrNilInput
	}
	if c.N == nil {
		return nil, nil, ErrNoBasePoint
	}
	X, err := c.ScalarBaseMult(x)
	if err != nil {
		return nil, nil, errors.Wrap(err, "schnorr: public point")
	}

	k, err := numtheory.RandomBelow(random, c.N)
	if err != nil {
		return nil, nil, errors.Wrap(err, "schnorr: nonce")
	}
	defer k.Wipe()
	R, err := c.ScalarBaseMult(k)
	if err != nil {
		return nil, nil, err
	}

	e, err := challenge(c, X, R)
	if err != nil {
		return nil, nil, err
	}
	ex, err := modular.Mul(e, x, c.N)
	if err != nil {
		return nil, nil, err
	}
	s, err := modular.Add(k, ex, c.N)
	if err != nil {
		return nil, nil, err
	}
	return &Proof{R: R, S: s}, X, nil
}

// Verify checks the proof against the public point X.
func (p *Proof) Verify(c *ec.Curve, X *ec.Point) bool {
	if p == nil || p.R == nil || p.S == nil || c == nil || c.N == nil || X == nil {
		return false
	}
	if p.S.IsNegative() || p.S.Cmp(c.N) >= 0 {
		return false
	}
	if X.IsInfinity() || !c.IsOnCurve(X) || !c.IsOnCurve(p.R) {
		return false
	}

	e, err := challenge(c, X, p.R)
	if err != nil {
		return false
	}
	// s*G = R + e*X
	lhs, err := c.ScalarBaseMult(p.S)
	if err != nil {
		return false
	}
	eX, err := c.JacobianScalarMult(X, e)
	if err != nil {
		return false
	}
	rhs, err := c.Add(p.R, eX)
	if err != nil {
		return false
	}
	return lhs.Equal(rhs)
}

// challenge computes H(name, X, R) mod N over uncompressed SEC1 encodings.
func challenge(c *ec.Curve, X, R *ec.Point) (*bigint.Int, error) {
	h := sha256.New()
	h.Write([]byte(c.Name))
	for _, pt := range []*ec.Point{X, R} {
		enc, err := c.Marshal(pt)
		if err != nil {
			return nil, errors.Wrap(err, "schnorr: challenge")
		}
		h.Write(enc)
	}
	e := bigint.New(sha256.Size / 8)
	if err := e.SetBytes(h.Sum(nil)); err != nil {
		return nil, err
	}
	return modular.Mod(e, c.N)
}
