package ec

import (
	"crypto/elliptic"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
)

// ErrUnknownCurve is returned by Lookup for names not in the registry.
var ErrUnknownCurve = errors.New("ec: unknown curve")

// Registry is an immutable set of named curves. It is safe for concurrent
// use.
type Registry struct {
	curves map[string]*Curve
	names  []string
}

// StandardCurves builds a registry holding P-224, P-256, P-384, P-521,
// secp256k1 and Wei25519. Each call returns a fresh registry.
func StandardCurves() *Registry {
	r := &Registry{curves: make(map[string]*Curve)}
	for _, params := range []*elliptic.CurveParams{
		elliptic.P224().Params(),
		elliptic.P256().Params(),
		elliptic.P384().Params(),
		elliptic.P521().Params(),
	} {
		// The NIST curves have a = -3.
		a := new(big.Int).Sub(params.P, big.NewInt(3))
		r.add(fromParams(params.Name, a, params))
	}

	k := secp256k1.S256().Params()
	r.add(fromParams("secp256k1", big.NewInt(0), k))

	r.add(mustCurve("Wei25519",
		"2aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa984914a144",
		"7b425ed097b425ed097b425ed097b425ed097b425ed097b4260b5e9c7710c864",
		"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed",
		"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed",
		"2aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaad245a",
		"20ae19a1b8a086b4e01edd2c7748d14c923d4d7e6d7c61b229e9c5a27eced3d9",
	))
	return r
}

func (r *Registry) add(c *Curve) {
	r.curves[c.Name] = c
	r.names = append(r.names, c.Name)
}

// Lookup returns a copy of the curve registered under name. Changes to the
// copy do not reach the registry.
func (r *Registry) Lookup(name string) (*Curve, error) {
	c, ok := r.curves[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCurve, "%q", name)
	}
	return c.clone(), nil
}

// Names lists the registered curves in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func fromParams(name string, a *big.Int, params *elliptic.CurveParams) *Curve {
	return mustBuild(name, fromBig(a), fromBig(params.B), fromBig(params.P),
		fromBig(params.N), fromBig(params.Gx), fromBig(params.Gy))
}

func mustCurve(name, a, b, p, n, gx, gy string) *Curve {
	return mustBuild(name, mustHex(a), mustHex(b), mustHex(p), mustHex(n), mustHex(gx), mustHex(gy))
}

// mustBuild panics on invalid parameters; it only sees compiled-in
// constants.
func mustBuild(name string, a, b, p, n, gx, gy *bigint.Int) *Curve {
	c, err := NewCurve(a, b, p)
	if err != nil {
		panic(errors.Wrapf(err, "ec: curve %s", name))
	}
	c = c.withBase(name, n, gx, gy)
	if g, _ := c.Generator(); !c.IsOnCurve(g) {
		panic("ec: base point of " + name + " is not on the curve")
	}
	return c
}

func fromBig(v *big.Int) *bigint.Int {
	z := bigint.New(v.BitLen()/64 + 1)
	if err := z.SetBytes(v.Bytes()); err != nil {
		panic(err)
	}
	return z
}

func mustHex(s string) *bigint.Int {
	z, err := bigint.ParseHex(s, len(s)/16+1)
	if err != nil {
		panic(err)
	}
	return z
}
