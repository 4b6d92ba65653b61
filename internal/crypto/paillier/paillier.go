// Package paillier implements the Paillier additively homomorphic
// cryptosystem on the multiprecision engine.
package paillier

import (
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/mp"
	"github.com/smallyu/go-mpint/pkg/numtheory"
)

// MinBits is the smallest accepted modulus size.
const MinBits = 1024

// maxNonceDraws bounds the search for a nonce coprime to n.
const maxNonceDraws = 64

var (
	ErrMessageRange    = errors.New("paillier: message must be in [0, n)")
	ErrCiphertextRange = errors.New("paillier: ciphertext must be in [0, n^2) and coprime to n")
	ErrNonce           = errors.New("paillier: nonce must be in [1, n) and coprime to n")
)

var one = bigint.NewInt(1)

// PublicKey represents a Paillier public key (n).
type PublicKey struct {
	N  *bigint.Int // modulus n = p * q
	N2 *bigint.Int // n^2

	mont *modular.Montgomery // arithmetic mod n^2
}

// PrivateKey represents a Paillier private key (lambda, mu).
type PrivateKey struct {
	PublicKey
	Lambda *bigint.Int // lcm(p-1, q-1)
	Mu     *bigint.Int // lambda^-1 mod n
}

// NewPublicKey returns the public key for modulus n, which must be odd.
func NewPublicKey(n *bigint.Int) (*PublicKey, error) {
	n2 := bigint.New(2 * n.Size())
	if err := n2.Square(n); err != nil {
		return nil, err
	}
	mont, err := modular.NewMontgomery(n2, n2.BitLen())
	if err != nil {
		return nil, errors.Wrap(err, "paillier: modulus")
	}
	return &PublicKey{N: n.Clone(), N2: n2, mont: mont}, nil
}

// GenerateKey generates a key pair whose modulus n has about bits bits.
// bits must be at least MinBits. The primes come from a
// numtheory.PrimeGenerator configured by cfg.
func GenerateKey(random io.Reader, bits int, cfg *mp.Config, opts ...numtheory.Option) (*PrivateKey, error) {
	if bits < MinBits {
		return nil, errors.Errorf("paillier: bits must be at least %d", MinBits)
	}
	gen := numtheory.NewPrimeGenerator(random, cfg, opts...)

	p, err := gen.Generate(bits / 2)
	if err != nil {
		return nil, errors.Wrap(err, "paillier: generating p")
	}
	q, err := gen.Generate(bits / 2)
	if err != nil {
		return nil, errors.Wrap(err, "paillier: generating q")
	}
	for p.Cmp(q) == 0 {
		if q, err = gen.Generate(bits / 2); err != nil {
			return nil, errors.Wrap(err, "paillier: generating q")
		}
	}
	return NewPrivateKey(p, q)
}

// NewPrivateKey derives the key pair from the distinct primes p and q.
func NewPrivateKey(p, q *bigint.Int) (*PrivateKey, error) {
	n := bigint.New(p.Size() + q.Size())
	if err := n.Mul(p, q); err != nil {
		return nil, err
	}
	pub, err := NewPublicKey(n)
	if err != nil {
		return nil, err
	}

	// lambda = (p-1)(q-1) / gcd(p-1, q-1)
	pm1, qm1 := p.Clone(), q.Clone()
	if err := pm1.Decrement(); err != nil {
		return nil, err
	}
	if err := qm1.Decrement(); err != nil {
		return nil, err
	}
	_, _, g, err := modular.ExtendedGCD(pm1, qm1)
	if err != nil {
		return nil, err
	}
	phi := bigint.New(n.Capacity())
	if err := phi.Mul(pm1, qm1); err != nil {
		return nil, err
	}
	lambda := bigint.New(n.Capacity())
	if err := bigint.UnsignedEuclid(lambda, nil, phi, g); err != nil {
		return nil, err
	}

	mu, err := modular.Inverse(lambda, n)
	if err != nil {
		return nil, errors.Wrap(err, "paillier: lambda has no inverse mod n")
	}
	return &PrivateKey{PublicKey: *pub, Lambda: lambda, Mu: mu}, nil
}

// Encrypt encrypts m in [0, n) with a fresh nonce drawn from random and
// returns the ciphertext and the nonce.
func (pk *PublicKey) Encrypt(random io.Reader, m *bigint.Int) (*bigint.Int, *bigint.Int, error) {
	for range maxNonceDraws {
		r, err := numtheory.RandomBelow(random, pk.N)
		if err != nil {
			return nil, nil, errors.Wrap(err, "paillier: drawing nonce")
		}
		if !pk.coprime(r) {
			continue
		}
		c, err := pk.EncryptWithNonce(m, r)
		if err != nil {
			return nil, nil, err
		}
		return c, r, nil
	}
	return nil, nil, mp.Errorf(mp.ErrRetryBoundExceeded, "paillier encrypt", "no nonce coprime to n in %d draws", maxNonceDraws)
}

// EncryptWithNonce computes c = (1 + n*m) * r^n mod n^2.
func (pk *PublicKey) EncryptWithNonce(m, r *bigint.Int) (*bigint.Int, error) {
	if m.IsNegative() || m.Cmp(pk.N) >= 0 {
		return nil, ErrMessageRange
	}
	if !r.IsPositive() || r.Cmp(pk.N) >= 0 || !pk.coprime(r) {
		return nil, ErrNonce
	}

	// gm = 1 + n*m, already below n^2
	gm := bigint.New(pk.N2.Capacity() + 1)
	if err := gm.Mul(pk.N, m); err != nil {
		return nil, err
	}
	if err := gm.Increment(); err != nil {
		return nil, err
	}
	rn, err := pk.mont.Exp(r, pk.N)
	if err != nil {
		return nil, err
	}
	return modular.Mul(gm, rn, pk.N2)
}

// Decrypt computes m = L(c^lambda mod n^2) * mu mod n with L(x) = (x-1)/n.
func (priv *PrivateKey) Decrypt(c *bigint.Int) (*bigint.Int, error) {
	if err := priv.ValidateCiphertext(c); err != nil {
		return nil, err
	}
	u, err := priv.mont.Exp(c, priv.Lambda)
	if err != nil {
		return nil, err
	}
	if err := u.Decrement(); err != nil {
		return nil, err
	}
	l := bigint.New(priv.N.Capacity() + 1)
	if err := bigint.UnsignedEuclid(l, nil, u, priv.N); err != nil {
		return nil, err
	}
	return modular.Mul(l, priv.Mu, priv.N)
}

// Add returns E(m1 + m2) = c1 * c2 mod n^2.
func (pk *PublicKey) Add(c1, c2 *bigint.Int) (*bigint.Int, error) {
	return modular.Mul(c1, c2, pk.N2)
}

// Mul returns E(m * k) = c^k mod n^2.
func (pk *PublicKey) Mul(c, k *bigint.Int) (*bigint.Int, error) {
	if err := pk.ValidateCiphertext(c); err != nil {
		return nil, err
	}
	return pk.mont.Exp(c, k)
}

// ValidateCiphertext checks that c is in [0, n^2) and coprime to n.
func (pk *PublicKey) ValidateCiphertext(c *bigint.Int) error {
	if c.IsNegative() || c.Cmp(pk.N2) >= 0 || !pk.coprime(c) {
		return ErrCiphertextRange
	}
	return nil
}

func (pk *PublicKey) coprime(x *bigint.Int) bool {
	_, _, g, err := modular.ExtendedGCD(x, pk.N)
	return err == nil && g.IsOne()
}
