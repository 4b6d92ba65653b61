package benchmark

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/ec"
	"github.com/smallyu/go-mpint/pkg/modular"
	"github.com/smallyu/go-mpint/pkg/numtheory"
)

// randomInt returns a random value of exactly bits bits.
func randomInt(b *testing.B, bits int) *bigint.Int {
	b.Helper()
	low, err := numtheory.RandomBits(rand.Reader, bits-1)
	if err != nil {
		b.Fatal(err)
	}
	top := bigint.New(bits/64 + 1)
	if err := top.Shift(bigint.NewInt(1), bits-1); err != nil {
		b.Fatal(err)
	}
	z := bigint.New(bits/64 + 1)
	if err := z.Add(low, top); err != nil {
		b.Fatal(err)
	}
	return z
}

func BenchmarkMul(b *testing.B) {
	for _, bits := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("%d", bits), func(b *testing.B) {
			x, y := randomInt(b, bits), randomInt(b, bits)
			z := bigint.New(2 * (bits/64 + 2))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := z.Mul(x, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSquare(b *testing.B) {
	for _, bits := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("%d", bits), func(b *testing.B) {
			x := randomInt(b, bits)
			z := bigint.New(2 * (bits/64 + 2))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := z.Square(x); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDivision(b *testing.B) {
	for _, bits := range []int{512, 2048} {
		b.Run(fmt.Sprintf("%d", bits), func(b *testing.B) {
			x, y := randomInt(b, 2*bits), randomInt(b, bits)
			q, r := bigint.New(x.Capacity()), bigint.New(y.Capacity())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := bigint.UnsignedEuclid(q, r, x, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkModExp(b *testing.B) {
	for _, bits := range []int{256, 1024} {
		m := randomInt(b, bits)
		if !m.IsOdd() {
			_ = m.Increment()
		}
		base, exp := randomInt(b, bits-1), randomInt(b, bits)

		b.Run(fmt.Sprintf("plain/%d", bits), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := modular.Exp(base, exp, m); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("montgomery/%d", bits), func(b *testing.B) {
			mt, err := modular.NewMontgomery(m, m.BitLen())
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := mt.Exp(base, exp); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkScalarMult(b *testing.B) {
	reg := ec.StandardCurves()
	for _, name := range []string{"P-256", "secp256k1"} {
		curve, err := reg.Lookup(name)
		if err != nil {
			b.Fatal(err)
		}
		g, err := curve.Generator()
		if err != nil {
			b.Fatal(err)
		}
		k, err := numtheory.RandomBelow(rand.Reader, curve.N)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name+"/affine", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := curve.ScalarMult(g, k); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(name+"/jacobian", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := curve.JacobianScalarMult(g, k); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkGeneratePrime512(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := numtheory.GeneratePrime(rand.Reader, 512, 100000); err != nil {
			b.Fatal(err)
		}
	}
}
