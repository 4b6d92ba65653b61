package ec

import (
	"github.com/smallyu/go-mpint/pkg/bigint"
	"github.com/smallyu/go-mpint/pkg/modular"
)

// fieldOps chains arithmetic modulo p. The first failure is kept in err and
// every later call returns zero without computing.
type fieldOps struct {
	p   *bigint.Int
	err error
}

func (f *fieldOps) keep(z *bigint.Int, err error) *bigint.Int {
	if err != nil {
		f.err = err
		return bigint.New(1)
	}
	return z
}

func (f *fieldOps) add(x, y *bigint.Int) *bigint.Int {
	if f.err != nil {
		return bigint.New(1)
	}
	return f.keep(modular.Add(x, y, f.p))
}

func (f *fieldOps) sub(x, y *bigint.Int) *bigint.Int {
	if f.err != nil {
		return bigint.New(1)
	}
	return f.keep(modular.Sub(x, y, f.p))
}

func (f *fieldOps) mul(x, y *bigint.Int) *bigint.Int {
	if f.err != nil {
		return bigint.New(1)
	}
	return f.keep(modular.Mul(x, y, f.p))
}

func (f *fieldOps) sqr(x *bigint.Int) *bigint.Int {
	return f.mul(x, x)
}

// scale returns k*x.
func (f *fieldOps) scale(k int64, x *bigint.Int) *bigint.Int {
	return f.mul(bigint.NewInt(k), x)
}

func (f *fieldOps) inv(x *bigint.Int) *bigint.Int {
	if f.err != nil {
		return bigint.New(1)
	}
	return f.keep(modular.Inverse(x, f.p))
}

func (f *fieldOps) neg(x *bigint.Int) *bigint.Int {
	return f.sub(zero, x)
}

func (f *fieldOps) reduce(x *bigint.Int) *bigint.Int {
	if f.err != nil {
		return bigint.New(1)
	}
	return f.keep(modular.Mod(x, f.p))
}

var zero = bigint.NewInt(0)
