package mint

import (
	"math"
	"math/big"

	"github.com/holiman/uint256"
)

var maxUint256 = new(uint256.Int).SetAllOne()

func u256(v uint64) *uint256.Int { return new(uint256.Int).SetUint64(v) }

// orZero maps nil to a fresh zero so that storage writes never see nil.
func orZero(x *uint256.Int) *uint256.Int {
	if x == nil {
		return new(uint256.Int)
	}
	return x
}

func satAdd(x, y *uint256.Int) *uint256.Int {
	x, y = orZero(x), orZero(y)
	z := new(uint256.Int).Add(x, y)
	if z.Lt(x) {
		return new(uint256.Int).Set(maxUint256)
	}
	return z
}

func satSub(x, y *uint256.Int) *uint256.Int {
	x, y = orZero(x), orZero(y)
	if x.Lt(y) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(x, y)
}

func satMul(x, y *uint256.Int) *uint256.Int {
	x, y = orZero(x), orZero(y)
	if x.IsZero() || y.IsZero() {
		return new(uint256.Int)
	}
	z := new(uint256.Int).Mul(x, y)
	if !new(uint256.Int).Div(z, x).Eq(y) {
		return new(uint256.Int).Set(maxUint256)
	}
	return z
}

// share returns floor(part*total/whole) with a saturating product. whole must
// be non-zero.
func share(part, total, whole *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(satMul(part, total), whole)
}

// log2Floor returns floor(log2(x)); ok is false for x == 0.
func log2Floor(x *uint256.Int) (n uint64, ok bool) {
	if x == nil || x.IsZero() {
		return 0, false
	}
	return uint64(x.BitLen() - 1), true
}

func satSub64(x, y uint64) uint64 {
	if x < y {
		return 0
	}
	return x - y
}

func satInc32(x uint32) uint32 {
	if x == math.MaxUint32 {
		return x
	}
	return x + 1
}

// ParseAmount parses a non-negative base-10 amount that fits 256 bits.
func ParseAmount(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, ErrInvalidAmount
	}
	return v, nil
}
