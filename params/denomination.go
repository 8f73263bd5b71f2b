package params

// These are the multipliers for BNC denominations.
// Example: To get the planck value of an amount in 'bnc', use
//
//	new(big.Int).Mul(value, big.NewInt(params.Bnc))
const (
	Planck = 1
	Bnc    = 1e12
)
