package mint

import "github.com/ethereum/go-ethereum/metrics"

var (
	flatMintMeter     = metrics.NewRegisteredMeter("mint/record/flat", nil)
	weightedMintMeter = metrics.NewRegisteredMeter("mint/record/weighted", nil)
	issueRoundMeter   = metrics.NewRegisteredMeter("mint/issue/rounds", nil)
	issueFailureMeter = metrics.NewRegisteredMeter("mint/issue/failures", nil)
	payoutMeter       = metrics.NewRegisteredMeter("mint/issue/payouts", nil)
	halvingMeter      = metrics.NewRegisteredMeter("mint/price/halvings", nil)
	priceGauge        = metrics.NewRegisteredGauge("mint/price", nil)
)
