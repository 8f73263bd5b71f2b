package mint

import (
	"math"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// oscillate halves the price when exactly one PriceHalfBlockInterval has
// elapsed since the last adjustment and returns the price in effect for
// block. A price of 1 halves to 0, which halts emission for good.
func (e *Engine) oscillate(block uint64, pp PricePoint) *uint256.Int {
	if satSub64(block, pp.Block) != uint64(e.config.PriceHalfBlockInterval) {
		return pp.Price
	}
	halved := new(uint256.Int).Rsh(pp.Price, 1)
	writePricePoint(e.db, PricePoint{Block: block, Price: halved})
	halvingMeter.Mark(1)
	updatePriceGauge(halved)
	log.Debug("Halved BNC price", "block", block, "previous", pp.Block, "price", halved)
	return halved
}

func updatePriceGauge(price *uint256.Int) {
	if price.IsUint64() && price.Uint64() <= math.MaxInt64 {
		priceGauge.Update(int64(price.Uint64()))
		return
	}
	priceGauge.Update(math.MaxInt64)
}
