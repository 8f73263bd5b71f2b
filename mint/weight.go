package mint

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// AssetWeightExists reports whether asset has a registered weight score.
func (e *Engine) AssetWeightExists(asset AssetID) bool {
	return assetExists(e.db, asset)
}

// RegisterAssetWeight sets the base score of asset and zeroes its adjust
// score.
func (e *Engine) RegisterAssetWeight(asset AssetID, score *uint256.Int) {
	writeAssetWeight(e.db, asset, Weight{Base: orZero(score), Adjust: new(uint256.Int)})
}

// RaiseWeight adds floor(log2(pledge - PledgeBaseAmount)) to the adjust score
// of asset. Every doubling of the pledge above the base is worth one point.
func (e *Engine) RaiseWeight(asset AssetID, pledge *uint256.Int) error {
	return e.adjustWeight(asset, pledge, satAdd)
}

// LowerWeight is the inverse of RaiseWeight for the same pledge. The adjust
// score never drops below zero.
func (e *Engine) LowerWeight(asset AssetID, pledge *uint256.Int) error {
	return e.adjustWeight(asset, pledge, satSub)
}

func (e *Engine) adjustWeight(asset AssetID, pledge *uint256.Int, apply func(x, y *uint256.Int) *uint256.Int) error {
	base := u256(uint64(e.config.PledgeBaseAmount))
	if pledge == nil || !pledge.Gt(base) {
		return ErrPledgeAmountNotEnough
	}
	w := readAssetWeight(e.db, asset)
	if delta, ok := log2Floor(satSub(pledge, base)); ok {
		w.Adjust = apply(w.Adjust, u256(delta))
	}
	// The entry is written even when absent so that pledging against an
	// unknown asset registers it with a zero base score.
	writeAssetWeight(e.db, asset, w)
	log.Trace("mint: adjusted asset weight", "asset", asset, "pledge", pledge, "base", w.Base, "adjust", w.Adjust)
	return nil
}
