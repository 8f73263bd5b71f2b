package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// RecordFlatMint credits amount to minter in the flat model.
func (e *Engine) RecordFlatMint(minter common.Address, amount *uint256.Int) error {
	amount = orZero(amount)
	addFlatCredit(e.db, minter, amount)
	e.observeMint(amount)
	flatMintMeter.Mark(1)
	return nil
}

// RecordWeightedMint credits amount to minter under asset in the weighted
// model. The asset must have a registered weight; otherwise nothing is
// written.
func (e *Engine) RecordWeightedMint(minter common.Address, amount *uint256.Int, asset AssetID) error {
	if !assetExists(e.db, asset) {
		return ErrAssetScoreNotExist
	}
	amount = orZero(amount)
	addWeightedCredit(e.db, asset, minter, amount)
	e.observeMint(amount)
	weightedMintMeter.Mark(1)
	return nil
}

// observeMint raises the single-mint high-water mark and counts the mint.
func (e *Engine) observeMint(amount *uint256.Int) {
	m := readMonitor(e.db)
	if amount.Gt(m.MaxMint) {
		writeWord(e.db, maxMintSlot, amount)
	}
	writeUint64(e.db, txCountSlot, uint64(satInc32(m.TxCount)))
}
