package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/vmint/params"
)

// Pledge returns the amount account has locked against asset.
func (e *Engine) Pledge(asset AssetID, account common.Address) *uint256.Int {
	return readPledge(e.db, asset, account)
}

// LockPledge moves amount from account into params.MintAddress, records it as
// locked against asset and raises the asset weight for it.
func (e *Engine) LockPledge(asset AssetID, account common.Address, amount *uint256.Int) error {
	amount = orZero(amount)
	value := amount.ToBig()

	// Validation phase: no state writes.
	if e.db.GetBalance(account).Cmp(value) < 0 {
		return ErrInsufficientBalance
	}
	if !amount.Gt(u256(uint64(e.config.PledgeBaseAmount))) {
		return ErrPledgeAmountNotEnough
	}

	// Mutation phase.
	if err := e.RaiseWeight(asset, amount); err != nil {
		return err
	}
	e.db.SubBalance(account, value)
	e.db.AddBalance(params.MintAddress, value)
	writePledge(e.db, asset, account, satAdd(readPledge(e.db, asset, account), amount))
	log.Debug("mint: locked pledge", "asset", asset, "account", account, "amount", amount)
	return nil
}

// UnlockPledge reverses LockPledge for amount. It lowers the asset weight
// and refunds amount to account, which must have at least that much locked
// against asset.
func (e *Engine) UnlockPledge(asset AssetID, account common.Address, amount *uint256.Int) error {
	amount = orZero(amount)
	locked := readPledge(e.db, asset, account)
	if amount.Gt(locked) {
		return ErrPledgeNotLocked
	}
	if err := e.LowerWeight(asset, amount); err != nil {
		return err
	}
	value := amount.ToBig()
	e.db.SubBalance(params.MintAddress, value)
	e.db.AddBalance(account, value)
	writePledge(e.db, asset, account, satSub(locked, amount))
	log.Debug("mint: unlocked pledge", "asset", asset, "account", account, "amount", amount)
	return nil
}
