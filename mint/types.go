// Package mint implements BNC emission and reward distribution.
//
// Every block the engine accrues the current BNC price into an emission pool,
// halving the price at a fixed block interval. Participants earn credits by
// minting, either in a flat table or per vToken asset, and a distribution
// round pays the pool out pro-rata to those credits. All ledger state lives in
// storage slots of params.MintAddress.
package mint

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// AssetID identifies a vToken asset in the weighted model.
type AssetID uint32

// Sentinel errors returned by the engine and the system action handler.
var (
	ErrMinterNotExist        = errors.New("mint: no minter credit to distribute")
	ErrBncAmountNotExist     = errors.New("mint: bnc amount not exist")
	ErrAssetScoreNotExist    = errors.New("mint: asset score not exist")
	ErrPledgeAmountNotEnough = errors.New("mint: pledge amount not enough")
	ErrDepositBncFailure     = errors.New("mint: bnc deposit failed")
	ErrAccountNotExist       = errors.New("mint: account does not exist")
	ErrInvalidAmount         = errors.New("mint: invalid amount")
	ErrNotRegistrar          = errors.New("mint: sender is not the registrar")
	ErrInsufficientBalance   = errors.New("mint: insufficient balance for pledge")
	ErrPledgeValueMismatch   = errors.New("mint: tx value does not match pledge amount")
	ErrPledgeNotLocked       = errors.New("mint: unpledge exceeds locked pledge")
	ErrUnexpectedValue       = errors.New("mint: action does not accept tx value")
	ErrInvalidMinter         = errors.New("mint: invalid minter address")
	ErrAtomicIssueCurrency   = errors.New("mint: atomic issue requires the state currency")
)

// PricePoint is the block at which the BNC price was last adjusted together
// with the price accrued per block since then.
type PricePoint struct {
	Block uint64
	Price *uint256.Int
}

// Monitor is the issuance monitor. Block and Watermark are committed by the
// finalization trigger; MaxMint and TxCount are raised by every mint.
type Monitor struct {
	Block     uint64
	Watermark *uint256.Int
	MaxMint   *uint256.Int
	TxCount   uint32
}

// IsZero reports whether the monitor is in its post-distribution reset state.
func (m Monitor) IsZero() bool {
	return m.Block == 0 && m.Watermark.IsZero() && m.MaxMint.IsZero() && m.TxCount == 0
}

// Weight is the score of a vToken asset in the weighted model.
type Weight struct {
	Base   *uint256.Int
	Adjust *uint256.Int
}

// Total returns Base+Adjust, saturating.
func (w Weight) Total() *uint256.Int {
	return satAdd(w.Base, w.Adjust)
}

// Minter is the operation set the engine exposes to the rest of the runtime.
type Minter interface {
	RecordFlatMint(minter common.Address, amount *uint256.Int) error
	RecordWeightedMint(minter common.Address, amount *uint256.Int, asset AssetID) error
	RegisterAssetWeight(asset AssetID, score *uint256.Int)
	AssetWeightExists(asset AssetID) bool
	RaiseWeight(asset AssetID, pledge *uint256.Int) error
	LowerWeight(asset AssetID, pledge *uint256.Int) error
	IssueFlat(block uint64) (*Receipt, error)
	IssueWeighted(block uint64) (*Receipt, error)
	FinalizeBlock(block uint64)
}

var _ Minter = (*Engine)(nil)
