package mint

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/tos-network/vmint/params"
)

// Engine is the BNC emission engine. It owns the ledger slots under
// params.MintAddress in db and pays rewards through currency.
//
// An Engine is not safe for concurrent use; the runtime drives it from the
// single block-processing goroutine.
type Engine struct {
	db       vm.StateDB
	config   *params.MintConfig
	currency Currency
	onIssue  func(*Receipt)
}

// New creates an engine over db. A nil config selects
// params.DefaultMintConfig and a nil currency pays into db balances.
func New(db vm.StateDB, config *params.MintConfig, currency Currency) *Engine {
	if config == nil {
		config = &params.DefaultMintConfig
	}
	if currency == nil {
		currency = NewStateCurrency(db)
	}
	return &Engine{db: db, config: config, currency: currency}
}

// OnIssue installs a callback invoked with the receipt of every successful
// distribution round, including rounds started by FinalizeBlock.
func (e *Engine) OnIssue(fn func(*Receipt)) { e.onIssue = fn }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() params.MintConfig { return *e.config }

// GenesisAsset is an asset weight registered at genesis.
type GenesisAsset struct {
	ID    AssetID `toml:",omitempty" yaml:"id"`
	Score uint64  `toml:",omitempty" yaml:"score"`
}

// Genesis is the initial emission state.
type Genesis struct {
	Block  uint64         `toml:",omitempty" yaml:"block"`
	Price  uint64         `toml:",omitempty" yaml:"price"`
	Assets []GenesisAsset `toml:",omitempty" yaml:"assets"`
}

// DefaultGenesis starts emission at block 0 with params.GenesisBncPrice.
func DefaultGenesis() *Genesis {
	return &Genesis{Price: params.GenesisBncPrice}
}

// InitGenesis loads the genesis price point and asset weights into db.
func InitGenesis(db vm.StateDB, g *Genesis) {
	if g == nil {
		g = DefaultGenesis()
	}
	// A system account with storage but no nonce counts as empty and would be
	// dropped by an EIP-161 commit.
	if db.GetNonce(params.MintAddress) == 0 {
		db.SetNonce(params.MintAddress, 1)
	}
	writePricePoint(db, PricePoint{Block: g.Block, Price: u256(g.Price)})
	for _, a := range g.Assets {
		writeAssetWeight(db, a.ID, Weight{Base: u256(a.Score), Adjust: new(uint256.Int)})
	}
	log.Info("Initialised BNC emission genesis", "block", g.Block, "price", g.Price, "assets", len(g.Assets))
}

// Pool returns the BNC accrued and not yet distributed.
func (e *Engine) Pool() *uint256.Int { return readPool(e.db) }

// PricePoint returns the last price adjustment.
func (e *Engine) PricePoint() PricePoint { return readPricePoint(e.db) }

// Monitor returns the issuance monitor.
func (e *Engine) Monitor() Monitor { return readMonitor(e.db) }

// FlatCredit returns the flat-model credit of minter.
func (e *Engine) FlatCredit(minter common.Address) *uint256.Int {
	return readFlatCredit(e.db, minter)
}

// FlatMinters returns every minter holding a flat credit entry.
func (e *Engine) FlatMinters() []common.Address { return readFlatMinters(e.db) }

// WeightedCredit returns the weighted-model credit of minter under asset.
func (e *Engine) WeightedCredit(asset AssetID, minter common.Address) *uint256.Int {
	return readWeightedCredit(e.db, asset, minter)
}

// WeightedMinters returns every minter holding a credit entry under asset.
func (e *Engine) WeightedMinters(asset AssetID) []common.Address {
	return readWeightedMinters(e.db, asset)
}

// AssetWeight returns the weight of asset and whether it is registered.
func (e *Engine) AssetWeight(asset AssetID) (Weight, bool) {
	return readAssetWeight(e.db, asset), assetExists(e.db, asset)
}

// Assets returns the registered assets in registration order.
func (e *Engine) Assets() []AssetID { return readAssets(e.db) }
