package mint

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/tos-network/vmint/params"
)

// newTestState creates a fresh in-memory StateDB for tests.
func newTestState(t *testing.T) *state.StateDB {
	t.Helper()
	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	s, err := state.New(common.Hash{}, db, nil)
	if err != nil {
		t.Fatalf("failed to create state db: %v", err)
	}
	return s
}

// testConfig uses short intervals so that tests can walk through halvings
// and issue rounds in a handful of blocks.
func testConfig() *params.MintConfig {
	return &params.MintConfig{
		PriceHalfBlockInterval: 10,
		MaxIssueBlockInterval:  5,
		MaxTxAmount:            100,
		PledgeBaseAmount:       1000,
		Registrar:              testRegistrar,
	}
}

// testRegistrar is the registrar of testConfig.
var testRegistrar = common.Address{0xcc}

// newTestEngine returns an engine over a fresh state whose genesis price is price.
func newTestEngine(t *testing.T, cfg *params.MintConfig, price uint64) (*Engine, *state.StateDB) {
	t.Helper()
	st := newTestState(t)
	InitGenesis(st, &Genesis{Price: price})
	return New(st, cfg, nil), st
}

// tAddr generates a deterministic test address.
func tAddr(b byte) common.Address { return common.Address{b} }

// newAccounts creates each address so that deposits into it succeed.
func newAccounts(st *state.StateDB, addrs ...common.Address) {
	for _, a := range addrs {
		st.CreateAccount(a)
	}
}

func balanceOf(st *state.StateDB, a common.Address) uint64 {
	return st.GetBalance(a).Uint64()
}

func TestInitGenesis(t *testing.T) {
	st := newTestState(t)
	InitGenesis(st, &Genesis{
		Block:  7,
		Price:  64,
		Assets: []GenesisAsset{{ID: 2, Score: 5}, {ID: 9, Score: 1}},
	})
	e := New(st, testConfig(), nil)

	pp := e.PricePoint()
	if pp.Block != 7 || pp.Price.Uint64() != 64 {
		t.Fatalf("unexpected price point: block %d price %v", pp.Block, pp.Price)
	}
	if n := st.GetNonce(params.MintAddress); n != 1 {
		t.Fatalf("mint account nonce: have %d want 1", n)
	}
	assets := e.Assets()
	if len(assets) != 2 || assets[0] != 2 || assets[1] != 9 {
		t.Fatalf("unexpected genesis assets: %v", assets)
	}
	w, ok := e.AssetWeight(2)
	if !ok || w.Base.Uint64() != 5 || !w.Adjust.IsZero() {
		t.Fatalf("unexpected weight for asset 2: %v %v exists=%v", w.Base, w.Adjust, ok)
	}
	if !e.Pool().IsZero() || !e.Monitor().IsZero() {
		t.Fatalf("expected empty pool and monitor after genesis")
	}
}

// TestDefaultGenesis verifies that a nil genesis falls back to the protocol defaults.
func TestDefaultGenesis(t *testing.T) {
	st := newTestState(t)
	InitGenesis(st, nil)
	e := New(st, nil, nil)
	if e.PricePoint().Price.Uint64() != params.GenesisBncPrice {
		t.Fatalf("genesis price: have %v want %d", e.PricePoint().Price, params.GenesisBncPrice)
	}
	if e.Config() != params.DefaultMintConfig {
		t.Fatalf("nil config should select the default: %v", e.Config())
	}
}

// TestGenesisSurvivesCommit verifies that the ledger is not pruned as an empty
// account when state is committed with EIP-161 semantics.
func TestGenesisSurvivesCommit(t *testing.T) {
	st := newTestState(t)
	InitGenesis(st, &Genesis{Price: 3})
	root, err := st.Commit(true)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	reopened, err := state.New(root, st.Database(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if p := New(reopened, testConfig(), nil).PricePoint().Price; p.Uint64() != 3 {
		t.Fatalf("price after commit: have %v want 3", p)
	}
}

// TestStateCurrencyRequiresAccount verifies the currency only credits existing accounts.
func TestStateCurrencyRequiresAccount(t *testing.T) {
	st := newTestState(t)
	cur := NewStateCurrency(st)
	a := tAddr(0x01)

	if err := cur.DepositIntoExisting(a, u256(5)); err != ErrAccountNotExist {
		t.Fatalf("want ErrAccountNotExist, got %v", err)
	}
	if st.Exist(a) {
		t.Fatalf("failed deposit must not create the account")
	}
	newAccounts(st, a)
	if err := cur.DepositIntoExisting(a, u256(5)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if b := balanceOf(st, a); b != 5 {
		t.Fatalf("balance: have %d want 5", b)
	}
}
