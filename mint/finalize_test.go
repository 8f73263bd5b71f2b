package mint

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

// TestPriceHalvesEveryInterval walks three halving intervals without any mints.
func TestPriceHalvesEveryInterval(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)

	var wantPool uint64
	for block := uint64(1); block <= 30; block++ {
		prev := e.PricePoint().Price.Uint64()
		e.FinalizeBlock(block)
		pp := e.PricePoint()

		want := prev
		if block%10 == 0 {
			want = prev / 2
			if pp.Block != block {
				t.Fatalf("block %d: price point block have %d", block, pp.Block)
			}
		}
		if pp.Price.Uint64() != want {
			t.Fatalf("block %d: price have %d want %d", block, pp.Price.Uint64(), want)
		}
		wantPool += want
	}
	// 9*8 + 10*4 + 10*2 + 1*1
	if wantPool != 133 {
		t.Fatalf("bad test arithmetic: %d", wantPool)
	}
	if p := e.Pool().Uint64(); p != wantPool {
		t.Fatalf("pool: have %d want %d", p, wantPool)
	}
}

// TestEmissionStopsAtZeroPrice verifies that once the price halves to zero
// nothing accrues any more and the price point is frozen.
func TestEmissionStopsAtZeroPrice(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 1)

	for block := uint64(1); block <= 9; block++ {
		e.FinalizeBlock(block)
	}
	if p := e.Pool().Uint64(); p != 9 {
		t.Fatalf("pool before halving: have %d want 9", p)
	}
	e.FinalizeBlock(10)
	pp := e.PricePoint()
	if !pp.Price.IsZero() || pp.Block != 10 {
		t.Fatalf("price point after halving 1: %d@%d", pp.Price.Uint64(), pp.Block)
	}
	for block := uint64(11); block <= 40; block++ {
		e.FinalizeBlock(block)
	}
	if p := e.Pool().Uint64(); p != 9 {
		t.Fatalf("pool after emission halted: have %d want 9", p)
	}
	if pp := e.PricePoint(); pp.Block != 10 {
		t.Fatalf("price point moved after halt: block %d", pp.Block)
	}
}

// TestFinalizeIssuesAfterInterval verifies that the watermark is committed on
// the first block after a mint and that a round runs exactly
// MaxIssueBlockInterval blocks later.
func TestFinalizeIssuesAfterInterval(t *testing.T) {
	e, st := newTestEngine(t, testConfig(), 8)
	a := tAddr(0x01)
	newAccounts(st, a)
	e.RegisterAssetWeight(1, u256(1))
	if err := e.RecordWeightedMint(a, u256(10), 1); err != nil {
		t.Fatalf("mint: %v", err)
	}

	e.FinalizeBlock(1)
	m := e.Monitor()
	if m.Block != 1 || m.Watermark.Uint64() != 10 || m.TxCount != 1 {
		t.Fatalf("monitor after block 1: %+v", m)
	}
	for block := uint64(2); block <= 5; block++ {
		e.FinalizeBlock(block)
		if b := balanceOf(st, a); b != 0 {
			t.Fatalf("block %d: paid out early (%d)", block, b)
		}
	}
	if p := e.Pool().Uint64(); p != 40 {
		t.Fatalf("pool before round: have %d want 40", p)
	}

	e.FinalizeBlock(6)
	if b := balanceOf(st, a); b != 48 {
		t.Fatalf("payout: have %d want 48", b)
	}
	if !e.Pool().IsZero() || !e.Monitor().IsZero() {
		t.Fatalf("round did not reset pool/monitor: pool %v monitor %+v", e.Pool(), e.Monitor())
	}
	if len(e.WeightedMinters(1)) != 0 || !e.WeightedCredit(1, a).IsZero() {
		t.Fatalf("round did not clear weighted credits")
	}
	if !e.AssetWeightExists(1) {
		t.Fatalf("round must keep asset weights")
	}

	e.FinalizeBlock(7)
	if p := e.Pool().Uint64(); p != 8 {
		t.Fatalf("pool after round: have %d want 8", p)
	}
}

// TestFinalizeTxCountFastPath verifies that reaching MaxTxAmount forces a
// round even though the block interval has not elapsed.
func TestFinalizeTxCountFastPath(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTxAmount = 3
	e, st := newTestEngine(t, cfg, 8)
	a, b := tAddr(0x01), tAddr(0x02)
	newAccounts(st, a, b)
	e.RegisterAssetWeight(1, u256(1))

	for _, who := range []struct {
		addr   common.Address
		amount uint64
	}{{a, 1}, {b, 2}, {a, 1}} {
		if err := e.RecordWeightedMint(who.addr, u256(who.amount), 1); err != nil {
			t.Fatalf("mint: %v", err)
		}
	}
	e.FinalizeBlock(1)

	if balanceOf(st, a) != 4 || balanceOf(st, b) != 4 {
		t.Fatalf("payouts: a=%d b=%d want 4 and 4", balanceOf(st, a), balanceOf(st, b))
	}
	if !e.Monitor().IsZero() {
		t.Fatalf("monitor not reset: %+v", e.Monitor())
	}
}

// TestFinalizeIntervalNeedsMint verifies the interval clause requires a
// non-zero watermark: an idle chain only accrues.
func TestFinalizeIntervalNeedsMint(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(1, u256(1))
	for block := uint64(1); block <= 12; block++ {
		e.FinalizeBlock(block)
	}
	if p := e.Pool().Uint64(); p != 8*9+4*3 {
		t.Fatalf("pool: have %d want %d", p, 8*9+4*3)
	}
}

// TestFinalizeFailedRoundFallsThrough verifies that a failing round is
// swallowed, keeps the bookkeeping, and still commits the watermark without
// resetting the transaction count.
func TestFinalizeFailedRoundFallsThrough(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTxAmount = 2
	e, _ := newTestEngine(t, cfg, 8)
	a := tAddr(0x01)

	// Flat mints only: no asset weight, so the weighted round has no divisor.
	if err := e.RecordFlatMint(a, u256(3)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := e.RecordFlatMint(a, u256(5)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := e.IssueWeighted(1); !errors.Is(err, ErrBncAmountNotExist) {
		t.Fatalf("empty pool: want ErrBncAmountNotExist, got %v", err)
	}

	e.FinalizeBlock(1)

	if p := e.Pool().Uint64(); p != 8 {
		t.Fatalf("pool: have %d want 8", p)
	}
	m := e.Monitor()
	if m.Block != 1 || m.Watermark.Uint64() != 5 || m.MaxMint.Uint64() != 5 || m.TxCount != 2 {
		t.Fatalf("monitor after failed round: %+v", m)
	}
	if c := e.FlatCredit(a).Uint64(); c != 8 {
		t.Fatalf("flat credit: have %d want 8", c)
	}
}

// TestFinalizeWatermarkOnlyRaised verifies that the monitor block only moves
// when a larger single mint has been observed.
func TestFinalizeWatermarkOnlyRaised(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(1, u256(1))
	a := tAddr(0x01)

	if err := e.RecordWeightedMint(a, u256(10), 1); err != nil {
		t.Fatalf("mint: %v", err)
	}
	e.FinalizeBlock(1)
	if err := e.RecordWeightedMint(a, u256(4), 1); err != nil {
		t.Fatalf("mint: %v", err)
	}
	e.FinalizeBlock(2)
	if m := e.Monitor(); m.Block != 1 || m.Watermark.Uint64() != 10 {
		t.Fatalf("smaller mint moved the monitor: %+v", m)
	}
	if err := e.RecordWeightedMint(a, u256(11), 1); err != nil {
		t.Fatalf("mint: %v", err)
	}
	e.FinalizeBlock(3)
	if m := e.Monitor(); m.Block != 3 || m.Watermark.Uint64() != 11 || m.TxCount != 3 {
		t.Fatalf("larger mint did not move the monitor: %+v", m)
	}
}
