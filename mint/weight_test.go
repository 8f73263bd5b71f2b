package mint

import (
	"testing"
)

func TestRaiseWeightRequiresPledgeAboveBase(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(1, u256(10))

	for _, pledge := range []uint64{0, 999, 1000} {
		if err := e.RaiseWeight(1, u256(pledge)); err != ErrPledgeAmountNotEnough {
			t.Errorf("raise with pledge %d: want ErrPledgeAmountNotEnough, got %v", pledge, err)
		}
		if err := e.LowerWeight(1, u256(pledge)); err != ErrPledgeAmountNotEnough {
			t.Errorf("lower with pledge %d: want ErrPledgeAmountNotEnough, got %v", pledge, err)
		}
	}
	if err := e.RaiseWeight(1, nil); err != ErrPledgeAmountNotEnough {
		t.Errorf("raise with nil pledge: want ErrPledgeAmountNotEnough, got %v", err)
	}
	if w, _ := e.AssetWeight(1); !w.Adjust.IsZero() {
		t.Fatalf("rejected pledges must not move the score: %v", w.Adjust)
	}
}

// TestRaiseWeightLogGrowth verifies the adjust score grows by floor(log2(pledge-base)).
func TestRaiseWeightLogGrowth(t *testing.T) {
	tests := []struct {
		pledge uint64
		delta  uint64
	}{
		{1001, 0},        // log2(1) = 0
		{1002, 1},        // log2(2) = 1
		{1003, 1},        // log2(3) = 1.58
		{1008, 3},        // log2(8) = 3
		{1000 + 1023, 9}, // log2(1023) = 9.99
		{1000 + 1024, 10},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t, testConfig(), 8)
		e.RegisterAssetWeight(1, u256(10))
		if err := e.RaiseWeight(1, u256(tt.pledge)); err != nil {
			t.Fatalf("raise %d: %v", tt.pledge, err)
		}
		w, _ := e.AssetWeight(1)
		if w.Adjust.Uint64() != tt.delta {
			t.Errorf("pledge %d: adjust have %d want %d", tt.pledge, w.Adjust.Uint64(), tt.delta)
		}
		if w.Base.Uint64() != 10 {
			t.Errorf("pledge %d: base score changed to %d", tt.pledge, w.Base.Uint64())
		}
	}
}

// TestRaiseThenLowerRestoresScore verifies that lowering with the same pledge
// exactly undoes a raise.
func TestRaiseThenLowerRestoresScore(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(3, u256(4))

	if err := e.RaiseWeight(3, u256(1000+64)); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := e.RaiseWeight(3, u256(1000+5000)); err != nil {
		t.Fatalf("raise: %v", err)
	}
	before, _ := e.AssetWeight(3)
	if before.Adjust.Uint64() != 6+12 {
		t.Fatalf("adjust after raises: have %d want 18", before.Adjust.Uint64())
	}
	if err := e.LowerWeight(3, u256(1000+5000)); err != nil {
		t.Fatalf("lower: %v", err)
	}
	after, _ := e.AssetWeight(3)
	if after.Adjust.Uint64() != 6 {
		t.Fatalf("adjust after lower: have %d want 6", after.Adjust.Uint64())
	}
}

// TestLowerWeightSaturatesAtZero verifies the adjust score never goes negative.
func TestLowerWeightSaturatesAtZero(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(1, u256(10))

	if err := e.RaiseWeight(1, u256(1008)); err != nil { // +3
		t.Fatalf("raise: %v", err)
	}
	if err := e.LowerWeight(1, u256(1000+1024)); err != nil { // -10
		t.Fatalf("lower: %v", err)
	}
	w, _ := e.AssetWeight(1)
	if !w.Adjust.IsZero() {
		t.Fatalf("adjust: have %v want 0", w.Adjust)
	}
	if w.Base.Uint64() != 10 {
		t.Fatalf("base must be untouched, have %v", w.Base)
	}
}

// TestPledgeRegistersUnknownAsset verifies that a pledge against an asset
// without a weight entry creates one with a zero base score.
func TestPledgeRegistersUnknownAsset(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	if e.AssetWeightExists(42) {
		t.Fatalf("asset 42 should not exist yet")
	}
	if err := e.RaiseWeight(42, u256(1004)); err != nil {
		t.Fatalf("raise: %v", err)
	}
	w, ok := e.AssetWeight(42)
	if !ok {
		t.Fatalf("asset 42 should exist after a pledge")
	}
	if !w.Base.IsZero() || w.Adjust.Uint64() != 2 {
		t.Fatalf("unexpected weight: base %v adjust %v", w.Base, w.Adjust)
	}
}

// TestRegisterAssetWeightResetsAdjust verifies registration writes (score, 0)
// and that re-registration does not duplicate the asset in the list.
func TestRegisterAssetWeightResetsAdjust(t *testing.T) {
	e, _ := newTestEngine(t, testConfig(), 8)
	e.RegisterAssetWeight(5, u256(1))
	if err := e.RaiseWeight(5, u256(1016)); err != nil {
		t.Fatalf("raise: %v", err)
	}
	e.RegisterAssetWeight(5, u256(7))

	w, _ := e.AssetWeight(5)
	if w.Base.Uint64() != 7 || !w.Adjust.IsZero() {
		t.Fatalf("unexpected weight after re-register: base %v adjust %v", w.Base, w.Adjust)
	}
	if assets := e.Assets(); len(assets) != 1 {
		t.Fatalf("asset list length: have %d want 1", len(assets))
	}
}
