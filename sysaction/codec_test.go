package sysaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not json"), []byte(`{"payload":{}}`)} {
		_, err := Decode(data)
		assert.True(t, errors.Is(err, ErrInvalidSysAction), "data %q: got %v", data, err)
	}
}

func TestMakeSysActionPayload(t *testing.T) {
	data, err := MakeSysAction(ActionMintWeighted, MintWeightedPayload{AssetID: 7, Amount: "42"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"action":"BNC_MINT_WEIGHTED","payload":{"asset_id":7,"amount":"42"}}`, string(data))

	sa, err := Decode(data)
	assert.NoError(t, err)
	var p MintWeightedPayload
	assert.NoError(t, DecodePayload(sa, &p))
	assert.Equal(t, MintWeightedPayload{AssetID: 7, Amount: "42"}, p)
}

func TestDecodePayloadStrict(t *testing.T) {
	sa, err := Decode([]byte(`{"action":"VTOKEN_PLEDGE","payload":{"asset_id":1,"amount":"5","extra":true}}`))
	assert.NoError(t, err)
	var p AssetPledgePayload
	assert.ErrorIs(t, DecodePayload(sa, &p), ErrInvalidSysAction)

	sa, err = Decode([]byte(`{"action":"VTOKEN_PLEDGE"}`))
	assert.NoError(t, err)
	assert.ErrorIs(t, DecodePayload(sa, &p), ErrInvalidSysAction)
}

type stubHandler struct{ kinds []ActionKind }

func (h stubHandler) CanHandle(kind ActionKind) bool {
	for _, k := range h.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (h stubHandler) Handle(*Context, *SysAction) error { return nil }

func TestRegistryLookup(t *testing.T) {
	r := &Registry{}
	r.Register(stubHandler{kinds: []ActionKind{ActionMint}})
	assert.NotNil(t, r.lookup(ActionMint))
	assert.Nil(t, r.lookup(ActionAssetPledge))
}
