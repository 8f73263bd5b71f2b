// Package sysaction implements the system action protocol for the mint module.
//
// System actions are special transactions sent to params.SystemActionAddress.
// Their tx.Data field is a JSON-encoded SysAction message. The EVM is never
// invoked; instead the state processor calls sysaction.Execute() which
// dispatches to the appropriate handler (e.g. mint).
package sysaction

import "encoding/json"

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// BNC credit recording
	ActionMint         ActionKind = "BNC_MINT"
	ActionMintWeighted ActionKind = "BNC_MINT_WEIGHTED"

	// vToken weight lifecycle
	ActionAssetRegister ActionKind = "VTOKEN_REGISTER"
	ActionAssetPledge   ActionKind = "VTOKEN_PLEDGE"
	ActionAssetUnpledge ActionKind = "VTOKEN_UNPLEDGE"
)

// SysAction is the top-level envelope stored in tx.Data for system action txs.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MintPayload is the payload for BNC_MINT. Only the registrar may send it;
// Minter is the account credited.
type MintPayload struct {
	Minter string `json:"minter"` // hex address
	Amount string `json:"amount"` // decimal
}

// MintWeightedPayload is the payload for BNC_MINT_WEIGHTED.
type MintWeightedPayload struct {
	Minter  string `json:"minter"`
	AssetID uint32 `json:"asset_id"`
	Amount  string `json:"amount"`
}

// AssetRegisterPayload is the payload for VTOKEN_REGISTER.
type AssetRegisterPayload struct {
	AssetID uint32 `json:"asset_id"`
	Score   string `json:"score"`
}

// AssetPledgePayload is the payload for VTOKEN_PLEDGE / VTOKEN_UNPLEDGE.
// A pledge must carry exactly Amount as tx value.
type AssetPledgePayload struct {
	AssetID uint32 `json:"asset_id"`
	Amount  string `json:"amount"`
}
