package mint

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/tos-network/vmint/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&mintHandler{})
}

// mintHandler implements sysaction.Handler for BNC mint and vToken weight actions.
type mintHandler struct{}

func (h *mintHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionMint,
		sysaction.ActionMintWeighted,
		sysaction.ActionAssetRegister,
		sysaction.ActionAssetPledge,
		sysaction.ActionAssetUnpledge:
		return true
	}
	return false
}

func (h *mintHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	e := New(ctx.StateDB, ctx.MintConfig, nil)
	value := ctx.Value
	if value == nil {
		value = new(big.Int)
	}
	// Only a pledge accepts tx value.
	if sa.Action != sysaction.ActionAssetPledge && value.Sign() != 0 {
		return fmt.Errorf("%s: %w", sa.Action, ErrUnexpectedValue)
	}

	switch sa.Action {
	case sysaction.ActionMint:
		var p sysaction.MintPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bnc mint: %w", err)
		}
		minter, amount, err := e.registrarMint(ctx.From, p.Minter, p.Amount)
		if err != nil {
			return fmt.Errorf("bnc mint: %w", err)
		}
		return e.RecordFlatMint(minter, amount)

	case sysaction.ActionMintWeighted:
		var p sysaction.MintWeightedPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("bnc weighted mint: %w", err)
		}
		minter, amount, err := e.registrarMint(ctx.From, p.Minter, p.Amount)
		if err != nil {
			return fmt.Errorf("bnc weighted mint: %w", err)
		}
		return e.RecordWeightedMint(minter, amount, AssetID(p.AssetID))

	case sysaction.ActionAssetRegister:
		var p sysaction.AssetRegisterPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("vtoken register: %w", err)
		}
		if !e.isRegistrar(ctx.From) {
			return fmt.Errorf("vtoken register: %w", ErrNotRegistrar)
		}
		score, err := ParseAmount(p.Score)
		if err != nil {
			return fmt.Errorf("vtoken register: %w: %q", err, p.Score)
		}
		e.RegisterAssetWeight(AssetID(p.AssetID), score)
		return nil

	case sysaction.ActionAssetPledge:
		var p sysaction.AssetPledgePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("vtoken pledge: %w", err)
		}
		amount, err := ParseAmount(p.Amount)
		if err != nil {
			return fmt.Errorf("vtoken pledge: %w: %q", err, p.Amount)
		}
		if value.Cmp(amount.ToBig()) != 0 {
			return fmt.Errorf("vtoken pledge: %w: value %v, amount %v", ErrPledgeValueMismatch, value, amount.ToBig())
		}
		return e.LockPledge(AssetID(p.AssetID), ctx.From, amount)

	case sysaction.ActionAssetUnpledge:
		var p sysaction.AssetPledgePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("vtoken unpledge: %w", err)
		}
		amount, err := ParseAmount(p.Amount)
		if err != nil {
			return fmt.Errorf("vtoken unpledge: %w: %q", err, p.Amount)
		}
		return e.UnlockPledge(AssetID(p.AssetID), ctx.From, amount)
	}
	return fmt.Errorf("mint handler: unsupported action %q", sa.Action)
}

func (e *Engine) isRegistrar(from common.Address) bool {
	return e.config.Registrar != (common.Address{}) && from == e.config.Registrar
}

// registrarMint checks that from may record credits and parses the payload.
func (e *Engine) registrarMint(from common.Address, minter, amount string) (common.Address, *uint256.Int, error) {
	if !e.isRegistrar(from) {
		return common.Address{}, nil, ErrNotRegistrar
	}
	if !common.IsHexAddress(minter) {
		return common.Address{}, nil, fmt.Errorf("%w: %q", ErrInvalidMinter, minter)
	}
	v, err := ParseAmount(amount)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("%w: %q", err, amount)
	}
	return common.HexToAddress(minter), v, nil
}
