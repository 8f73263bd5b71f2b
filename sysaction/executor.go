package sysaction

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/tos-network/vmint/params"
)

// ErrUnknownAction is returned when no registered handler claims an action.
var ErrUnknownAction = errors.New("unknown system action")

// Context carries information available to a system-action handler.
type Context struct {
	From        common.Address
	Value       *big.Int
	BlockNumber *big.Int
	StateDB     vm.StateDB
	MintConfig  *params.MintConfig
}

// Handler is implemented by the mint sub-system.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

func (r *Registry) lookup(kind ActionKind) Handler {
	for _, h := range r.handlers {
		if h.CanHandle(kind) {
			return h
		}
	}
	return nil
}

// Msg is the minimal message interface for Execute, satisfied by types.Message.
type Msg interface {
	From() common.Address
	To() *common.Address
	Value() *big.Int
	Data() []byte
}

// Execute processes a system action from msg and dispatches to a registered handler.
// Returns (gasUsed, error). A nil cfg selects params.DefaultMintConfig.
func Execute(msg Msg, db vm.StateDB, blockNumber *big.Int, cfg *params.MintConfig) (uint64, error) {
	sa, err := Decode(msg.Data())
	if err != nil {
		return params.MintActionGas, err
	}
	if cfg == nil {
		cfg = &params.DefaultMintConfig
	}
	ctx := &Context{
		From:        msg.From(),
		Value:       msg.Value(),
		BlockNumber: blockNumber,
		StateDB:     db,
		MintConfig:  cfg,
	}
	h := DefaultRegistry.lookup(sa.Action)
	if h == nil {
		return params.MintActionGas, fmt.Errorf("%w: %q", ErrUnknownAction, sa.Action)
	}
	return params.MintActionGas, h.Handle(ctx, sa)
}

// ExecuteWithContext dispatches using a pre-built Context (used by the CLI and tests).
func ExecuteWithContext(ctx *Context, data []byte) error {
	sa, err := Decode(data)
	if err != nil {
		return err
	}
	h := DefaultRegistry.lookup(sa.Action)
	if h == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAction, sa.Action)
	}
	return h.Handle(ctx, sa)
}
