package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/naoina/toml"
	"github.com/shopspring/decimal"
	"github.com/tos-network/vmint/params"
	"github.com/tos-network/vmint/sysaction"
	"gopkg.in/yaml.v3"
)

// scenarioAccount is an account created and funded before the first block.
type scenarioAccount struct {
	Address string `yaml:"address"`
	Balance string `toml:",omitempty" yaml:"balance"` // in BNC, fractions allowed
}

// scenarioAction is one system action sent during a block. Minter names the
// account credited by mint actions, which only the registrar may send.
// Pledges carry Amount as tx value.
type scenarioAction struct {
	From   string `yaml:"from"`
	Action string `yaml:"action"`
	Minter string `toml:",omitempty" yaml:"minter"`
	Asset  uint32 `toml:",omitempty" yaml:"asset"`
	Amount string `toml:",omitempty" yaml:"amount"`
	Score  string `toml:",omitempty" yaml:"score"`
}

type scenarioBlock struct {
	Number  uint64           `yaml:"number"`
	Actions []scenarioAction `toml:",omitempty" yaml:"actions"`
}

// scenario is a replayable sequence of blocks. Blocks without actions
// between the listed ones are finalized empty; Until extends the run past
// the last listed block.
type scenario struct {
	Accounts []scenarioAccount `toml:",omitempty" yaml:"accounts"`
	Blocks   []scenarioBlock   `toml:",omitempty" yaml:"blocks"`
	Until    uint64            `toml:",omitempty" yaml:"until"`
}

// loadScenario decodes a scenario file, picking the format by extension.
func loadScenario(file string) (*scenario, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sc scenario
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bufio.NewReader(f))
		dec.KnownFields(true)
		err = dec.Decode(&sc)
	case ".toml":
		err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&sc)
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(file + ", " + err.Error())
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", file, err)
	}
	return &sc, sc.validate()
}

func (sc *scenario) validate() error {
	for _, acc := range sc.Accounts {
		if !common.IsHexAddress(acc.Address) {
			return fmt.Errorf("invalid account address %q", acc.Address)
		}
		if _, err := acc.balance(); err != nil {
			return err
		}
	}
	var last uint64
	for i, b := range sc.Blocks {
		if i > 0 && b.Number <= last {
			return fmt.Errorf("block %d listed after block %d", b.Number, last)
		}
		last = b.Number
		for _, a := range b.Actions {
			if !common.IsHexAddress(a.From) {
				return fmt.Errorf("block %d: invalid sender %q", b.Number, a.From)
			}
		}
	}
	return nil
}

// lastBlock is the highest block the scenario finalizes.
func (sc *scenario) lastBlock() uint64 {
	last := sc.Until
	if n := len(sc.Blocks); n > 0 && sc.Blocks[n-1].Number > last {
		last = sc.Blocks[n-1].Number
	}
	return last
}

// balance converts the BNC balance to plancks. Accounts default to a single
// planck so that they exist in state.
func (acc scenarioAccount) balance() (*big.Int, error) {
	if acc.Balance == "" {
		return big.NewInt(params.Planck), nil
	}
	d, err := decimal.NewFromString(acc.Balance)
	if err != nil {
		return nil, fmt.Errorf("account %s: invalid balance %q: %v", acc.Address, acc.Balance, err)
	}
	v := d.Shift(params.BncDecimals)
	if v.Sign() <= 0 || !v.Equal(v.Truncate(0)) {
		return nil, fmt.Errorf("account %s: balance %q must be a positive multiple of one planck", acc.Address, acc.Balance)
	}
	return v.BigInt(), nil
}

// value is the tx value sent with a.
func (a scenarioAction) value() (*big.Int, error) {
	if sysaction.ActionKind(strings.ToUpper(a.Action)) != sysaction.ActionAssetPledge {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(a.Amount, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid pledge amount %q", a.Amount)
	}
	return v, nil
}

// encode builds the system action message for a.
func (a scenarioAction) encode() ([]byte, error) {
	kind := sysaction.ActionKind(strings.ToUpper(a.Action))
	var payload interface{}
	switch kind {
	case sysaction.ActionMint:
		payload = sysaction.MintPayload{Minter: a.Minter, Amount: a.Amount}
	case sysaction.ActionMintWeighted:
		payload = sysaction.MintWeightedPayload{Minter: a.Minter, AssetID: a.Asset, Amount: a.Amount}
	case sysaction.ActionAssetRegister:
		payload = sysaction.AssetRegisterPayload{AssetID: a.Asset, Score: a.Score}
	case sysaction.ActionAssetPledge, sysaction.ActionAssetUnpledge:
		payload = sysaction.AssetPledgePayload{AssetID: a.Asset, Amount: a.Amount}
	default:
		return nil, fmt.Errorf("unknown action %q", a.Action)
	}
	return sysaction.MakeSysAction(kind, payload)
}
