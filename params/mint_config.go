package params

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MintConfig carries the deployment-time knobs of the BNC emission engine.
// It is fixed at genesis; changing it on a live chain changes consensus.
type MintConfig struct {
	PriceHalfBlockInterval uint32 `toml:",omitempty" yaml:"price_half_block_interval"`
	MaxIssueBlockInterval  uint32 `toml:",omitempty" yaml:"max_issue_block_interval"`
	MaxTxAmount            uint32 `toml:",omitempty" yaml:"max_tx_amount"`
	PledgeBaseAmount       uint32 `toml:",omitempty" yaml:"pledge_base_amount"`

	// Registrar is the only sender allowed to record mint credits and to
	// register asset weights. The zero address disables those actions.
	Registrar common.Address `toml:",omitempty" yaml:"registrar"`

	// AtomicIssue reverts the payouts of a distribution round when any single
	// payout fails. Off by default: a failed round keeps the payouts already
	// made and leaves pool, credits and monitor untouched. Only deposits made
	// through the StateDB journal can be reverted, so the engine refuses to
	// issue with AtomicIssue set and a currency other than StateCurrency.
	AtomicIssue bool `toml:",omitempty" yaml:"atomic_issue"`
}

// DefaultMintConfig contains the main net emission settings.
var DefaultMintConfig = MintConfig{
	PriceHalfBlockInterval: PriceHalfBlockInterval,
	MaxIssueBlockInterval:  MaxIssueBlockInterval,
	MaxTxAmount:            MaxTxAmount,
	PledgeBaseAmount:       PledgeBaseAmount,
}

var errZeroInterval = errors.New("interval must be greater than zero")

// Validate rejects configurations the finalization trigger cannot work with.
func (c *MintConfig) Validate() error {
	if c.PriceHalfBlockInterval == 0 {
		return fmt.Errorf("price half block interval: %w", errZeroInterval)
	}
	if c.MaxIssueBlockInterval == 0 {
		return fmt.Errorf("max issue block interval: %w", errZeroInterval)
	}
	if c.MaxTxAmount == 0 {
		return errors.New("max tx amount must be greater than zero")
	}
	return nil
}

func (c MintConfig) String() string {
	return fmt.Sprintf("{PriceHalfBlockInterval: %d MaxIssueBlockInterval: %d MaxTxAmount: %d PledgeBaseAmount: %d Registrar: %s AtomicIssue: %v}",
		c.PriceHalfBlockInterval, c.MaxIssueBlockInterval, c.MaxTxAmount, c.PledgeBaseAmount, c.Registrar.Hex(), c.AtomicIssue)
}
