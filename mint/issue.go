package mint

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// IssueFlat distributes the emission pool across flat credits:
// each minter receives floor(credit * pool / totalCredit).
//
// Truncation dust is never minted. On success the pool, the flat credit table
// and the monitor are reset. A payout failure aborts the round at once; see
// params.MintConfig.AtomicIssue for what happens to payouts already made.
func (e *Engine) IssueFlat(block uint64) (*Receipt, error) {
	pool := readPool(e.db)
	if pool.IsZero() {
		return nil, ErrBncAmountNotExist
	}
	minters := readFlatMinters(e.db)
	credits := make([]*uint256.Int, len(minters))
	total := new(uint256.Int)
	for i, minter := range minters {
		credits[i] = readFlatCredit(e.db, minter)
		total = satAdd(total, credits[i])
	}
	if total.IsZero() {
		return nil, ErrMinterNotExist
	}

	rcpt := newReceipt(block, FlatModel, pool)
	err := e.round(func() error {
		for i, minter := range minters {
			if err := e.pay(rcpt, 0, minter, share(credits[i], pool, total)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writePool(e.db, new(uint256.Int))
	clearFlatCredits(e.db)
	resetMonitor(e.db)
	return e.finishRound(rcpt), nil
}

// IssueWeighted distributes the emission pool in two tiers. Each asset gets
// floor(weight * pool / totalWeight); inside an asset every minter gets
// floor(credit * assetShare / assetCredit). The share of an asset without
// credits is not paid to anyone.
//
// On success the pool, the weighted credit table and the monitor are reset;
// asset weights persist.
func (e *Engine) IssueWeighted(block uint64) (*Receipt, error) {
	pool := readPool(e.db)
	if pool.IsZero() {
		return nil, ErrBncAmountNotExist
	}
	assets := readAssets(e.db)
	weights := make([]*uint256.Int, len(assets))
	totalWeight := new(uint256.Int)
	for i, asset := range assets {
		weights[i] = readAssetWeight(e.db, asset).Total()
		totalWeight = satAdd(totalWeight, weights[i])
	}
	if totalWeight.IsZero() {
		return nil, fmt.Errorf("%w: total asset weight is zero", ErrBncAmountNotExist)
	}

	rcpt := newReceipt(block, WeightedModel, pool)
	err := e.round(func() error {
		for i, asset := range assets {
			assetShare := share(weights[i], pool, totalWeight)
			minters := readWeightedMinters(e.db, asset)
			credits := make([]*uint256.Int, len(minters))
			assetCredit := new(uint256.Int)
			for j, minter := range minters {
				credits[j] = readWeightedCredit(e.db, asset, minter)
				assetCredit = satAdd(assetCredit, credits[j])
			}
			if assetCredit.IsZero() {
				continue
			}
			for j, minter := range minters {
				if err := e.pay(rcpt, asset, minter, share(credits[j], assetShare, assetCredit)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	writePool(e.db, new(uint256.Int))
	clearWeightedCredits(e.db)
	resetMonitor(e.db)
	return e.finishRound(rcpt), nil
}

// round runs the payout loop. With AtomicIssue every payout made before a
// failure is reverted through a StateDB snapshot, which only covers deposits
// made by StateCurrency; any other currency is refused up front.
func (e *Engine) round(payouts func() error) error {
	if !e.config.AtomicIssue {
		return payouts()
	}
	if _, ok := e.currency.(*StateCurrency); !ok {
		return ErrAtomicIssueCurrency
	}
	snap := e.db.Snapshot()
	if err := payouts(); err != nil {
		e.db.RevertToSnapshot(snap)
		return err
	}
	return nil
}

func (e *Engine) pay(rcpt *Receipt, asset AssetID, minter common.Address, reward *uint256.Int) error {
	if reward.IsZero() {
		return nil
	}
	if err := e.currency.DepositIntoExisting(minter, reward); err != nil {
		return fmt.Errorf("%w: account %s: %v", ErrDepositBncFailure, minter.Hex(), err)
	}
	rcpt.add(asset, minter, reward)
	payoutMeter.Mark(1)
	return nil
}

func (e *Engine) finishRound(rcpt *Receipt) *Receipt {
	rcpt.seal()
	issueRoundMeter.Mark(1)
	log.Info("Issued BNC", "block", rcpt.Block, "model", rcpt.Model, "pool", rcpt.Pool,
		"paid", rcpt.Paid, "dust", rcpt.Dust, "payouts", len(rcpt.Payouts))
	if e.onIssue != nil {
		e.onIssue(rcpt)
	}
	return rcpt
}
