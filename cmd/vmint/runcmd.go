package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/vmint/sysaction"
	"github.com/urfave/cli/v2"
)

var commandRun = &cli.Command{
	Name:      "run",
	Usage:     "replay a block scenario",
	ArgsUsage: "<scenario.toml|scenario.yaml>",
	Description: `
Funds the scenario accounts, then processes every block from the current head
up to the last block of the scenario. Listed actions are sent as system
actions; each block ends with the emission finalization step. Failed actions
are reverted and reported, like failed transactions.`,
	Action: func(ctx *cli.Context) error {
		if ctx.Args().Len() != 1 {
			return fmt.Errorf("need exactly one scenario file")
		}
		sc, err := loadScenario(ctx.Args().First())
		if err != nil {
			return err
		}
		c, err := openChain(ctx.String(dataDirFlag.Name), false)
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := runScenario(c, sc)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "Processed blocks %d-%d: %d actions, %d failed, %d rounds\n",
			res.first, c.head.Block, res.actions, res.failed, res.rounds)
		fmt.Fprintf(ctx.App.Writer, "State root: %s\n", c.head.Root.Hex())
		return nil
	},
}

type runResult struct {
	first   uint64
	actions int
	failed  int
	rounds  int
}

// runScenario applies sc on top of the chain head and commits the result.
func runScenario(c *chain, sc *scenario) (*runResult, error) {
	res := &runResult{first: c.head.Block + 1}
	if len(sc.Blocks) > 0 && sc.Blocks[0].Number <= c.head.Block {
		return nil, fmt.Errorf("block %d is not above head %d", sc.Blocks[0].Number, c.head.Block)
	}
	for _, acc := range sc.Accounts {
		balance, _ := acc.balance()
		c.state.AddBalance(common.HexToAddress(acc.Address), balance)
	}
	e := c.engine()
	rounds := c.rounds

	next := 0
	for block := c.head.Block + 1; block <= sc.lastBlock(); block++ {
		if next < len(sc.Blocks) && sc.Blocks[next].Number == block {
			for _, a := range sc.Blocks[next].Actions {
				res.actions++
				if err := applyAction(c, block, a); err != nil {
					res.failed++
					log.Warn("System action failed", "block", block, "from", a.From, "action", a.Action, "err", err)
				}
			}
			next++
		}
		e.FinalizeBlock(block)
		c.head.Block = block
	}
	res.rounds = c.rounds - rounds
	if err := c.commit(); err != nil {
		return nil, err
	}
	return res, nil
}

// applyAction executes a as a system action, reverting its state changes
// on failure.
func applyAction(c *chain, block uint64, a scenarioAction) error {
	data, err := a.encode()
	if err != nil {
		return err
	}
	value, err := a.value()
	if err != nil {
		return err
	}
	snap := c.state.Snapshot()
	err = sysaction.ExecuteWithContext(&sysaction.Context{
		From:        common.HexToAddress(a.From),
		Value:       value,
		BlockNumber: new(big.Int).SetUint64(block),
		StateDB:     c.state,
		MintConfig:  &c.config,
	}, data)
	if err != nil {
		c.state.RevertToSnapshot(snap)
	}
	return err
}
