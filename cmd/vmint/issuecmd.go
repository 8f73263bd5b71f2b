package main

import (
	"fmt"

	"github.com/tos-network/vmint/mint"
	"github.com/urfave/cli/v2"
)

var modelFlag = &cli.StringFlag{
	Name:  "model",
	Usage: "distribution model: flat or weighted",
	Value: "weighted",
}

var commandIssue = &cli.Command{
	Name:      "issue",
	Usage:     "run a distribution round at the head block",
	ArgsUsage: "",
	Description: `
Distributes the accumulated pool to the recorded minters immediately, without
waiting for the finalization trigger. The flat model pays in proportion to
flat credits; the weighted model splits the pool across assets by weight
first.`,
	Flags: []cli.Flag{
		modelFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		c, err := openChain(ctx.String(dataDirFlag.Name), false)
		if err != nil {
			return err
		}
		defer c.Close()

		r, err := issue(c, ctx.String(modelFlag.Name))
		if err != nil {
			return err
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx.App.Writer, r)
		}
		printReceipt(ctx.App.Writer, r)
		return nil
	},
}

// issue runs one round of the named model and commits it.
func issue(c *chain, model string) (*mint.Receipt, error) {
	e := c.engine()
	var (
		r   *mint.Receipt
		err error
	)
	switch model {
	case "flat":
		r, err = e.IssueFlat(c.head.Block)
	case "weighted":
		r, err = e.IssueWeighted(c.head.Block)
	default:
		return nil, fmt.Errorf("unknown distribution model %q", model)
	}
	if err != nil {
		// Payouts made before a failure stand unless AtomicIssue is set.
		if cerr := c.commit(); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	return r, c.commit()
}
