package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/tos-network/vmint/mint"
	"github.com/tos-network/vmint/params"
	"github.com/urfave/cli/v2"
)

var (
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the raw ledger structures instead of tables",
	}
	receiptFlag = &cli.Uint64Flag{
		Name:  "receipt",
		Usage: "show the distribution receipt issued at the given block",
	}
)

var commandInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "show the emission ledger at the head block",
	ArgsUsage: "",
	Description: `
Prints the pool, price point, monitor, asset weights and outstanding credits.
Amounts are shown in BNC.`,
	Flags: []cli.Flag{
		jsonFlag,
		dumpFlag,
		receiptFlag,
	},
	Action: func(ctx *cli.Context) error {
		c, err := openChain(ctx.String(dataDirFlag.Name), true)
		if err != nil {
			return err
		}
		defer c.Close()

		w := ctx.App.Writer
		if ctx.IsSet(receiptFlag.Name) {
			r, err := mint.ReadReceipt(c.db, ctx.Uint64(receiptFlag.Name))
			if err != nil {
				return fmt.Errorf("no receipt at block %d: %w", ctx.Uint64(receiptFlag.Name), err)
			}
			if ctx.Bool(jsonFlag.Name) {
				return printJSON(w, r)
			}
			printReceipt(w, r)
			return nil
		}
		l := collectLedger(c)
		switch {
		case ctx.Bool(jsonFlag.Name):
			return printJSON(w, l)
		case ctx.Bool(dumpFlag.Name):
			spew.Fdump(w, l)
		default:
			printLedger(w, l)
		}
		return nil
	},
}

type creditView struct {
	Asset   mint.AssetID `json:",omitempty"`
	Account common.Address
	Amount  *uint256.Int
}

type assetView struct {
	ID      mint.AssetID
	Base    *uint256.Int
	Adjust  *uint256.Int
	Total   *uint256.Int
	Minters int
}

// ledger is a read-only snapshot of the emission state.
type ledger struct {
	Head     uint64
	Root     common.Hash
	Config   params.MintConfig
	Pool     *uint256.Int
	Price    mint.PricePoint
	Monitor  mint.Monitor
	Assets   []assetView
	Flat     []creditView
	Weighted []creditView
}

func collectLedger(c *chain) *ledger {
	e := c.engine()
	l := &ledger{
		Head:    c.head.Block,
		Root:    c.head.Root,
		Config:  c.config,
		Pool:    e.Pool(),
		Price:   e.PricePoint(),
		Monitor: e.Monitor(),
	}
	for _, id := range e.Assets() {
		w, _ := e.AssetWeight(id)
		minters := e.WeightedMinters(id)
		l.Assets = append(l.Assets, assetView{ID: id, Base: w.Base, Adjust: w.Adjust, Total: w.Total(), Minters: len(minters)})
		for _, m := range minters {
			l.Weighted = append(l.Weighted, creditView{Asset: id, Account: m, Amount: e.WeightedCredit(id, m)})
		}
	}
	for _, m := range e.FlatMinters() {
		l.Flat = append(l.Flat, creditView{Account: m, Amount: e.FlatCredit(m)})
	}
	return l
}

// formatBNC renders an amount in plancks as a decimal BNC string.
func formatBNC(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -params.BncDecimals).String()
}

func formatU256(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return formatBNC(v.ToBig())
}

func printLedger(w io.Writer, l *ledger) {
	fmt.Fprintf(w, "Head block:  %d\n", l.Head)
	fmt.Fprintf(w, "State root:  %s\n", l.Root.Hex())
	fmt.Fprintf(w, "Config:      %s\n\n", l.Config)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Pool", formatU256(l.Pool)})
	table.Append([]string{"Price", formatU256(l.Price.Price)})
	table.Append([]string{"Price since block", strconv.FormatUint(l.Price.Block, 10)})
	table.Append([]string{"Monitor block", strconv.FormatUint(l.Monitor.Block, 10)})
	table.Append([]string{"Watermark", formatU256(l.Monitor.Watermark)})
	table.Append([]string{"Max mint", formatU256(l.Monitor.MaxMint)})
	table.Append([]string{"Tx count", strconv.FormatUint(uint64(l.Monitor.TxCount), 10)})
	table.Render()

	if len(l.Assets) > 0 {
		fmt.Fprintln(w, "\nAsset weights")
		table = tablewriter.NewWriter(w)
		table.SetHeader([]string{"Asset", "Base", "Adjust", "Total", "Minters"})
		for _, a := range l.Assets {
			table.Append([]string{
				strconv.FormatUint(uint64(a.ID), 10), a.Base.ToBig().String(), a.Adjust.ToBig().String(), a.Total.ToBig().String(), strconv.Itoa(a.Minters),
			})
		}
		table.Render()
	}
	printCredits(w, "Flat credits", l.Flat, false)
	printCredits(w, "Weighted credits", l.Weighted, true)
}

func printCredits(w io.Writer, title string, credits []creditView, withAsset bool) {
	if len(credits) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	if withAsset {
		table.SetHeader([]string{"Asset", "Account", "Credit"})
	} else {
		table.SetHeader([]string{"Account", "Credit"})
	}
	for _, cr := range credits {
		row := []string{cr.Account.Hex(), formatU256(cr.Amount)}
		if withAsset {
			row = append([]string{strconv.FormatUint(uint64(cr.Asset), 10)}, row...)
		}
		table.Append(row)
	}
	table.Render()
}

func printReceipt(w io.Writer, r *mint.Receipt) {
	fmt.Fprintf(w, "Round at block %d (%s)\n", r.Block, r.Model)
	fmt.Fprintf(w, "Pool: %s  Paid: %s  Dust: %s\n", formatBNC(r.Pool), formatBNC(r.Paid), formatBNC(r.Dust))
	if len(r.Payouts) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Asset", "Account", "Amount"})
	for _, p := range r.Payouts {
		table.Append([]string{strconv.FormatUint(uint64(p.Asset), 10), p.Account.Hex(), formatBNC(p.Amount)})
	}
	table.Render()
}

// printJSON prints v to w as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
