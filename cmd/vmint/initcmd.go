package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var commandInit = &cli.Command{
	Name:      "init",
	Usage:     "create a new emission database",
	ArgsUsage: "",
	Description: `
Writes the genesis price point and asset weights into a fresh database in
--datadir. The mint settings from --config are stored alongside and used by
every later command.`,
	Flags: []cli.Flag{
		configFileFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfigFile(ctx.String(configFileFlag.Name))
		if err != nil {
			return err
		}
		datadir := ctx.String(dataDirFlag.Name)
		c, err := initChain(datadir, cfg)
		if err != nil {
			return fmt.Errorf("failed to write genesis: %w", err)
		}
		defer c.Close()

		log.Info("Successfully wrote genesis state", "datadir", datadir, "block", c.head.Block, "root", c.head.Root)
		fmt.Fprintf(ctx.App.Writer, "Genesis root: %s\n", c.head.Root.Hex())
		return nil
	},
}
