// vmint is a standalone driver for the BNC emission engine. It keeps the
// emission ledger in a LevelDB-backed state trie and replays block scenarios
// against it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tos-network/vmint/internal/flags"
	"github.com/urfave/cli/v2"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app *cli.App

// Commonly used command line flags.
var (
	dataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for the emission database",
		Value:    filepath.Join(flags.HomeDir(), ".vmint"),
		Category: flags.StorageCategory,
	}
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.EmissionCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	metricsFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection and print the registry on exit",
		Category: flags.MetricsCategory,
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
)

func init() {
	app = flags.NewApp(gitCommit, gitDate, "the BNC emission engine command line interface")
	app.Flags = []cli.Flag{
		dataDirFlag,
		verbosityFlag,
		metricsFlag,
	}
	app.Commands = []*cli.Command{
		commandInit,
		commandRun,
		commandIssue,
		commandInspect,
		commandDumpConfig,
	}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx.Int(verbosityFlag.Name))
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		// Meters are only live when --metrics was on the command line at
		// process start; see metrics.Enabled.
		if ctx.Bool(metricsFlag.Name) && metrics.Enabled {
			metrics.WriteOnce(metrics.DefaultRegistry, ctx.App.ErrWriter)
		}
		return nil
	}
}

// setupLogging routes the root logger to stderr, colouring output when
// stderr is a terminal.
func setupLogging(verbosity int) {
	usecolor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	output := colorable.NewColorableStderr()
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(verbosity), log.StreamHandler(output, log.TerminalFormat(usecolor))))
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
