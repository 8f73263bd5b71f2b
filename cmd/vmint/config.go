package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/tos-network/vmint/mint"
	"github.com/tos-network/vmint/params"
	"github.com/urfave/cli/v2"
)

var commandDumpConfig = &cli.Command{
	Name:      "dumpconfig",
	Usage:     "Show configuration values",
	ArgsUsage: "",
	Flags:     []cli.Flag{configFileFlag},
	Description: `
Prints the effective configuration (defaults merged with --config) in TOML.`,
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfigFile(ctx.String(configFileFlag.Name))
		if err != nil {
			return err
		}
		return dumpConfig(ctx.App.Writer, cfg)
	},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, id, link)
	},
}

// vmintConfig is the TOML config file. Metrics are switched by the
// --metrics flag alone since go-ethereum's metrics package reads it before
// any config file is opened.
type vmintConfig struct {
	Mint    params.MintConfig
	Genesis mint.Genesis
}

func defaultConfig() vmintConfig {
	return vmintConfig{
		Mint:    params.DefaultMintConfig,
		Genesis: *mint.DefaultGenesis(),
	}
}

func loadConfig(file string, cfg *vmintConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadConfigFile returns the defaults overlaid with file, if one is given.
func loadConfigFile(file string) (vmintConfig, error) {
	cfg := defaultConfig()
	if file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config file %q: %w", file, err)
		}
	}
	if err := cfg.Mint.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid mint config: %w", err)
	}
	return cfg, nil
}

func dumpConfig(w io.Writer, cfg vmintConfig) error {
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
