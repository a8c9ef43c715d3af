package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/mattn/go-isatty"

	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/registry"
	"github.com/jmlopez-rod/lexor/style"
	"github.com/jmlopez-rod/lexor/write"
)

type MainConfig struct {
	Lang   string `cli:"name=lang desc='input language (default: file extension)'"`
	Style  string `cli:"name=style desc='parse/write style'"`
	Color  bool   `cli:"name=color desc='force colored diagnostics'"`
	Strict bool   `cli:"name=strict desc='fail on the first problem'"`

	StyleFile string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) styleOpt(cc *cli.Context, a string) (any, error) {
	if _, err := os.Stat(a); err != nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	cfg.StyleFile = a
	return nil, nil
}

// langOf resolves the language of an input file: the -lang flag when
// given, the file extension otherwise.
func (cfg *MainConfig) langOf(path string) string {
	if cfg.Lang != "" {
		return cfg.Lang
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func (cfg *MainConfig) parseOpts(reg *registry.Registry, path string) []parse.Option {
	res := []parse.Option{
		parse.Lang(cfg.langOf(path)),
		parse.Plugins(reg),
	}
	if cfg.Style != "" {
		res = append(res, parse.Style(cfg.Style))
	}
	return res
}

func (cfg *MainConfig) writeOpts(reg *registry.Registry) []write.Option {
	res := []write.Option{write.Plugins(reg)}
	if cfg.Style != "" {
		res = append(res, write.Style(cfg.Style))
	}
	if cfg.Strict {
		res = append(res, write.Strict())
	}
	return res
}

// applyStyleFile folds the merged options of -style-file into flags that
// were not set on the command line. Recognized keys: lang, style.
func (cfg *MainConfig) applyStyleFile() error {
	if cfg.StyleFile == "" {
		return nil
	}
	m, err := style.Defaults(nil, cfg.StyleFile)
	if err != nil {
		return err
	}
	if cfg.Lang == "" {
		if v, ok := m["lang"].(string); ok {
			cfg.Lang = v
		}
	}
	if cfg.Style == "" {
		if v, ok := m["style"].(string); ok {
			cfg.Style = v
		}
	}
	return nil
}

func (cfg *MainConfig) colorize(f *os.File) bool {
	if cfg.Color {
		return true
	}
	return isatty.IsTerminal(f.Fd())
}
