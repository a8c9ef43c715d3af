package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/jmlopez-rod/lexor"
	"github.com/jmlopez-rod/lexor/diag"
	"github.com/jmlopez-rod/lexor/node"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/registry"
	"github.com/jmlopez-rod/lexor/write"
)

type ViewConfig struct {
	*MainConfig
	OutStyle string `cli:"name=out-style desc='writing style for output (default: parse style)'"`

	View *cli.Command
}

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if err := cfg.applyStyleFile(); err != nil {
		return err
	}
	reg := lexor.DefaultRegistry()
	for _, arg := range args {
		src, err := readArg(arg)
		if err != nil {
			return err
		}
		doc, log, err := parse.Parse(src, cfg.parseOpts(reg, arg)...)
		printDiags(cfg.MainConfig, os.Stderr, arg, src, log)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", arg, err)
		}
		if cfg.OutStyle != "" {
			doc.Style = cfg.OutStyle
		}
		wlog, err := writeDoc(cc.Out, cfg.MainConfig, reg, doc)
		printDiags(cfg.MainConfig, os.Stderr, arg, src, wlog)
		if err != nil {
			return fmt.Errorf("writing %s: %w", arg, err)
		}
		if cfg.Strict && (log.HasErrors() || wlog.HasErrors()) {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	return d, nil
}

func writeDoc(w io.Writer, cfg *MainConfig, reg *registry.Registry, doc *node.Document) (diag.List, error) {
	return write.WriteTo(w, doc, cfg.writeOpts(reg)...)
}
