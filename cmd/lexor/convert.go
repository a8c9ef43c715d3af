package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/jmlopez-rod/lexor"
	"github.com/jmlopez-rod/lexor/convert"
	"github.com/jmlopez-rod/lexor/parse"
)

type ConvertConfig struct {
	*MainConfig
	To       string `cli:"name=to desc='target language'"`
	OutStyle string `cli:"name=out-style desc='writing style for the converted document'"`

	Convert *cli.Command
}

func convertRun(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.To == "" {
		return fmt.Errorf("%w: convert requires -to <lang>", cli.ErrUsage)
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
		cOpts := []convert.Option{convert.Plugins(reg)}
		if cfg.OutStyle != "" {
			cOpts = append(cOpts, convert.Style(cfg.OutStyle))
		}
		if cfg.Strict {
			cOpts = append(cOpts, convert.Strict())
		}
		out, clog, err := convert.Convert(doc, cfg.To, cOpts...)
		printDiags(cfg.MainConfig, os.Stderr, arg, src, clog)
		if err != nil {
			return fmt.Errorf("converting %s: %w", arg, err)
		}
		wlog, err := writeDoc(cc.Out, cfg.MainConfig, reg, out)
		printDiags(cfg.MainConfig, os.Stderr, arg, src, wlog)
		if err != nil {
			return fmt.Errorf("writing %s: %w", arg, err)
		}
		if cfg.Strict && (log.HasErrors() || clog.HasErrors() || wlog.HasErrors()) {
			return cli.ExitCodeErr(1)
		}
	}
	return nil
}
