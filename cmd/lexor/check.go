package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jmlopez-rod/lexor"
	"github.com/jmlopez-rod/lexor/parse"
	"github.com/jmlopez-rod/lexor/write"
)

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='report only the verdict, no diff'"`

	Check *cli.Command
}

var (
	insColor = color.New(color.FgGreen).SprintFunc()
	delColor = color.New(color.FgRed, color.CrossedOut).SprintFunc()
)

// check parses each file and writes it back, then diffs the result
// against the original bytes. Files that do not round trip fail the
// command.
func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if err := cfg.applyStyleFile(); err != nil {
		return err
	}
	reg := lexor.DefaultRegistry()
	dirty := 0
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
		got, wlog, err := write.Write(doc, cfg.writeOpts(reg)...)
		printDiags(cfg.MainConfig, os.Stderr, arg, src, wlog)
		if err != nil {
			return fmt.Errorf("writing %s: %w", arg, err)
		}
		if got == string(src) {
			fmt.Fprintf(cc.Out, "%s: ok\n", arg)
			continue
		}
		dirty++
		fmt.Fprintf(cc.Out, "%s: does not round trip\n", arg)
		if cfg.Quiet {
			continue
		}
		printDiff(cfg, cc, string(src), got)
	}
	if dirty > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func printDiff(cfg *CheckConfig, cc *cli.Context, from, to string) {
	colorize := false
	if f, ok := cc.Out.(*os.File); ok {
		colorize = cfg.colorize(f)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(from, to, false)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			fmt.Fprint(cc.Out, diff.Text)
		case diffpatch.DiffInsert:
			if colorize {
				fmt.Fprint(cc.Out, insColor(diff.Text))
			} else {
				fmt.Fprintf(cc.Out, "{+%s+}", diff.Text)
			}
		case diffpatch.DiffDelete:
			if colorize {
				fmt.Fprint(cc.Out, delColor(diff.Text))
			} else {
				fmt.Fprintf(cc.Out, "{-%s-}", diff.Text)
			}
		}
	}
	fmt.Fprintln(cc.Out)
}
