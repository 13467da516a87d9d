package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ztc/internal/diag"
	"ztc/internal/diagfmt"
	"ztc/internal/observ"
	"ztc/internal/source"
)

// reportDiagnostics renders bag to stderr in the --diag-format format.
// With --quiet only errors are printed.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		bag = errorsOnly(bag)
	}
	if bag.Len() == 0 {
		return nil
	}

	format, err := cmd.Root().PersistentFlags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}

	out := cmd.ErrOrStderr()
	switch format {
	case "pretty":
		useColor, err := colorEnabled(cmd, out)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format %q (must be pretty or json)", format)
	}
}

func errorsOnly(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(bag.Cap())
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

// printTimings writes one line per phase, then the total.
func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
