package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ztc/internal/diagfmt"
	"ztc/internal/driver"
)

func runCompile(cmd *cobra.Command, args []string) error {
	cleanup, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	in := driver.Input{Path: filePath}
	if len(args) == 1 {
		in.Text, in.HasText = args[0], true
	}
	result, err := driver.Compile(cmd.Context(), in, opts)
	if err != nil {
		return err
	}

	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	idx := opts.Timer.Begin("write")
	if outputPath != "" {
		// #nosec G306 -- compiled scripts are not secret
		if err := os.WriteFile(outputPath, result.Bytes, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
	} else if err := diagfmt.HexDump(cmd.OutOrStdout(), result.Bytes); err != nil {
		return err
	}
	opts.Timer.End(idx, outputPath)

	if verbose && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "size is %d\n", len(result.Bytes))
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	return nil
}
