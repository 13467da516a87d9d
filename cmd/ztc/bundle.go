package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ztc/internal/bundle"
	"ztc/internal/driver"
)

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle -o out.ztb [flags] script...",
		Short: "Compile several scripts into one bundle file",
		Long: `Bundle compiles every script concurrently and stores the results in a
single msgpack file. Nothing is written when any input cannot be read.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBundle,
	}
	cmd.Flags().StringP("output", "o", "", "bundle file to write")
	cmd.Flags().Int("jobs", 0, "max parallel compiles (0=auto)")
	cmd.Flags().Bool("verbose", false, "print a summary of the bundle")
	addCompileFlags(cmd)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runBundle(cmd *cobra.Command, args []string) error {
	cleanup, err := setupRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.BuildBundle(cmd.Context(), args, opts, jobs)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("bundle not written: %d of %d scripts failed to load",
			len(args)-len(result.Bundle.Entries), len(args))
	}

	idx := opts.Timer.Begin("write")
	if err := bundle.Write(outputPath, result.Bundle); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	opts.Timer.End(idx, outputPath)

	if verbose {
		total := 0
		for _, e := range result.Bundle.Entries {
			total += len(e.Data)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d scripts, %d bytes\n", len(result.Bundle.Entries), total)
	}
	printTimings(cmd.ErrOrStderr(), opts.Timer)
	return nil
}
