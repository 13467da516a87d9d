package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"ztc/internal/bundle"
	"ztc/internal/diagfmt"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [flags] file.ztb",
		Short: "List the scripts stored in a bundle",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().String("entry", "", "only show the entry with this name")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	only, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}

	b, err := bundle.Read(args[0])
	if err != nil {
		return err
	}

	entries := b.Entries
	if only != "" {
		e, ok := b.Lookup(only)
		if !ok {
			return fmt.Errorf("%s: no entry named %q", args[0], only)
		}
		entries = []bundle.Entry{e}
	}

	out := cmd.OutOrStdout()
	mode := "plain"
	if b.Chat {
		mode = "chat"
	}
	fmt.Fprintf(out, "schema %d, %s, %d entries\n", b.Schema, mode, len(b.Entries))
	for _, e := range entries {
		fmt.Fprintf(out, "\n%s (%d bytes, sha256 %s)\n", e.Name, len(e.Data), hex.EncodeToString(e.Source[:])[:12])
		if err := diagfmt.HexDump(out, e.Data); err != nil {
			return err
		}
	}
	return nil
}
