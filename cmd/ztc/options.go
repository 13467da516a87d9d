package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ztc/internal/charmap"
	"ztc/internal/driver"
	"ztc/internal/observ"
)

// addCompileFlags registers the flags shared by every command that compiles.
func addCompileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("chat", false, "skip chat-mode alignment padding after line breaks")
	f.Bool("nfc", false, "normalize script text to Unicode NFC before compiling")
	f.String("charmap", "", "character map TOML file (default: built-in table)")
	f.String("mugshots", "", "mugshot table TOML file (default: built-in table)")
}

// resolveOptions merges flags with ztc.toml. A flag given on the command
// line always wins; table paths from the manifest are relative to it.
func resolveOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options

	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return opts, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts.MaxDiagnostics = maxDiagnostics

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	if opts.Chat, err = boolSetting(cmd, "chat", manifest.chat()); err != nil {
		return opts, err
	}
	if opts.NFC, err = boolSetting(cmd, "nfc", manifest.nfc()); err != nil {
		return opts, err
	}

	idx := opts.Timer.Begin("tables")
	defer opts.Timer.End(idx, "")

	if path, err := pathSetting(cmd, "charmap", manifest.tablePath(manifest.charmap())); err != nil {
		return opts, err
	} else if path != "" {
		if opts.Charmap, err = charmap.LoadCharmap(path); err != nil {
			return opts, err
		}
	}
	if path, err := pathSetting(cmd, "mugshots", manifest.tablePath(manifest.mugshots())); err != nil {
		return opts, err
	} else if path != "" {
		if opts.Mugshots, err = charmap.LoadMugshots(path); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func boolSetting(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

func pathSetting(cmd *cobra.Command, name, fallback string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return v, nil
}

// colorEnabled resolves --color for output written to w.
func colorEnabled(cmd *cobra.Command, w io.Writer) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", colorFlag)
	}
}
