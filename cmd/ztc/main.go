package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ztc/internal/version"
)

// newRootCmd builds the command tree. The root command itself compiles one script.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ztc [flags] [text]",
		Short: "Dialogue script compiler",
		Long: `ztc compiles annotated dialogue scripts into the byte stream read by the
text renderer. Pass the script inline or with --file; without --output the
result is printed as a hex listing.`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress warnings and other non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	f := rootCmd.Flags()
	f.String("file", "", "read the script from a file (wins over inline text)")
	f.StringP("output", "o", "", "write raw bytes to this path instead of printing a hex listing")
	f.Bool("verbose", false, "print the size of the result")
	addCompileFlags(rootCmd)

	rootCmd.AddCommand(newBundleCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main builds the CLI and executes it.
// If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
