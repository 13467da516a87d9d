// Package version holds build metadata for the ztc CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with each numeric part in its own colour, or
// plain when enabled is false. A Version that is not MAJOR.MINOR.PATCH with
// an optional suffix is returned as is.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}

	attrs := [][]color.Attribute{
		{color.FgYellow, color.Bold},
		{color.FgGreen, color.Bold},
		{color.FgBlue, color.Bold},
	}
	for i, part := range parts {
		c := color.New(attrs[i]...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[i] = c.Sprint(part)
	}

	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
