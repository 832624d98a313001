// Package version holds build information for fmtcheck. The variables can be
// overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the tool.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Pretty returns Version with its major, minor and patch parts coloured.
// Anything after the patch number is left plain.
func Pretty(enabled bool) string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	patch, rest := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, rest = patch[:i], patch[i:]
	}
	paint := func(fg color.Attribute, s string) string {
		if !enabled {
			return s
		}
		c := color.New(fg, color.Bold)
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(color.FgYellow, parts[0]) + "." + paint(color.FgGreen, parts[1]) + "." + paint(color.FgBlue, patch) + rest
}
