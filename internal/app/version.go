package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is set at build time with
// -ldflags "-X github.com/agbru/ecurve/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that it works with any command.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "ecurve %s\n", Version)
	fmt.Fprintf(out, "Go %s on %s/%s, CPU features: %s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH, cpuFeatures())
}
