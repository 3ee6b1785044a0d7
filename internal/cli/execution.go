package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/ecurve/internal/config"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/ui"
)

// PrintExecutionConfig displays the benchmark parameters and environment.
func PrintExecutionConfig(cfg config.AppConfig, f *field.Field, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Heading("Execution Configuration"))
	fmt.Fprintf(out, "Multiplying %s%d%s operand pairs in %s%s%s (%d bits, %d words) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Iterations, ui.ColorReset(),
		ui.ColorCyan(), f.Name(), ui.ColorReset(), f.Bits(), f.Words(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Workers: %s%d%s, operand seed %s%d%s.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(), ui.ColorCyan(), cfg.Seed, ui.ColorReset())
}

// PrintExecutionMode displays whether one strategy runs or several are
// compared.
func PrintExecutionMode(strategies []field.Strategy, out io.Writer) {
	var modeDesc string
	if len(strategies) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d strategies", len(strategies))
	} else {
		modeDesc = fmt.Sprintf("Single run of the %s%s%s strategy",
			ui.ColorGreen(), strategies[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n%s\n", ui.Heading("Starting Execution"))
}
