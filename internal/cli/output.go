package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/ecurve/internal/calc"
	"github.com/agbru/ecurve/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the decimal value only.
	Quiet bool
	// Verbose never truncates long values.
	Verbose bool
}

// WriteResultToFile writes an evaluation result to config.OutputFile,
// creating parent directories as needed. It does nothing when no file is
// configured.
func WriteResultToFile(res calc.Outcome, duration time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# ecurve result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", res.Op)
	fmt.Fprintf(file, "# Field: %s\n", res.Field)
	fmt.Fprintf(file, "# Words: %d\n", len(res.Value))
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "hex = 0x%s\n", res.Value.Hex())
	fmt.Fprintf(file, "dec = %s\n", res.Value.String())
	if res.Carry != nil {
		fmt.Fprintf(file, "carry = %d\n", *res.Carry)
	}

	return file.Close()
}

// FormatQuietResult formats a result for quiet mode: the decimal value alone.
func FormatQuietResult(res calc.Outcome) string {
	return res.Value.String()
}

// DisplayQuietResult prints a result in quiet mode.
func DisplayQuietResult(out io.Writer, res calc.Outcome) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResult prints a result with its hexadecimal and decimal forms.
// Long values are elided in the middle unless verbose is set.
func DisplayResult(res calc.Outcome, duration time.Duration, verbose bool, out io.Writer) {
	hex := "0x" + res.Value.Hex()
	dec := res.Value.String()
	truncated := false
	if !verbose {
		if h := TruncateMiddle(hex, TruncationLimit, HexDisplayEdges); h != hex {
			hex, truncated = h, true
		}
		if d := TruncateMiddle(dec, TruncationLimit, DisplayEdges); d != dec {
			dec, truncated = d, true
		}
	}

	fmt.Fprintf(out, "%s\n", ui.Heading("Result"))
	fmt.Fprintf(out, "Operation: %s%s%s in %s%s%s (%d-word result)\n",
		ui.ColorGreen(), res.Op, ui.ColorReset(), ui.ColorCyan(), res.Field, ui.ColorReset(), len(res.Value))
	fmt.Fprintf(out, "Hex:       %s%s%s\n", ui.ColorMagenta(), hex, ui.ColorReset())
	fmt.Fprintf(out, "Decimal:   %s%s%s\n", ui.ColorMagenta(), dec, ui.ColorReset())
	if res.Carry != nil {
		label := "Carry"
		if res.Op == "sub" {
			label = "Borrow"
		}
		fmt.Fprintf(out, "%-10s %d\n", label+":", *res.Carry)
	}
	fmt.Fprintf(out, "Time:      %s%s%s\n", ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "(truncated) Tip: use -v to print the full value.\n")
	}
}

// DisplayResultWithConfig prints res according to config and saves it when
// an output file is configured.
func DisplayResultWithConfig(out io.Writer, res calc.Outcome, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res)
	} else {
		DisplayResult(res, duration, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(res, duration, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
