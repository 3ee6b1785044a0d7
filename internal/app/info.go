package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/ui"
)

// runInfo prints the modulus and Montgomery constants of the configured
// field.
func (a *Application) runInfo(out io.Writer) int {
	f, code := a.field()
	if f == nil {
		return code
	}
	ctx := f.Context()
	m := f.Modulus()

	lines := []string{
		fmt.Sprintf("Field:      %s%s%s", ui.ColorCyan(), f.Name(), ui.ColorReset()),
		fmt.Sprintf("Modulus:    0x%s", m.Hex()),
		fmt.Sprintf("Decimal:    %s", m.String()),
		fmt.Sprintf("Size:       %d bits in %d words of 32 bits", f.Bits(), f.Words()),
		fmt.Sprintf("R mod m:    0x%s", ctx.RModM().Hex()),
		fmt.Sprintf("R^2 mod m:  0x%s", ctx.R2ModM().Hex()),
		fmt.Sprintf("m':         0x%08x", ctx.NegInverse()),
	}
	if p, ok := a.Registry.Lookup(f.Name()); ok && p.Description != "" {
		lines = append(lines, "About:      "+p.Description)
	}

	fmt.Fprintln(out, ui.Heading("Montgomery Parameters"))
	fmt.Fprintln(out, ui.Box(lines...))
	fmt.Fprintf(out, "CPU: %s/%s, features: %s\n", runtime.GOOS, runtime.GOARCH, cpuFeatures())
	return apperrors.ExitSuccess
}

// cpuFeatures lists the CPU extensions relevant to multi-word arithmetic.
func cpuFeatures() string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasPMULL, "pmull")
		add(cpu.ARM64.HasSVE, "sve")
	}
	if len(feats) == 0 {
		return "none detected"
	}
	return strings.Join(feats, " ")
}
