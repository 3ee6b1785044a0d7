package app

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/ui"
)

// runFields lists the registered presets, including those loaded from
// -presets.
func (a *Application) runFields(out io.Writer) int {
	names := a.Registry.Names()
	if a.Config.Quiet {
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return apperrors.ExitSuccess
	}

	fmt.Fprintln(out, ui.Heading("Field Presets"))
	for _, name := range names {
		p, _ := a.Registry.Lookup(name)
		marker := "  "
		if name == a.Config.Field {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(out, "%s%s%-12s%s %4d bits %2d words  %s\n",
			marker, ui.ColorBlue(), name, ui.ColorReset(),
			p.Modulus.BitLen(), len(p.Modulus), p.Description)
	}
	return apperrors.ExitSuccess
}
