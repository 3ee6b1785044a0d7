package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ecurve/internal/config"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/ui"
)

func TestPrintExecutionConfig(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	f, err := field.NewRegistry().Field("secp256k1")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.AppConfig{Iterations: 500, Workers: 3, Seed: 9, Timeout: time.Minute}

	var buf bytes.Buffer
	PrintExecutionConfig(cfg, f, &buf)
	out := buf.String()
	for _, want := range []string{"--- Execution Configuration ---", "Multiplying 500 operand pairs in secp256k1 (256 bits, 8 words)", "timeout of 1m0s", "Workers: 3, operand seed 9."} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	var buf bytes.Buffer
	PrintExecutionMode([]field.Strategy{field.MontgomeryStrategy{}}, &buf)
	if !strings.Contains(buf.String(), "Single run of the montgomery strategy") {
		t.Errorf("unexpected single mode output %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(field.NewDefaultFactory().GetAll(), &buf)
	if !strings.Contains(buf.String(), "Parallel comparison of 3 strategies") {
		t.Errorf("unexpected comparison output %q", buf.String())
	}
	if !strings.Contains(buf.String(), "--- Starting Execution ---") {
		t.Error("missing execution heading")
	}
}
