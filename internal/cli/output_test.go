package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ecurve/internal/calc"
	"github.com/agbru/ecurve/internal/fixedint"
	"github.com/agbru/ecurve/internal/ui"
)

func smallOutcome() calc.Outcome {
	carry := fixedint.Word(1)
	return calc.Outcome{Op: "add", Field: "p11", Value: fixedint.FromUint64(55, 2), Carry: &carry}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write result to file",
			outputFile: filepath.Join(tmpDir, "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				s := string(content)
				for _, want := range []string{"# Operation: add", "# Field: p11", "hex = 0x0000000000000037", "dec = 55", "carry = 1"} {
					if !strings.Contains(s, want) {
						t.Errorf("file should contain %q, got:\n%s", want, s)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "result.txt"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := WriteResultToFile(smallOutcome(), 100*time.Millisecond, OutputConfig{OutputFile: tc.outputFile})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteResultToFile_BadDirectory(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteResultToFile(smallOutcome(), time.Millisecond, OutputConfig{OutputFile: filepath.Join(blocker, "sub", "out.txt")})
	if err == nil {
		t.Error("expected an error when the parent is a regular file")
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	if got := FormatQuietResult(smallOutcome()); got != "55" {
		t.Errorf("Expected '55', got '%s'", got)
	}

	var buf bytes.Buffer
	DisplayQuietResult(&buf, smallOutcome())
	if buf.String() != "55\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	huge := fixedint.New(64)
	for i := range huge {
		huge[i] = 0xdeadbeef
	}
	borrow := fixedint.Word(1)

	tests := []struct {
		name     string
		res      calc.Outcome
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "Small value",
			res:      smallOutcome(),
			contains: []string{"--- Result ---", "Operation: add in p11", "0x0000000000000037", "Decimal:   55", "Carry:", "Time:"},
			excludes: []string{"(truncated)"},
		},
		{
			name:     "Borrow label",
			res:      calc.Outcome{Op: "sub", Field: "p11", Value: fixedint.FromUint64(1, 1), Carry: &borrow},
			contains: []string{"Borrow:"},
		},
		{
			name:     "Truncated value",
			res:      calc.Outcome{Op: "mul", Field: "p1024", Value: huge},
			contains: []string{"...", "(truncated)", "Tip: use -v"},
		},
		{
			name:     "Verbose value",
			res:      calc.Outcome{Op: "mul", Field: "p1024", Value: huge},
			verbose:  true,
			contains: []string{"0x" + huge.Hex()},
			excludes: []string{"(truncated)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.res, 3*time.Millisecond, tt.verbose, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(output, s) {
					t.Errorf("Output should not contain %q:\n%s", s, output)
				}
			}
		})
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)
	tmpDir := t.TempDir()

	t.Run("Quiet mode", func(t *testing.T) {
		var buf bytes.Buffer
		if err := DisplayResultWithConfig(&buf, smallOutcome(), time.Millisecond, OutputConfig{Quiet: true}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if buf.String() != "55\n" {
			t.Errorf("Quiet output should be the bare value, got '%s'", buf.String())
		}
	})

	t.Run("Normal mode with file output", func(t *testing.T) {
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "test_output.txt")
		if err := DisplayResultWithConfig(&buf, smallOutcome(), time.Millisecond, OutputConfig{OutputFile: outputFile}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		if !strings.Contains(buf.String(), "Result saved to") {
			t.Errorf("Should show file save message, got '%s'", buf.String())
		}
	})

	t.Run("Quiet mode with file output", func(t *testing.T) {
		var buf bytes.Buffer
		outputFile := filepath.Join(tmpDir, "quiet_output.txt")
		if err := DisplayResultWithConfig(&buf, smallOutcome(), time.Millisecond, OutputConfig{OutputFile: outputFile, Quiet: true}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(outputFile); err != nil {
			t.Errorf("Output file should exist: %v", err)
		}
		if strings.Contains(buf.String(), "Result saved to") {
			t.Error("Quiet mode should not show file save message")
		}
	})
}
