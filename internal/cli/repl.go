package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/ecurve/internal/calc"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/fixedint"
	"github.com/agbru/ecurve/internal/ui"
)

// lastResultToken stands for the previous result in operand position.
const lastResultToken = "$"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultField is the preset the session starts in.
	DefaultField string
	// HexOutput displays results in hexadecimal format.
	HexOutput bool
}

// REPL is an interactive session evaluating operations in one field at a
// time.
type REPL struct {
	config   REPLConfig
	registry *field.Registry
	factory  field.StrategyFactory
	current  *field.Field
	last     fixedint.Nat
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a session starting in config.DefaultField.
func NewREPL(registry *field.Registry, factory field.StrategyFactory, config REPLConfig) (*REPL, error) {
	f, err := registry.Field(config.DefaultField)
	if err != nil {
		return nil, err
	}
	return &REPL{
		config:   config,
		registry: registry,
		factory:  factory,
		current:  f,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and runs commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprintf(r.out, "%s%s> %s", ui.ColorGreen(), r.current.Name(), ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, ui.Box(
		ui.ColorBold()+"ecurve interactive mode"+ui.ColorReset(),
		fmt.Sprintf("field %s, %d bits in %d words", r.current.Name(), r.current.Bits(), r.current.Words()),
	))
	fmt.Fprintln(r.out)
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> x [y]%s       - Evaluate an operation (%s for the last result)\n", ui.ColorYellow(), ui.ColorReset(), lastResultToken)
	fmt.Fprintf(r.out, "  %sops%s              - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scompare x y%s      - Multiply with every strategy and check agreement\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfield <name>%s     - Switch field\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfields%s           - List field presets\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s              - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one input line. It returns false if the REPL should
// exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "field", "f":
		r.cmdField(args)
	case "fields", "ls":
		r.cmdFields()
	case "ops":
		r.cmdOps()
	case "compare", "cmp":
		r.cmdCompare(args)
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if op, ok := calc.Lookup(cmd); ok {
			r.cmdEvaluate(op, args)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// operand substitutes the last result for lastResultToken.
func (r *REPL) operand(s string) (string, error) {
	if s != lastResultToken {
		return s, nil
	}
	if r.last == nil {
		return "", errors.New("no previous result")
	}
	return "0x" + r.last.Hex(), nil
}

func (r *REPL) cmdEvaluate(op calc.Operation, args []string) {
	want := 2
	usage := fmt.Sprintf("%s x y", op.Name)
	if op.Unary {
		want, usage = 1, fmt.Sprintf("%s x", op.Name)
	}
	if len(args) != want {
		fmt.Fprintf(r.out, "%sUsage: %s%s (%s)\n", ui.ColorRed(), usage, ui.ColorReset(), op.Help)
		return
	}

	operands := make([]string, 2)
	for i, a := range args {
		v, err := r.operand(a)
		if err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		operands[i] = v
	}

	start := time.Now()
	res, err := calc.Evaluate(r.current, op.Name, operands[0], operands[1])
	duration := time.Since(start)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.last = res.Value

	fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), r.formatValue(res.Value), ui.ColorReset())
	if res.Carry != nil {
		fmt.Fprintf(r.out, "  carry %s%d%s\n", ui.ColorCyan(), *res.Carry, ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  (%s%s%s)\n", ui.ColorYellow(), FormatExecutionDuration(duration), ui.ColorReset())
}

func (r *REPL) formatValue(v fixedint.Nat) string {
	if r.config.HexOutput {
		return "0x" + v.Hex()
	}
	s := v.String()
	if t := TruncateMiddle(s, TruncationLimit, DisplayEdges); t != s {
		return t + " (truncated)"
	}
	return s
}

func (r *REPL) cmdCompare(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: compare x y%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	vals := make([]fixedint.Nat, 2)
	for i, a := range args {
		s, err := r.operand(a)
		if err == nil {
			var e field.Element
			e, err = r.current.Parse(s)
			vals[i] = e.Value()
		}
		if err != nil {
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
	}

	fmt.Fprintf(r.out, "\n%sComparison in %s:%s\n", ui.ColorBold(), r.current.Name(), ui.ColorReset())
	var first fixedint.Nat
	for _, s := range r.factory.GetAll() {
		start := time.Now()
		product, err := s.Mul(r.current, vals[0], vals[1])
		duration := time.Since(start)
		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), s.Name(), ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if first == nil {
			first = product
		} else if !fixedint.Equal(first, product) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%10s%s %s\n",
			ui.ColorYellow(), s.Name(), ui.ColorReset(),
			ui.ColorCyan(), FormatExecutionDuration(duration), ui.ColorReset(), status)
	}
	if first != nil {
		r.last = first
		fmt.Fprintf(r.out, "  = %s%s%s\n", ui.ColorGreen(), r.formatValue(first), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdField(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: field <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available fields: %s\n", strings.Join(r.registry.Names(), ", "))
		return
	}
	f, err := r.registry.Field(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.current = f
	r.last = nil
	fmt.Fprintf(r.out, "Field changed to: %s%s%s (%d bits)\n", ui.ColorGreen(), f.Name(), ui.ColorReset(), f.Bits())
}

func (r *REPL) cmdFields() {
	fmt.Fprintf(r.out, "\n%sAvailable fields:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.registry.Names() {
		p, _ := r.registry.Lookup(name)
		marker := "  "
		if name == r.current.Name() {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-12s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), p.Description)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range calc.Operations {
		fmt.Fprintf(r.out, "  %s%-5s%s - %s\n", ui.ColorYellow(), op.Name, ui.ColorReset(), op.Help)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Field:        %s%s%s\n", ui.ColorCyan(), r.current.Name(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Modulus:      %s0x%s%s\n", ui.ColorCyan(), r.current.Modulus().Hex(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Width:        %s%d%s words\n", ui.ColorCyan(), r.current.Words(), ui.ColorReset())
	hexStatus := "no"
	if r.config.HexOutput {
		hexStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Hexadecimal:  %s%s%s\n", ui.ColorCyan(), hexStatus, ui.ColorReset())
	last := "none"
	if r.last != nil {
		last = r.formatValue(r.last)
	}
	fmt.Fprintf(r.out, "  Last result:  %s%s%s\n", ui.ColorCyan(), last, ui.ColorReset())
	fmt.Fprintln(r.out)
}
