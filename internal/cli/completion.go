package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/ecurve/internal/calc"
	"github.com/agbru/ecurve/internal/config"
)

// valueSource tells where a flag's completion values come from.
type valueSource int

const (
	staticValues valueSource = iota
	fieldValues
	strategyValues
	operationValues
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without dashes (e.g., "field")
	Short     string   // one-letter alias (e.g., "q")
	Help      string   // description text
	Values    []string // static completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	Source    valueSource
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "field", Help: "Field preset", ValueName: "field", Source: fieldValues},
	{Long: "op", Help: "Operation to evaluate", ValueName: "operation", Source: operationValues},
	{Short: "x", Help: "First operand", ValueName: "number"},
	{Short: "y", Help: "Second operand", ValueName: "number"},
	{Long: "strategy", Help: "Multiplication strategy to benchmark", ValueName: "strategy", Source: strategyValues},
	{Long: "iterations", Help: "Multiplications per strategy", Values: []string{"1000", "10000", "100000", "1000000"}, ValueName: "count"},
	{Long: "workers", Help: "Concurrent bench workers", Values: []string{"0", "1", "2", "4", "8"}, ValueName: "count"},
	{Long: "seed", Help: "Seed for bench operands", ValueName: "number"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "quiet", Short: "q", Help: "Print results only"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "presets", Help: "YAML file with extra field presets", IsFile: true, ValueName: "file"},
	{Long: "metrics-file", Help: "Prometheus textfile for bench metrics", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
}

// CompletionData carries the names only known at run time.
type CompletionData struct {
	Fields     []string
	Strategies []string
}

func (d CompletionData) values(f FlagCompletion) []string {
	switch f.Source {
	case fieldValues:
		return d.Fields
	case strategyValues:
		return append([]string{config.DefaultStrategy}, d.Strategies...)
	case operationValues:
		names := make([]string, len(calc.Operations))
		for i, op := range calc.Operations {
			names[i] = op.Name
		}
		return names
	}
	return f.Values
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out.
func GenerateCompletion(out io.Writer, shell string, data CompletionData) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, data)
	case "zsh":
		return generateZshCompletion(out, data)
	case "fish":
		return generateFishCompletion(out, data)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(config.Shells, ", "))
	}
}

// flagPatterns returns the spellings of f accepted on the command line.
// The flag package takes one or two dashes for every flag.
func flagPatterns(f FlagCompletion) []string {
	var p []string
	for _, name := range []string{f.Long, f.Short} {
		if name != "" {
			p = append(p, "-"+name, "--"+name)
		}
	}
	return p
}

func generateBashCompletion(out io.Writer, data CompletionData) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	writeCase([]string{config.CmdCompletion}, fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(config.Shells, " ")))
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(data.values(f)) > 0:
			writeCase(flagPatterns(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(data.values(f), " ")))
		case f.ValueName != "":
			writeCase(flagPatterns(f), "COMPREPLY=()")
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for ecurve
# Add this to your ~/.bashrc or ~/.bash_completion

_ecurve_completions() {
    local cur prev opts commands
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    commands="%s"

    case "${prev}" in
%s    esac

    if [[ ${COMP_CWORD} -eq 1 && "${cur}" != -* ]]; then
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
        return 0
    fi

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _ecurve_completions ecurve
`, strings.Join(opts, " "), strings.Join(config.Commands, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, data CompletionData) error {
	args := []string{
		fmt.Sprintf("        '1:command:(%s)'", strings.Join(config.Commands, " ")),
	}
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, data.values(f)))
	}

	script := fmt.Sprintf(`#compdef ecurve

# Zsh completion script for ecurve
# Add this to your ~/.zshrc or place in $fpath

_ecurve() {
    _arguments -s \
%s
}

_ecurve "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, values []string) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	name := f.Long
	if name == "" {
		name = f.Short
	}
	return fmt.Sprintf("        '-%s[%s]%s'", name, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, data CompletionData) error {
	lines := []string{
		"# Fish completion script for ecurve",
		"# Add this to ~/.config/fish/completions/ecurve.fish",
		"",
		"# Disable file completion by default",
		"complete -c ecurve -f",
		"",
		"# Commands",
		fmt.Sprintf("complete -c ecurve -n '__fish_use_subcommand' -a '%s'", strings.Join(config.Commands, " ")),
		fmt.Sprintf("complete -c ecurve -n '__fish_seen_subcommand_from %s' -a '%s'", config.CmdCompletion, strings.Join(config.Shells, " ")),
		"",
		"# Flags",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, data.values(f)))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
// Go flags use a single dash, so long names are declared with -o.
func fishCompleteLine(f FlagCompletion, values []string) string {
	parts := []string{"complete -c ecurve"}
	if f.Long != "" {
		parts = append(parts, "-o "+f.Long)
	}
	if f.Short != "" {
		parts = append(parts, "-o "+f.Short)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
