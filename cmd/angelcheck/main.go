// Command angelcheck is a one-shot CLI: lex, parse, hoist, and analyze each
// AngelScript file named on the command line, then print every diagnostic
// collected along the way.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/angelscript-front/internal/analyzer"
	"github.com/funvibe/angelscript-front/internal/config"
	"github.com/funvibe/angelscript-front/internal/diagnostics"
	"github.com/funvibe/angelscript-front/internal/hoist"
	"github.com/funvibe/angelscript-front/internal/lexer"
	"github.com/funvibe/angelscript-front/internal/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: angelcheck [file.as ...]")
		os.Exit(2)
	}

	if err := config.Load(config.ConfigFileName); err != nil {
		fmt.Fprintf(os.Stderr, "angelcheck: reading %s: %v\n", config.ConfigFileName, err)
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	exitCode := 0
	for _, path := range os.Args[1:] {
		if !checkFile(path, color) {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// checkFile runs the full pipeline over one file and prints its diagnostics.
// It returns false if any diagnostic was reported.
func checkFile(path string, color bool) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "angelcheck: %v\n", err)
		return false
	}

	tokens := lexer.New(string(src), path).Tokenize()
	p := parser.New(tokens, path)
	script := p.ParseProgram()

	result := hoist.Run(script)
	a := analyzer.New()
	a.Analyze(result)

	all := mergeDiagnostics(p.Diagnostics(), a.Diagnostics)
	for _, d := range all {
		printDiagnostic(path, d, color)
	}
	return len(all) == 0
}

func mergeDiagnostics(sinks ...*diagnostics.Sink) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, s := range sinks {
		out = append(out, s.All()...)
	}
	return out
}

func severityLabel(s diagnostics.Severity) string {
	switch s {
	case diagnostics.Syntactic:
		return "syntax"
	case diagnostics.Resolution:
		return "resolution"
	case diagnostics.Type:
		return "type"
	case diagnostics.Access:
		return "access"
	default:
		return "error"
	}
}

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

func printDiagnostic(path string, d diagnostics.Diagnostic, color bool) {
	rel := filepath.Base(path)
	label := severityLabel(d.Severity)
	if !color {
		fmt.Printf("%s:%d:%d: %s[%s]: %s\n", rel, d.Location.Start.Line, d.Location.Start.Column, label, d.Code, d.Message)
		return
	}
	c := colorYellow
	if d.Severity == diagnostics.Syntactic {
		c = colorRed
	}
	fmt.Printf("%s%s:%d:%d: %s[%s]%s: %s\n", c, rel, d.Location.Start.Line, d.Location.Start.Column, label, d.Code, colorReset, d.Message)
}
