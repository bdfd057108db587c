package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Trispn/KERN/internal/compiler/ast"
	"github.com/Trispn/KERN/internal/compiler/diag"
	"github.com/Trispn/KERN/internal/compiler/lexer"
	"github.com/Trispn/KERN/internal/compiler/parser"
	"github.com/Trispn/KERN/internal/compiler/source"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a KERN file and print its syntax tree",
	Long: `Parses one KERN source file and prints the resulting tree on stdout.
Diagnostics go to stderr; the tree is printed even when the parse is partial.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "text", "Output format: text, json or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := source.Load(path, cfg.Limits.MaxSourceLines)
	if err != nil {
		return err
	}
	logger.Debug("parsing file",
		zap.String("file", path),
		zap.Int("bytes", len(file.Content)))

	program, diags := parseContent(file.Content)
	reportDiagnostics(diags, file)

	out, err := formatProgram(program, parseFormat)
	if err != nil {
		return err
	}
	fmt.Print(out)

	if len(diags) > 0 {
		return fmt.Errorf("%s: %d syntax error(s)", path, len(diags))
	}
	return nil
}

// parseContent runs the parser with the configured limits.
func parseContent(content string) (*ast.Program, diag.List) {
	p := parser.NewWithOptions(lexer.New(content), parser.Options{
		MaxDiagnostics: cfg.Limits.MaxErrors,
	})
	program := p.ParseProgram()
	return program, p.Diagnostics()
}

// reportDiagnostics renders diags with source excerpts to stderr.
func reportDiagnostics(diags diag.List, file *source.File) {
	if len(diags) == 0 {
		return
	}
	renderer := diag.NewRenderer(cfg.Limits.TabWidth)
	renderer.RenderAll(os.Stderr, diags, file)
}

func formatProgram(program *ast.Program, format string) (string, error) {
	switch format {
	case "text":
		return ast.Dump(program), nil
	case "json":
		data, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "yaml":
		// go through the JSON form so both outputs share kind tagging
		data, err := json.Marshal(program)
		if err != nil {
			return "", err
		}
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return "", err
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
}
