package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Trispn/KERN/internal/compiler/printer"
	"github.com/Trispn/KERN/internal/compiler/source"
)

var fmtDiff bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite KERN files in canonical form",
	Long: `Formats KERN source files in place. Files that do not parse cleanly
are left untouched and reported. With -d the diff is printed instead of
writing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "Display diffs instead of rewriting files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasError := false
	for _, path := range expandArgs(args) {
		if err := fmtFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR in %s: %v\n", path, err)
			hasError = true
		}
	}
	if hasError {
		_ = logger.Sync()
		os.Exit(1)
	}
	return nil
}

func fmtFile(path string) error {
	file, err := source.Load(path, cfg.Limits.MaxSourceLines)
	if err != nil {
		return err
	}

	program, diags := parseContent(file.Content)
	if len(diags) > 0 {
		reportDiagnostics(diags, file)
		return fmt.Errorf("%d syntax error(s), not formatted", len(diags))
	}

	result := printer.Print(program)
	if result == file.Content {
		return nil
	}

	if fmtDiff {
		fmt.Printf("--- %s\n+++ %s (formatted)\n", path, path)
		printSimpleDiff(file.Content, result)
		return nil
	}

	logger.Debug("rewriting file", zap.String("file", path))
	return os.WriteFile(path, []byte(result), 0o644)
}

func printSimpleDiff(a, b string) {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")

	maxLen := max(len(aLines), len(bLines))

	for i := 0; i < maxLen; i++ {
		aLine, bLine := "", ""
		if i < len(aLines) {
			aLine = aLines[i]
		}
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			if i < len(aLines) {
				fmt.Printf("-%s\n", aLine)
			}
			if i < len(bLines) {
				fmt.Printf("+%s\n", bLine)
			}
		}
	}
}
