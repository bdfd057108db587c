package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Trispn/KERN/internal/compiler/diag"
	"github.com/Trispn/KERN/internal/compiler/interner"
	"github.com/Trispn/KERN/internal/compiler/lexer"
	"github.com/Trispn/KERN/internal/compiler/parser"
	"github.com/Trispn/KERN/internal/compiler/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check the syntax of KERN files",
	Long: `Parses every given file (shell globs welcome) and reports OK or the
full diagnostic list per file. Files are checked concurrently; the exit code
is 1 when any file has errors.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

type checkResult struct {
	file  *source.File
	diags diag.List
	err   error
}

func runCheck(cmd *cobra.Command, args []string) error {
	files := expandArgs(args)

	// one interner across all files keeps repeated names shared
	shared := interner.New()

	var mu sync.Mutex
	results := make(map[string]checkResult, len(files))

	g, _ := errgroup.WithContext(cmd.Context())
	for _, path := range files {
		path := path
		g.Go(func() error {
			var res checkResult
			res.file, res.err = source.Load(path, cfg.Limits.MaxSourceLines)
			if res.err == nil {
				p := parser.NewWithOptions(lexer.New(res.file.Content), parser.Options{
					MaxDiagnostics: cfg.Limits.MaxErrors,
					Interner:       shared,
				})
				p.ParseProgram()
				res.diags = p.Diagnostics()
			}
			mu.Lock()
			results[path] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	hasError := false
	renderer := diag.NewRenderer(cfg.Limits.TabWidth)
	for _, path := range files {
		res := results[path]
		switch {
		case res.err != nil:
			fmt.Printf("ERROR in %s: %v\n", path, res.err)
			hasError = true
		case len(res.diags) > 0:
			renderer.RenderAll(os.Stdout, res.diags, res.file)
			fmt.Printf("ERROR in %s: %d syntax error(s)\n", path, len(res.diags))
			hasError = true
		default:
			fmt.Printf("OK: %s\n", path)
		}
	}
	logger.Debug("check finished",
		zap.Int("files", len(files)),
		zap.Bool("errors", hasError))

	if hasError {
		_ = logger.Sync()
		os.Exit(1)
	}
	return nil
}

// expandArgs resolves globs the shell did not expand and dedups the result.
func expandArgs(args []string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			// let the per-file load report the real problem
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files
}
