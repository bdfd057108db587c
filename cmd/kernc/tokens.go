package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Trispn/KERN/internal/compiler/lexer"
	"github.com/Trispn/KERN/internal/compiler/source"
	"github.com/Trispn/KERN/internal/compiler/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a KERN file",
	Long: `Runs only the tokenizer and prints one token per line with its
position. Lexing never fails: stray characters show up as ILLEGAL tokens.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	file, err := source.Load(args[0], cfg.Limits.MaxSourceLines)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	l := lexer.New(file.Content)
	for {
		tok := l.NextToken()
		fmt.Fprintf(w, "%s\t%s\n", tok.Pos, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return w.Flush()
}
