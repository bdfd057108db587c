//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/Trispn/KERN/internal/compiler/parser"
	"github.com/Trispn/KERN/internal/compiler/printer"
)

func main() {
	js.Global().Set("parseKERN", js.FuncOf(parseKERNWrapper))

	// Keep the program alive
	select {}
}

// parseKERNWrapper wraps the parse logic with panic recovery so a crash
// surfaces as a diagnostic instead of killing the wasm instance.
func parseKERNWrapper(this js.Value, args []js.Value) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			result = js.ValueOf(map[string]interface{}{
				"tree":      "",
				"formatted": "",
				"diagnostics": []interface{}{
					diagValue(fmt.Sprintf("panic: %v", r), 0, 0),
				},
			})
		}
	}()

	if len(args) != 1 {
		return js.ValueOf(map[string]interface{}{
			"tree":      "",
			"formatted": "",
			"diagnostics": []interface{}{
				diagValue("expected 1 argument (source code)", 0, 0),
			},
		})
	}

	source := args[0].String()
	program, diags := parser.Parse(source)

	jsDiags := make([]interface{}, 0, len(diags))
	for _, d := range diags {
		jsDiags = append(jsDiags, diagValue(d.Message, d.Pos.Line, d.Pos.Column))
	}

	// the tree is partial when there were errors; still worth showing
	tree, err := json.Marshal(program)
	if err != nil {
		jsDiags = append(jsDiags, diagValue(fmt.Sprintf("encoding error: %v", err), 0, 0))
		tree = []byte("")
	}

	return js.ValueOf(map[string]interface{}{
		"tree":        string(tree),
		"formatted":   printer.Print(program),
		"diagnostics": jsDiags,
	})
}

func diagValue(message string, line, column int) map[string]interface{} {
	return map[string]interface{}{
		"message": message,
		"line":    line,
		"column":  column,
	}
}
