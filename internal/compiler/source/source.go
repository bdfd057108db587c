package source

import (
	"fmt"
	"os"
	"strings"
)

// File is one named, immutable source buffer. The line index is built at
// construction so a File can be shared read-only.
type File struct {
	Name    string
	Content string
	lines   []int // byte offset of each line start
}

// FromString wraps an in-memory buffer. name is only used in rendered
// diagnostics and may be empty.
func FromString(name, content string) *File {
	f := &File{Name: name, Content: content}
	f.lines = append(f.lines, 0)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// Load reads a source file from disk. Files with more than maxLines lines
// are rejected before any lexing happens; maxLines <= 0 disables the check.
func Load(path string, maxLines int) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f := FromString(path, string(data))
	if maxLines > 0 && f.NumLines() > maxLines {
		return nil, fmt.Errorf("%s: %d lines exceeds the limit of %d", path, f.NumLines(), maxLines)
	}
	return f, nil
}

// NumLines reports the number of lines in the buffer. The empty buffer has
// one (empty) line.
func (f *File) NumLines() int {
	return len(f.lines)
}

// Line returns the 1-based line n without its trailing newline, or "" when
// n is out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Content)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	return strings.TrimSuffix(f.Content[start:end], "\r")
}
