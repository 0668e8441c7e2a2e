package utils

import (
	"strings"

	"github.com/PolarWolf314/sealbox/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// TrimFinalNewline drops a single trailing "\n" or "\r\n", the one a shell
// pipe or editor adds, and leaves any other whitespace alone.
func TrimFinalNewline(data []byte) []byte {
	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
		if n := len(data); n > 0 && data[n-1] == '\r' {
			data = data[:n-1]
		}
	}
	return data
}
