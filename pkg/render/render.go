// Package render composes the frames written to the terminal.
package render

import (
	"strings"

	"github.com/jsfr/zellij-fingers/pkg/hinter"
	"github.com/jsfr/zellij-fingers/pkg/style"
)

// Frame runs one render pass and returns the screen contents: the cursor is
// hidden and at most rows lines are emitted, without a trailing newline. cols is
// the target width; cols <= 0 keeps the capture width.
func Frame(h *hinter.Hinter, typed string, selected []string, rows, cols int) string {
	lines := h.Run(typed, selected, cols)
	if rows >= 0 && len(lines) > rows {
		lines = lines[:rows]
	}
	return style.HideCursor + strings.Join(lines, "\n")
}
