// Package capture reads the pane contents dumped by the host before the overlay
// starts.
package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// DefaultFile is where the host's screen dump lands.
const DefaultFile = "/tmp/zellij-fingers-capture"

// ErrEmptyCapture is returned when the dump holds no lines.
var ErrEmptyCapture = errors.New("pane capture is empty")

const maxLineSize = 1024 * 1024

// ReadFile reads the capture at path, DefaultFile when path is empty.
func ReadFile(path string) ([]string, error) {
	if path == "" {
		path = DefaultFile
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture: %w", err)
	}
	defer file.Close()

	lines, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture %s: %w", path, err)
	}
	log.Debugf("Read %d lines from %s", len(lines), path)
	return lines, nil
}

// Read splits r into lines with trailing whitespace removed.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRightFunc(scanner.Text(), unicode.IsSpace))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCapture
	}
	return lines, nil
}

// Width returns the widest line in cells, counting a tab as one cell.
func Width(lines []string) int {
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line) + strings.Count(line, "\t"); w > width {
			width = w
		}
	}
	return width
}
