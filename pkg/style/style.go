// Package style turns tmux-style attribute strings ("fg=green,bold") into ANSI SGR
// escape sequences.
package style

import (
	"strconv"
	"strings"
)

const (
	// Reset clears every SGR attribute.
	Reset = "\x1b[0m"
	// HideCursor hides the terminal cursor while the overlay is shown.
	HideCursor = "\x1b[?25l"
)

var colors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

var attributes = map[string]string{
	"bright":     "\x1b[1m",
	"bold":       "\x1b[1m",
	"dim":        "\x1b[2m",
	"italics":    "\x1b[3m",
	"underscore": "\x1b[4m",
	"reverse":    "\x1b[7m",
}

// Encode maps a comma or space separated attribute list to escape sequences.
// Unknown tokens are skipped.
func Encode(spec string) string {
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == ' ' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sb.WriteString(encodeToken(part))
	}
	return sb.String()
}

// Format strips an optional "#[...]" wrapper before encoding, so style strings
// written for tmux can be used as-is.
func Format(spec string) string {
	if strings.HasPrefix(spec, "#[") && strings.HasSuffix(spec, "]") && len(spec) >= 3 {
		spec = spec[2 : len(spec)-1]
	}
	return Encode(spec)
}

func encodeToken(token string) string {
	if rest, ok := strings.CutPrefix(token, "fg="); ok {
		return encodeColor(rest, false)
	}
	if rest, ok := strings.CutPrefix(token, "bg="); ok {
		return encodeColor(rest, true)
	}
	return encodeAttribute(token)
}

func encodeColor(color string, background bool) string {
	if color == "default" {
		if background {
			return "\x1b[49m"
		}
		return "\x1b[39m"
	}

	code, ok := strings.CutPrefix(color, "colour")
	if !ok {
		code, ok = strings.CutPrefix(color, "color")
	}
	if ok {
		n, err := strconv.ParseUint(code, 10, 8)
		if err != nil {
			return ""
		}
		layer := 38
		if background {
			layer = 48
		}
		return "\x1b[" + strconv.Itoa(layer) + ";5;" + strconv.FormatUint(n, 10) + "m"
	}

	if n, ok := colors[color]; ok {
		base := 30
		if background {
			base = 40
		}
		return "\x1b[" + strconv.Itoa(base+n) + "m"
	}
	return ""
}

// encodeAttribute handles bare attributes. A "no" prefix emits a full reset rather
// than the per-attribute off code, matching tmux.
func encodeAttribute(attr string) string {
	name, remove := strings.CutPrefix(attr, "no")
	code, ok := attributes[name]
	if !ok {
		return ""
	}
	if remove {
		return Reset
	}
	return code
}
