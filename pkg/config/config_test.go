package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jsfr/zellij-fingers/pkg/action"
	"github.com/jsfr/zellij-fingers/pkg/format"
	"github.com/jsfr/zellij-fingers/pkg/pattern"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if got := strings.Join(c.Alphabet(), ""); got != Layouts["qwerty"] {
		t.Errorf("Alphabet = %q, want qwerty", got)
	}
	if got := len(c.EnabledPatterns()); got != len(pattern.Builtins) {
		t.Errorf("EnabledPatterns = %d, want all %d builtins", got, len(pattern.Builtins))
	}
	if !c.HinterOptions().ReuseHints {
		t.Errorf("hints are not reused by default")
	}

	f := c.Formatter()
	if f.HintStyle != "\x1b[32m\x1b[1m" || f.BackdropStyle != "\x1b[2m" || f.Position != format.Left {
		t.Errorf("Formatter = %+v", f)
	}

	if _, ok := c.ResolveAction().(*action.Copy); !ok {
		t.Errorf("ResolveAction = %#v, want *action.Copy", c.ResolveAction())
	}
	if c.CaptureFile() != "/tmp/zellij-fingers-capture" {
		t.Errorf("CaptureFile = %s", c.CaptureFile())
	}
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"config.toml", `
[hints]
keyboard_layout = "dvorak-homerow"
hint_position = "right"
reuse_hints = false

[styles]
hint = "fg=red"

[patterns]
enabled_builtin = "ip,sha"
custom = ["foo-[0-9]+"]

[action]
command = ":open:"
open_command = "firefox"
`},
		{"config.yaml", `
hints:
  keyboard_layout: dvorak-homerow
  hint_position: right
  reuse_hints: false
styles:
  hint: fg=red
patterns:
  enabled_builtin: ip,sha
  custom: ["foo-[0-9]+"]
action:
  command: ":open:"
  open_command: firefox
`},
	}

	for _, tc := range testCases {
		c, err := LoadConfig(writeConfig(t, tc.name, tc.content))
		if err != nil {
			t.Fatalf("%s: LoadConfig error: %v", tc.name, err)
		}

		if got := strings.Join(c.Alphabet(), ""); got != "aoeuhtnsid" {
			t.Errorf("%s: Alphabet = %q", tc.name, got)
		}
		if c.Hints.ReuseHints {
			t.Errorf("%s: reuse_hints not applied", tc.name)
		}
		if c.Formatter().Position != format.Right {
			t.Errorf("%s: hint_position not applied", tc.name)
		}
		if c.Styles.Hint != "fg=red" || c.Styles.Highlight != "fg=yellow" {
			t.Errorf("%s: styles = %+v", tc.name, c.Styles)
		}

		ip, _ := pattern.BuiltinPattern("ip")
		sha, _ := pattern.BuiltinPattern("sha")
		if got := c.EnabledPatterns(); !reflect.DeepEqual(got, []string{ip, sha, "foo-[0-9]+"}) {
			t.Errorf("%s: EnabledPatterns = %q", tc.name, got)
		}

		if got := c.ResolveAction(); !reflect.DeepEqual(got, &action.Open{OpenCommand: "firefox"}) {
			t.Errorf("%s: ResolveAction = %#v", tc.name, got)
		}
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// reuse_hints has the wrong type, so the typed decode fails.
	path := writeConfig(t, "config.toml", `
[hints]
keyboard_layout = "colemak"
reuse_hints = "no"

[action]
command = "tee /tmp/out"
`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if c.Hints.KeyboardLayout != "colemak" {
		t.Errorf("keyboard_layout = %q, want colemak", c.Hints.KeyboardLayout)
	}
	if !c.Hints.ReuseHints {
		t.Errorf("reuse_hints should keep its default")
	}
	if c.Action.Command != "tee /tmp/out" {
		t.Errorf("action = %q", c.Action.Command)
	}

	broken := writeConfig(t, "config.toml", "[hints\nkeyboard_layout = ")
	c, err = LoadConfig(broken)
	if err != nil {
		t.Fatalf("LoadConfig(broken) error: %v", err)
	}
	if !reflect.DeepEqual(c, DefaultConfig()) {
		t.Errorf("broken config = %+v, want defaults", c)
	}
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	c, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig error: %v", err)
	}
	if !reflect.DeepEqual(c, DefaultConfig()) {
		t.Errorf("InitConfig = %+v, want defaults", c)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if !reflect.DeepEqual(loaded, DefaultConfig()) {
		t.Errorf("reloaded config = %+v, want defaults", loaded)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"keyboard_layout":          "azerty-homerow",
		"enabled_builtin_patterns": "uuid",
		"pattern_0":                "first",
		"pattern_3":                "fourth",
		"pattern_25":               "ignored",
		"hint_style":               "fg=magenta",
		"action":                   "echo",
		"reuse_hints":              "false",
	})

	if got := strings.Join(c.Alphabet(), ""); got != "qsdfjkmgh" {
		t.Errorf("Alphabet = %q", got)
	}
	uuid, _ := pattern.BuiltinPattern("uuid")
	if got := c.EnabledPatterns(); !reflect.DeepEqual(got, []string{uuid, "first", "fourth"}) {
		t.Errorf("EnabledPatterns = %q", got)
	}
	if c.Styles.Hint != "fg=magenta" {
		t.Errorf("hint style = %q", c.Styles.Hint)
	}
	if c.Styles.Backdrop != "" {
		t.Errorf("backdrop = %q, want none", c.Styles.Backdrop)
	}
	if c.Hints.ReuseHints {
		t.Errorf("reuse_hints not applied")
	}
	if got := c.ResolveAction(); !reflect.DeepEqual(got, &action.Custom{Command: "echo"}) {
		t.Errorf("ResolveAction = %#v", got)
	}

	empty := FromMap(nil)
	if empty.Action.Command != ":copy:" || empty.Hints.HintPosition != "left" {
		t.Errorf("FromMap(nil) = %+v", empty)
	}
}

func TestAlphabet(t *testing.T) {
	testCases := []struct {
		hints    HintsConfig
		expected []string
	}{
		{HintsConfig{KeyboardLayout: "colemak-right-hand"}, strings.Split("neioluymjhk", "")},
		{HintsConfig{KeyboardLayout: "klingon"}, strings.Split(Layouts["qwerty"], "")},
		{HintsConfig{}, strings.Split(Layouts["qwerty"], "")},
		{HintsConfig{KeyboardLayout: "qwerty", Alphabet: "abca"}, []string{"a", "b", "c"}},
		{HintsConfig{Alphabet: "é 🇩🇰ö"}, []string{"é", "🇩🇰", "ö"}},
	}

	for _, tc := range testCases {
		c := &Config{Hints: tc.hints}
		if got := c.Alphabet(); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Alphabet(%+v) = %q, want %q", tc.hints, got, tc.expected)
		}
	}
}

func TestLayouts(t *testing.T) {
	names := LayoutNames()
	if len(names) != 20 {
		t.Errorf("LayoutNames = %d layouts, want 20", len(names))
	}
	for _, name := range names {
		alphabet := Layouts[name]
		seen := map[rune]bool{}
		for _, r := range alphabet {
			if seen[r] {
				t.Errorf("layout %s repeats %q", name, r)
			}
			seen[r] = true
		}
	}
}
