package action

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

// fakeRunner records calls and fails for the names in fail.
type fakeRunner struct {
	calls []call
	fail  map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name, args})
	if f.fail[name] {
		return errors.New(name + " not found")
	}
	return nil
}

func TestParse(t *testing.T) {
	testCases := []struct {
		action   string
		expected Action
	}{
		{"", nil},
		{"  ", nil},
		{":copy:", &Copy{ClipboardCommand: "xclip"}},
		{":open:", &Open{OpenCommand: "firefox"}},
		{"tee /tmp/out", &Custom{Command: "tee /tmp/out"}},
	}

	for _, tc := range testCases {
		got := Parse(tc.action, "xclip", "firefox")
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("Parse(%q) = %#v, want %#v", tc.action, got, tc.expected)
		}
	}
}

func TestShellEscape(t *testing.T) {
	testCases := map[string]string{
		"plain":       "'plain'",
		"it's":        `'it'\''s'`,
		"$(rm -rf /)": "'$(rm -rf /)'",
		"":            "''",
	}
	for input, want := range testCases {
		if got := ShellEscape(input); got != want {
			t.Errorf("ShellEscape(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestExecute(t *testing.T) {
	testCases := []struct {
		description string
		action      Action
		text        string
		expected    []call
	}{
		{
			"copy with default clipboard", &Copy{}, "a'b",
			[]call{{"sh", []string{"-c", `printf '%s' 'a'\''b' | ` + DefaultClipboard}}},
		},
		{
			"copy with configured clipboard", &Copy{ClipboardCommand: "pbcopy"}, "x",
			[]call{{"sh", []string{"-c", "printf '%s' 'x' | pbcopy"}}},
		},
		{
			"open with configured opener", &Open{OpenCommand: "firefox"}, "https://x.y",
			[]call{{"sh", []string{"-c", "firefox 'https://x.y'"}}},
		},
		{
			"open tries the first opener", &Open{}, "https://x.y",
			[]call{{"open", []string{"https://x.y"}}},
		},
		{
			"custom", &Custom{Command: "tee /tmp/out"}, "42",
			[]call{{"sh", []string{"-c", "HINT='42' printf '%s' '42' | tee /tmp/out"}}},
		},
	}

	for _, tc := range testCases {
		r := &fakeRunner{}
		if err := tc.action.Execute(context.Background(), r, tc.text); err != nil {
			t.Errorf("%s: Execute error: %v", tc.description, err)
		}
		if !reflect.DeepEqual(r.calls, tc.expected) {
			t.Errorf("%s: calls = %+v, want %+v", tc.description, r.calls, tc.expected)
		}
	}
}

func TestOpenFallsThrough(t *testing.T) {
	r := &fakeRunner{fail: map[string]bool{"open": true}}
	if err := (&Open{}).Execute(context.Background(), r, "f"); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(r.calls) != 2 || r.calls[1].name != "xdg-open" {
		t.Errorf("calls = %+v, want open then xdg-open", r.calls)
	}

	r = &fakeRunner{fail: map[string]bool{"open": true, "xdg-open": true, "cygstart": true}}
	if err := (&Open{}).Execute(context.Background(), r, "f"); err == nil {
		t.Errorf("Execute with no opener should fail")
	}
}

func TestCopyFallback(t *testing.T) {
	r := &fakeRunner{fail: map[string]bool{"sh": true}}

	if err := (&Copy{}).Execute(context.Background(), r, "hi"); err == nil {
		t.Errorf("Copy without fallback should fail")
	}

	var buf bytes.Buffer
	if err := (&Copy{Fallback: &buf}).Execute(context.Background(), r, "hi"); err != nil {
		t.Fatalf("Copy with fallback error: %v", err)
	}
	// "hi" in base64.
	if got := buf.String(); !strings.HasPrefix(got, "\x1b]52;c;aGk=") {
		t.Errorf("fallback wrote %q, want an OSC 52 sequence", got)
	}
}
