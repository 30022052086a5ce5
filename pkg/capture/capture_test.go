package capture

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    []string
	}{
		{"trailing whitespace", "foo   \nbar\t\n", []string{"foo", "bar"}},
		{"crlf", "foo\r\nbar\r\n", []string{"foo", "bar"}},
		{"blank lines kept", "a\n\n  \nb", []string{"a", "", "", "b"}},
		{"leading whitespace kept", "  indented", []string{"  indented"}},
	}

	for _, tc := range testCases {
		got, err := Read(strings.NewReader(tc.input))
		if err != nil {
			t.Errorf("%s: Read error: %v", tc.description, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("%s: Read = %q, want %q", tc.description, got, tc.expected)
		}
	}

	if _, err := Read(strings.NewReader("")); !errors.Is(err, ErrEmptyCapture) {
		t.Errorf("Read(\"\") error = %v, want ErrEmptyCapture", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture")
	if err := os.WriteFile(path, []byte("one \ntwo\n"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("ReadFile = %q", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestWidth(t *testing.T) {
	if got := Width([]string{"ab", "日本語", "\tx"}); got != 6 {
		t.Errorf("Width = %d, want 6", got)
	}
	if got := Width(nil); got != 0 {
		t.Errorf("Width(nil) = %d, want 0", got)
	}
}
