package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	saved := Output
	Output = &buf
	defer func() { Output = saved }()

	l := NewWithConfig("fingers", log.InfoLevel, false, false, log.TextFormatter)
	l.Info("hello", "hints", 3)
	l.Debug("hidden")

	got := buf.String()
	if !strings.Contains(got, "fingers") || !strings.Contains(got, "hello") || !strings.Contains(got, "hints=3") {
		t.Errorf("log output = %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line logged at info level: %q", got)
	}
}

func TestSetup(t *testing.T) {
	saved := log.GetLevel()
	defer log.SetLevel(saved)

	Setup(true)
	if log.GetLevel() != log.DebugLevel {
		t.Errorf("debug level = %v", log.GetLevel())
	}
	if New("x").GetLevel() != log.DebugLevel {
		t.Errorf("New does not follow the global level")
	}

	Setup(false)
	if log.GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", log.GetLevel())
	}
}
