// Package action runs the configured command on a selected match.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/log"
)

const (
	CopyKeyword = ":copy:"
	OpenKeyword = ":open:"
)

// DefaultClipboard tries each common clipboard tool in turn.
const DefaultClipboard = "{ pbcopy 2>/dev/null || wl-copy 2>/dev/null || " +
	"xclip -selection clipboard 2>/dev/null || " +
	"xsel -i --clipboard 2>/dev/null || " +
	"clip.exe 2>/dev/null; }"

// Openers are tried in order when no open command is configured.
var Openers = []string{"open", "xdg-open", "cygstart"}

// Runner starts a process and waits for it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Action is one of Copy, Open or Custom.
type Action interface {
	Execute(ctx context.Context, r Runner, text string) error
	String() string
}

// Parse maps a configured action to its variant. An empty action yields nil.
func Parse(action, clipboardCmd, openCmd string) Action {
	switch strings.TrimSpace(action) {
	case "":
		return nil
	case CopyKeyword:
		return &Copy{ClipboardCommand: clipboardCmd}
	case OpenKeyword:
		return &Open{OpenCommand: openCmd}
	default:
		return &Custom{Command: action}
	}
}

// Copy pipes the text into a clipboard command. When the command fails and
// Fallback is set, an OSC 52 sequence is written there instead.
type Copy struct {
	ClipboardCommand string
	Fallback         io.Writer
}

func (c *Copy) Execute(ctx context.Context, r Runner, text string) error {
	clipboard := c.ClipboardCommand
	if clipboard == "" {
		clipboard = DefaultClipboard
	}

	err := r.Run(ctx, "sh", "-c", fmt.Sprintf("printf '%%s' %s | %s", ShellEscape(text), clipboard))
	if err == nil || c.Fallback == nil {
		return err
	}

	log.Warnf("Clipboard command failed, using OSC 52: %v", err)
	if _, werr := osc52.New(text).WriteTo(c.Fallback); werr != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", errors.Join(err, werr))
	}
	return nil
}

func (c *Copy) String() string { return CopyKeyword }

// Open hands the text to an opener.
type Open struct {
	OpenCommand string
}

func (o *Open) Execute(ctx context.Context, r Runner, text string) error {
	if o.OpenCommand != "" {
		return r.Run(ctx, "sh", "-c", o.OpenCommand+" "+ShellEscape(text))
	}

	var errs []error
	for _, opener := range Openers {
		err := r.Run(ctx, opener, text)
		if err == nil {
			return nil
		}
		log.Debugf("Opener %s failed: %v", opener, err)
		errs = append(errs, err)
	}
	return fmt.Errorf("no opener succeeded: %w", errors.Join(errs...))
}

func (o *Open) String() string { return OpenKeyword }

// Custom pipes the text into a shell command, also exported as $HINT.
type Custom struct {
	Command string
}

func (c *Custom) Execute(ctx context.Context, r Runner, text string) error {
	escaped := ShellEscape(text)
	return r.Run(ctx, "sh", "-c", fmt.Sprintf("HINT=%s printf '%%s' %s | %s", escaped, escaped, c.Command))
}

func (c *Custom) String() string { return c.Command }

// ShellEscape single-quotes s for sh.
func ShellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
