// Copyright 2025 The zellij-fingers Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the fingers hint overlay.

fingers reads a dump of terminal text, finds everything worth copying in it (paths,
URLs, hashes, IPs, UUIDs and custom patterns), labels each match with a short hint
and lets you pick matches by typing their hints. The picked text is handed to an
action: the clipboard by default, an opener, or any shell command.

# Usage

Pick from the pane dump written by the host:

	fingers

Pick from piped text, in debug mode:

	git status | fingers -capture - -d

Print one hinted frame and exit:

	fingers -print -capture notes.txt

Serve a host over msgpack on stdin/stdout:

	fingers -serve -capture /tmp/zellij-fingers-capture

# Keys

Typing a hint selects its match. Tab toggles multi-select; in multi-select mode
every typed hint is collected and Tab or Enter finishes with the matches joined by
spaces. Backspace removes the last typed key, Esc cancels.

# Configuration

The config lives at [UserConfigDir]/fingers/config.toml and is created with
defaults when missing. YAML is accepted for .yaml and .yml paths:

	[hints]
	keyboard_layout = "qwerty"
	hint_position = "left"
	reuse_hints = true

	[styles]
	hint = "fg=green,bold"
	highlight = "fg=yellow"
	backdrop = "dim"

	[patterns]
	enabled_builtin = "all"
	custom = ["JIRA-[0-9]+"]

	[action]
	command = ":copy:"

# Command Line Flags

	-config string
	    Path to a config file
	-capture string
	    Capture file to read, "-" for stdin (default from config)
	-d  Enable debug mode with detailed logging
	-serve
	    Serve msgpack requests on stdin/stdout
	-print
	    Print one hinted frame and exit
	-plain
	    Strip styles from -print output
	-no-reuse
	    Give repeated matches their own hints
	-layout string
	    Keyboard layout overriding the config
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/jsfr/zellij-fingers/internal/cli"
	"github.com/jsfr/zellij-fingers/internal/logger"
	"github.com/jsfr/zellij-fingers/internal/session"
	"github.com/jsfr/zellij-fingers/internal/utils"
	"github.com/jsfr/zellij-fingers/pkg/action"
	"github.com/jsfr/zellij-fingers/pkg/capture"
	"github.com/jsfr/zellij-fingers/pkg/config"
	"github.com/jsfr/zellij-fingers/pkg/hinter"
	"github.com/jsfr/zellij-fingers/pkg/render"
	"github.com/jsfr/zellij-fingers/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "fingers"
	gh      = "https://github.com/jsfr/zellij-fingers"
)

// sigHandler cancels the returned context on interrupt or SIGTERM.
func sigHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// main loads the config and capture, then hands over to the picker, the printer
// or the IPC server.
func main() {
	ctx, stop := sigHandler()
	defer stop()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file")
	capturePath := flag.String("capture", "", "Capture file to read, \"-\" for stdin")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serveMode := flag.Bool("serve", false, "Serve msgpack requests on stdin/stdout")
	printMode := flag.Bool("print", false, "Print one hinted frame and exit")
	plain := flag.Bool("plain", false, "Strip styles from -print output")
	noReuse := flag.Bool("no-reuse", false, "Give repeated matches their own hints")
	layout := flag.String("layout", "", "Keyboard layout overriding the config: "+strings.Join(config.LayoutNames(), ", "))

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)
	if *debugMode {
		for k, v := range utils.NewPathResolver().GetRuntimeInfo() {
			log.Debug("runtime", k, v)
		}
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(loadedFrom))

	if *layout != "" {
		cfg.Hints.KeyboardLayout = *layout
	}
	if *noReuse {
		cfg.Hints.ReuseHints = false
	}

	lines, err := readCapture(*capturePath, cfg)
	if err != nil {
		log.Fatalf("Failed to read capture: %v", err)
	}

	width, height := screenSize(lines)
	h, err := hinter.New(lines, width, cfg.HinterOptions())
	if err != nil {
		log.Fatalf("Failed to start hinting: %v", err)
	}
	log.Debugf("Hinting %d lines at %dx%d with %d hints", len(lines), width, height, h.HintCount())

	sess := session.New()
	sess.Start(h)

	act := cfg.ResolveAction()
	if c, ok := act.(*action.Copy); ok {
		c.Fallback = os.Stderr
	}

	switch {
	case *printMode:
		frame := render.Frame(h, "", nil, height, width)
		if *plain {
			frame = ansi.Strip(frame)
		}
		fmt.Println(frame)

	case *serveMode:
		if *capturePath == "-" {
			log.Fatal("-serve reads requests from stdin; pass the capture as a file")
		}
		srv := server.NewServer(sess, os.Stdin, os.Stdout)
		srv.OnSelect(func(ctx context.Context, text string) error {
			return runAction(ctx, act, text)
		})
		if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("Server error: %v", err)
		}

	default:
		var opts []tea.ProgramOption
		if *capturePath == "-" {
			opts = append(opts, tea.WithInputTTY())
		}
		outcome, err := cli.Run(ctx, sess, opts...)
		if err != nil {
			log.Fatalf("Picker error: %v", err)
		}
		if outcome.Text == "" {
			return
		}
		if err := runAction(ctx, act, outcome.Text); err != nil {
			log.Fatalf("Action failed: %v", err)
		}
	}
}

func readCapture(path string, cfg *config.Config) ([]string, error) {
	if path == "-" {
		return capture.Read(os.Stdin)
	}
	if path == "" {
		path = cfg.CaptureFile()
	}
	return capture.ReadFile(path)
}

// screenSize prefers the terminal size, falling back to the capture itself.
func screenSize(lines []string) (int, int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w, h
		}
	}
	return capture.Width(lines), len(lines)
}

func runAction(ctx context.Context, act action.Action, text string) error {
	if act == nil {
		log.Debug("No action configured")
		return nil
	}
	log.Debugf("Running %s on %q", act, text)
	return act.Execute(ctx, action.ExecRunner{}, text)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ " + AppName + " ] Copy anything on screen by typing a hint")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
