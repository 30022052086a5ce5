/*
Package config manages the TOML (or YAML) config of the hint overlay.
*/
package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rivo/uniseg"

	"github.com/jsfr/zellij-fingers/internal/utils"
	"github.com/jsfr/zellij-fingers/pkg/action"
	"github.com/jsfr/zellij-fingers/pkg/capture"
	"github.com/jsfr/zellij-fingers/pkg/format"
	"github.com/jsfr/zellij-fingers/pkg/hinter"
	"github.com/jsfr/zellij-fingers/pkg/pattern"
	"github.com/jsfr/zellij-fingers/pkg/style"
)

// DefaultFileName is the config file created in the config dir.
const DefaultFileName = "config.toml"

// MaxCustomPatterns bounds the pattern_N keys read from host config.
const MaxCustomPatterns = 20

// Config holds the entire config structure
type Config struct {
	Hints    HintsConfig    `toml:"hints" yaml:"hints"`
	Styles   StylesConfig   `toml:"styles" yaml:"styles"`
	Patterns PatternsConfig `toml:"patterns" yaml:"patterns"`
	Action   ActionConfig   `toml:"action" yaml:"action"`
	Capture  CaptureConfig  `toml:"capture" yaml:"capture"`
}

// HintsConfig selects the hint alphabet and placement.
type HintsConfig struct {
	KeyboardLayout string `toml:"keyboard_layout" yaml:"keyboard_layout"`
	// Alphabet overrides the layout when set.
	Alphabet     string `toml:"alphabet" yaml:"alphabet"`
	HintPosition string `toml:"hint_position" yaml:"hint_position"`
	ReuseHints   bool   `toml:"reuse_hints" yaml:"reuse_hints"`
}

// StylesConfig holds style specs such as "fg=green,bold".
type StylesConfig struct {
	Hint              string `toml:"hint" yaml:"hint"`
	Highlight         string `toml:"highlight" yaml:"highlight"`
	SelectedHint      string `toml:"selected_hint" yaml:"selected_hint"`
	SelectedHighlight string `toml:"selected_highlight" yaml:"selected_highlight"`
	Backdrop          string `toml:"backdrop" yaml:"backdrop"`
}

// PatternsConfig picks builtin patterns by name ("all" or a comma list) and adds
// custom ones after them.
type PatternsConfig struct {
	EnabledBuiltin string   `toml:"enabled_builtin" yaml:"enabled_builtin"`
	Custom         []string `toml:"custom" yaml:"custom"`
}

// ActionConfig holds the action run on the selection.
type ActionConfig struct {
	Command          string `toml:"command" yaml:"command"`
	ClipboardCommand string `toml:"clipboard_command" yaml:"clipboard_command"`
	OpenCommand      string `toml:"open_command" yaml:"open_command"`
}

// CaptureConfig locates the pane dump.
type CaptureConfig struct {
	File string `toml:"file" yaml:"file"`
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	return utils.NewPathResolver().GetConfigPath(DefaultFileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/fingers/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Hints: HintsConfig{
			KeyboardLayout: DefaultLayout,
			HintPosition:   format.Left.String(),
			ReuseHints:     true,
		},
		Styles: StylesConfig{
			Hint:              "fg=green,bold",
			Highlight:         "fg=yellow",
			SelectedHint:      "fg=blue,bold",
			SelectedHighlight: "fg=blue",
			Backdrop:          "dim",
		},
		Patterns: PatternsConfig{
			EnabledBuiltin: "all",
		},
		Action: ActionConfig{
			Command: action.CopyKeyword,
		},
		Capture: CaptureConfig{
			File: capture.DefaultFile,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML or YAML file. Values missing from the file keep
// their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadConfigFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps whatever well typed values a broken file still has
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "hints"); ok {
		extractHintsConfig(section, &config.Hints)
	}
	if section, ok := utils.ExtractSection(tempConfig, "styles"); ok {
		extractStylesConfig(section, &config.Styles)
	}
	if section, ok := utils.ExtractSection(tempConfig, "patterns"); ok {
		extractPatternsConfig(section, &config.Patterns)
	}
	if section, ok := utils.ExtractSection(tempConfig, "action"); ok {
		extractActionConfig(section, &config.Action)
	}
	if section, ok := utils.ExtractSection(tempConfig, "capture"); ok {
		if val, ok := utils.ExtractString(section, "file"); ok {
			config.Capture.File = val
		}
	}
	return config, nil
}

func extractHintsConfig(data map[string]any, hints *HintsConfig) {
	if val, ok := utils.ExtractString(data, "keyboard_layout"); ok {
		hints.KeyboardLayout = val
	}
	if val, ok := utils.ExtractString(data, "alphabet"); ok {
		hints.Alphabet = val
	}
	if val, ok := utils.ExtractString(data, "hint_position"); ok {
		hints.HintPosition = val
	}
	if val, ok := utils.ExtractBool(data, "reuse_hints"); ok {
		hints.ReuseHints = val
	}
}

func extractStylesConfig(data map[string]any, styles *StylesConfig) {
	for key, field := range map[string]*string{
		"hint":               &styles.Hint,
		"highlight":          &styles.Highlight,
		"selected_hint":      &styles.SelectedHint,
		"selected_highlight": &styles.SelectedHighlight,
		"backdrop":           &styles.Backdrop,
	} {
		if val, ok := utils.ExtractString(data, key); ok {
			*field = val
		}
	}
}

func extractPatternsConfig(data map[string]any, patterns *PatternsConfig) {
	if val, ok := utils.ExtractString(data, "enabled_builtin"); ok {
		patterns.EnabledBuiltin = val
	}
	if val, ok := utils.ExtractStringSlice(data, "custom"); ok {
		patterns.Custom = val
	}
}

func extractActionConfig(data map[string]any, act *ActionConfig) {
	if val, ok := utils.ExtractString(data, "command"); ok {
		act.Command = val
	}
	if val, ok := utils.ExtractString(data, "clipboard_command"); ok {
		act.ClipboardCommand = val
	}
	if val, ok := utils.ExtractString(data, "open_command"); ok {
		act.OpenCommand = val
	}
}

// FromMap builds a config from flat host key-value settings. Unlike
// DefaultConfig there is no backdrop unless one is given.
func FromMap(settings map[string]string) *Config {
	config := DefaultConfig()
	config.Styles.Backdrop = ""

	if val, ok := settings["keyboard_layout"]; ok {
		config.Hints.KeyboardLayout = val
	}
	if val, ok := settings["alphabet"]; ok {
		config.Hints.Alphabet = val
	}
	if val, ok := settings["hint_position"]; ok {
		config.Hints.HintPosition = val
	}
	if val, ok := settings["reuse_hints"]; ok {
		if b, err := strconv.ParseBool(val); err == nil {
			config.Hints.ReuseHints = b
		} else {
			log.Warnf("Invalid reuse_hints value %q: %v", val, err)
		}
	}

	for key, field := range map[string]*string{
		"hint_style":               &config.Styles.Hint,
		"highlight_style":          &config.Styles.Highlight,
		"selected_hint_style":      &config.Styles.SelectedHint,
		"selected_highlight_style": &config.Styles.SelectedHighlight,
		"backdrop_style":           &config.Styles.Backdrop,
		"enabled_builtin_patterns": &config.Patterns.EnabledBuiltin,
		"action":                   &config.Action.Command,
		"clipboard_command":        &config.Action.ClipboardCommand,
		"open_command":             &config.Action.OpenCommand,
		"capture_file":             &config.Capture.File,
	} {
		if val, ok := settings[key]; ok {
			*field = val
		}
	}

	for i := 0; i < MaxCustomPatterns; i++ {
		if p, ok := settings["pattern_"+strconv.Itoa(i)]; ok {
			config.Patterns.Custom = append(config.Patterns.Custom, p)
		}
	}
	return config
}

// SaveConfig saves into a TOML or YAML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveConfigFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// Alphabet splits the configured alphabet into graphemes, dropping repeats.
func (c *Config) Alphabet() []string {
	source := c.Hints.Alphabet
	if source == "" {
		layout := c.Hints.KeyboardLayout
		if layout == "" {
			layout = DefaultLayout
		}
		source = AlphabetFor(layout)
	}

	var symbols []string
	seen := make(map[string]bool)
	g := uniseg.NewGraphemes(source)
	for g.Next() {
		symbol := g.Str()
		if strings.TrimSpace(symbol) == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	if len(symbols) < len([]rune(source)) {
		log.Debugf("Alphabet %q reduced to %d symbols", source, len(symbols))
	}
	return symbols
}

// EnabledPatterns returns the enabled builtins followed by the custom patterns.
func (c *Config) EnabledPatterns() []string {
	if enabled := strings.TrimSpace(c.Patterns.EnabledBuiltin); enabled != "all" {
		for _, name := range strings.Split(enabled, ",") {
			name = strings.TrimSpace(name)
			if _, ok := pattern.BuiltinPattern(name); name != "" && !ok {
				log.Warnf("Unknown builtin pattern %q, known: %s", name, strings.Join(pattern.BuiltinNames(), ", "))
			}
		}
	}
	patterns := pattern.Resolve(c.Patterns.EnabledBuiltin)
	return append(patterns, c.Patterns.Custom...)
}

// Formatter encodes the configured styles.
func (c *Config) Formatter() format.Formatter {
	return format.Formatter{
		HintStyle:              style.Format(c.Styles.Hint),
		HighlightStyle:         style.Format(c.Styles.Highlight),
		SelectedHintStyle:      style.Format(c.Styles.SelectedHint),
		SelectedHighlightStyle: style.Format(c.Styles.SelectedHighlight),
		BackdropStyle:          style.Format(c.Styles.Backdrop),
		Position:               format.ParsePosition(c.Hints.HintPosition),
	}
}

// HinterOptions returns the engine options for this config.
func (c *Config) HinterOptions() hinter.Options {
	return hinter.Options{
		Patterns:   c.EnabledPatterns(),
		Alphabet:   c.Alphabet(),
		Formatter:  c.Formatter(),
		ReuseHints: c.Hints.ReuseHints,
	}
}

// ResolveAction returns the configured action, nil when none is set.
func (c *Config) ResolveAction() action.Action {
	return action.Parse(c.Action.Command, c.Action.ClipboardCommand, c.Action.OpenCommand)
}

// CaptureFile returns the pane dump path.
func (c *Config) CaptureFile() string {
	if c.Capture.File == "" {
		return capture.DefaultFile
	}
	return c.Capture.File
}
