package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "fingers"

// PathResolver picks where the config file lives
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver resolves the platform config directory
func NewPathResolver() *PathResolver {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("No home directory (%v), falling back to %s", err, os.TempDir())
		home = os.TempDir()
	}

	execDir, err := GetExecutableDir()
	if err != nil {
		log.Debugf("Executable directory unknown: %v", err)
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       home,
		configDir:     configDirFor(runtime.GOOS, home, os.Getenv),
	}
	log.Debugf("Config dir %s (binary in %s)", pr.configDir, execDir)
	return pr
}

// configDirFor returns the config directory for goos
func configDirFor(goos, homeDir string, getenv func(string) string) string {
	switch goos {
	case "darwin", "linux", "freebsd", "openbsd", "netbsd":
		if configHome := getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// candidates lists the directories tried for the config file, best first.
func (pr *PathResolver) candidates() []string {
	dirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+AppName),
		filepath.Join(os.TempDir(), AppName),
	}
	if pr.executableDir != "" {
		dirs = append(dirs, pr.executableDir)
	}
	return dirs
}

// GetConfigPath returns where filename should be read from and written to. The
// first writable candidate directory wins; read-only systems fall back to
// ~/.fingers, the temp dir, or the binary's own directory.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	for i, dir := range pr.candidates() {
		if !writable(dir) {
			continue
		}
		path := filepath.Join(dir, filename)
		if i > 0 {
			log.Warnf("Config dir %s not writable, using %s", pr.configDir, path)
		}
		return path, nil
	}
	return "", os.ErrPermission
}

// writable creates dir when missing and probes it with a scratch file
func writable(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("mkdir %s: %v", dir, err)
		return false
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		log.Debugf("%s is read-only: %v", dir, err)
		return false
	}
	probe.Close()
	os.Remove(probe.Name())
	return true
}

// GetRuntimeInfo reports the paths and environment relevant to config lookup,
// for debug logs
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()

	info := map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    cwd,
		"home_dir":       pr.homeDir,
		"config_dir":     pr.configDir,
		"os":             runtime.GOOS + "/" + runtime.GOARCH,
	}
	for _, name := range []string{"XDG_CONFIG_HOME", "APPDATA", "ZELLIJ", "ZELLIJ_SESSION_NAME"} {
		if value, ok := os.LookupEnv(name); ok {
			info["env_"+strings.ToLower(name)] = value
		}
	}
	return info
}
