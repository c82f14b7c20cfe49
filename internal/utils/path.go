package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// dataPatterns are the files that make a directory usable as a teny data dir.
var dataPatterns = []string{"*.json", "*.txt", "*.db", "*.msgpack"}

// PathResolver resolves data and config locations for the teny binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver anchored at the running executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      platformConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", execPath, pr.configDir)
	return pr, nil
}

func platformConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "teny")
		}
		return filepath.Join(homeDir, ".config", "teny")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "teny")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "teny")
	default:
		return filepath.Join(homeDir, ".config", "teny")
	}
}

// dataDirCandidates lists where a data dir may live, most specific first:
// the path itself when absolute, next to the executable, under the working
// dir, then the usual data/ folders.
func (pr *PathResolver) dataDirCandidates(userPath string) []string {
	var candidates []string
	if filepath.IsAbs(userPath) {
		candidates = append(candidates, userPath)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, userPath))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// GetDataDir returns the first candidate holding lexicon or model files. When
// none does, the executable-relative path is returned for error reporting.
func (pr *PathResolver) GetDataDir(userPath string) string {
	for _, path := range pr.dataDirCandidates(userPath) {
		if IsDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}
	return filepath.Join(pr.executableDir, userPath)
}

// IsDataDir reports whether path is a directory with at least one data file.
func IsDataDir(path string) bool {
	return len(DataFiles(path)) > 0
}

// DataFiles lists the data files directly inside dir, in pattern order.
func DataFiles(dir string) []string {
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return nil
	}
	var out []string
	for _, p := range dataPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// ResolveFile finds a data file given on the command line or in config. Absolute
// paths and paths that exist from the working dir are returned untouched;
// otherwise the executable dir and config data dir are searched.
func (pr *PathResolver) ResolveFile(path string) string {
	if path == "" || filepath.IsAbs(path) || IsFile(path) {
		return path
	}
	if found, err := FindFileInPaths(path, []string{
		pr.executableDir,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(pr.configDir, "data"),
	}); err == nil {
		return found
	}
	return path
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetExecutableDir returns the directory containing the executable
func (pr *PathResolver) GetExecutableDir() string {
	return pr.executableDir
}

// FindFileInPaths searches for a file in multiple possible locations
func FindFileInPaths(filename string, searchPaths []string) (string, error) {
	for _, searchPath := range searchPaths {
		fullPath := filepath.Join(searchPath, filename)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath, nil
		}
	}
	return "", os.ErrNotExist
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()
	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
