package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config and data directories.
const AppName = "wordchain"

// PathResolver finds word lists and config files relative to the binary, the
// working directory and the user config directory.
type PathResolver struct {
	executableDir string
	workDir       string
	configDir     string
}

// NewPathResolver inspects the running environment.
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}
	workDir, _ := os.Getwd()

	pr := &PathResolver{
		executableDir: execDir,
		workDir:       workDir,
		configDir:     ConfigDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, workDir=%s, configDir=%s", execDir, workDir, pr.configDir)
	return pr, nil
}

// ConfigDirFor returns the platform config directory under homeDir.
func ConfigDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, ".config", AppName)
	}
}

// ConfigDir returns the user config directory.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}

// Candidates lists, in order of preference, where name may live.
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var out []string
	if pr.workDir != "" {
		out = append(out, filepath.Join(pr.workDir, name))
	}
	out = append(out,
		filepath.Join(pr.executableDir, name),
		filepath.Join(pr.executableDir, "data", name),
		filepath.Join(filepath.Dir(pr.executableDir), "data", name),
		filepath.Join(pr.configDir, "data", name),
	)
	return out
}

// ResolveDataFile returns the first existing candidate for name. When none
// exists it returns os.ErrNotExist along with the first candidate for reporting.
func (pr *PathResolver) ResolveDataFile(name string) (string, error) {
	candidates := pr.Candidates(name)
	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found data file: %s", path)
			return path, nil
		}
		log.Debugf("Data file candidate missing: %s", path)
	}
	return candidates[0], os.ErrNotExist
}
