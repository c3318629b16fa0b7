package config

import (
	"os"
	"path/filepath"
)

// Candidates lists the files Discover looks at, in order.
func Candidates(workDir, homeDir string) []string {
	var paths []string
	if workDir != "" {
		for _, name := range []string{"badbasic.toml", "badbasic.yaml", "badbasic.yml"} {
			paths = append(paths, filepath.Join(workDir, name))
		}
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".badbasic", "config.toml"))
	}
	return paths
}

// Discover loads the explicit path when given. Otherwise it loads the
// first existing candidate from the working and home directories, falling
// back to defaults. The returned path is empty when defaults are used.
func Discover(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		if err != nil {
			return nil, "", err
		}
		return cfg, explicit, nil
	}
	wd, _ := os.Getwd()
	home, _ := os.UserHomeDir()
	return DiscoverIn(Candidates(wd, home))
}

// DiscoverIn loads the first of paths that exists.
func DiscoverIn(paths []string) (*Config, string, error) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			cfg, err := Load(p)
			if err != nil {
				return nil, "", err
			}
			return cfg, p, nil
		}
	}
	return Default(), "", nil
}
