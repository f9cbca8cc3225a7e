// ABOUTME: Standard filesystem paths for texdi settings
// ABOUTME: Resolves ~/.texdi/ for global and .texdi/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	dirName    = ".texdi"
	configName = "config.yaml"
)

// HomeDir returns the user's home directory, or "." when it cannot be
// determined.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// GlobalDir returns the user-global config directory under home.
func GlobalDir(home string) string {
	return filepath.Join(home, dirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, dirName)
}

// GlobalConfigFile returns the path to the global settings file.
func GlobalConfigFile(home string) string {
	return filepath.Join(GlobalDir(home), configName)
}

// ProjectConfigFile returns the path to the project-local settings file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configName)
}
