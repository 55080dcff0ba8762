package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.promptstudio)
	ConfigDir string

	// ImagesDir is the default directory for rendered images
	ImagesDir string

	// DatabasePath is the SQLite database file for the prompt library
	DatabasePath string

	// SessionFile is the session state file
	SessionFile string

	// ProfilesFile is the profiles configuration file
	ProfilesFile string

	// KeybindsFile is the optional keybinding override file
	KeybindsFile string
)

// Initialize sets up the configuration directories and files.
// It creates ~/.promptstudio/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".promptstudio")
	ImagesDir = filepath.Join(ConfigDir, "images")
	DatabasePath = filepath.Join(ConfigDir, "promptstudio.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	ProfilesFile = filepath.Join(ConfigDir, ".profiles.json")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")

	dirs := []string{ConfigDir, ImagesDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		defaultSession := []byte(`{"viewMode":"single"}`)
		if err := os.WriteFile(SessionFile, defaultSession, FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	if _, err := os.Stat(ProfilesFile); os.IsNotExist(err) {
		defaultProfiles := []byte(`[{"name":"Default","backendUrl":"http://localhost:8787","outputDir":"images","imagesPerRun":4}]`)
		if err := os.WriteFile(ProfilesFile, defaultProfiles, FilePermissions); err != nil {
			return fmt.Errorf("failed to create profiles file: %w", err)
		}
	}

	return nil
}

// GetOutputDirectory returns the image output directory for a profile.
// Falls back to the global images directory if the profile does not set one.
func GetOutputDirectory(profileOutputDir string) (string, error) {
	if profileOutputDir == "" {
		return ImagesDir, nil
	}

	// Expand tilde to home directory
	if strings.HasPrefix(profileOutputDir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		profileOutputDir = filepath.Join(homeDir, profileOutputDir[2:])
	}

	if filepath.IsAbs(profileOutputDir) {
		return profileOutputDir, nil
	}

	// Relative paths resolve against the config directory
	outdir := filepath.Join(ConfigDir, profileOutputDir)

	if err := os.MkdirAll(outdir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outdir, err)
	}

	return outdir, nil
}

// GetSessionFilePath returns the session file path (local or global)
func GetSessionFilePath() string {
	if _, err := os.Stat(".session.json"); err == nil {
		return ".session.json"
	}
	return SessionFile
}

// GetProfilesFilePath returns the profiles file path (local or global)
func GetProfilesFilePath() string {
	if _, err := os.Stat(".profiles.json"); err == nil {
		return ".profiles.json"
	}
	return ProfilesFile
}

// GetKeybindsFilePath returns the keybinds override path (local or global)
func GetKeybindsFilePath() string {
	if _, err := os.Stat("keybinds.jsonc"); err == nil {
		return "keybinds.jsonc"
	}
	return KeybindsFile
}
