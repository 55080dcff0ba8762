package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studiowebux/promptstudio/internal/config"
	"github.com/studiowebux/promptstudio/internal/types"
)

// Manager handles session and profile management
type Manager struct {
	session  *types.Session
	profiles []types.Profile
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		session:  &types.Session{ViewMode: types.ViewSingle},
		profiles: []types.Profile{},
	}
}

// Load loads session and profiles from disk
func (m *Manager) Load() error {
	if err := m.LoadSession(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := m.LoadProfiles(); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	return nil
}

// LoadSession loads the session file
func (m *Manager) LoadSession() error {
	sessionPath := config.GetSessionFilePath()

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		// If file doesn't exist, use default session
		m.session = &types.Session{ViewMode: types.ViewSingle}
		return nil
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.ViewMode == "" {
		session.ViewMode = types.ViewSingle
	}

	m.session = &session
	return nil
}

// SaveSession saves the session to disk
func (m *Manager) SaveSession() error {
	sessionPath := config.GetSessionFilePath()

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sessionPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// LoadProfiles loads the profiles file
func (m *Manager) LoadProfiles() error {
	profilesPath := config.GetProfilesFilePath()

	data, err := os.ReadFile(profilesPath)
	if err != nil {
		// If file doesn't exist, create default profile
		m.profiles = []types.Profile{defaultProfile()}
		return nil
	}

	var profiles []types.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}

	for i := range profiles {
		if profiles[i].ImagesPerRun <= 0 {
			profiles[i].ImagesPerRun = 4
		}
	}

	m.profiles = profiles
	return nil
}

// SaveProfiles saves the profiles to disk
func (m *Manager) SaveProfiles() error {
	profilesPath := config.GetProfilesFilePath()

	data, err := json.MarshalIndent(m.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(profilesPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	return nil
}

// GetSession returns the current session
func (m *Manager) GetSession() *types.Session {
	return m.session
}

// GetProfiles returns all profiles
func (m *Manager) GetProfiles() []types.Profile {
	return m.profiles
}

// GetActiveProfile returns the currently active profile
func (m *Manager) GetActiveProfile() *types.Profile {
	if m.session.ActiveProfile == "" {
		if len(m.profiles) > 0 {
			return &m.profiles[0]
		}
		fallback := defaultProfile()
		return &fallback
	}

	for i := range m.profiles {
		if m.profiles[i].Name == m.session.ActiveProfile {
			return &m.profiles[i]
		}
	}

	// If not found, return first profile
	if len(m.profiles) > 0 {
		return &m.profiles[0]
	}

	fallback := defaultProfile()
	return &fallback
}

// SetActiveProfile sets the active profile by name
func (m *Manager) SetActiveProfile(name string) error {
	found := false
	for _, profile := range m.profiles {
		if profile.Name == name {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("profile not found: %s", name)
	}

	// Switching profiles drops the prompt focus; ids are per-backend
	m.session.LastPromptID = ""

	m.session.ActiveProfile = name
	return m.SaveSession()
}

// AddProfile adds a new profile
func (m *Manager) AddProfile(profile types.Profile) error {
	for _, p := range m.profiles {
		if p.Name == profile.Name {
			return fmt.Errorf("profile already exists: %s", profile.Name)
		}
	}

	if profile.ImagesPerRun <= 0 {
		profile.ImagesPerRun = 4
	}

	m.profiles = append(m.profiles, profile)
	return m.SaveProfiles()
}

// UpdateProfile updates an existing profile
func (m *Manager) UpdateProfile(name string, profile types.Profile) error {
	for i := range m.profiles {
		if m.profiles[i].Name == name {
			// Preserve the name if it wasn't changed
			if profile.Name == "" {
				profile.Name = name
			}
			m.profiles[i] = profile
			return m.SaveProfiles()
		}
	}

	return fmt.Errorf("profile not found: %s", name)
}

// DeleteProfile deletes a profile by name
func (m *Manager) DeleteProfile(name string) error {
	for i := range m.profiles {
		if m.profiles[i].Name == name {
			m.profiles = append(m.profiles[:i], m.profiles[i+1:]...)
			return m.SaveProfiles()
		}
	}

	return fmt.Errorf("profile not found: %s", name)
}

// SetViewMode persists the preferred image layout
func (m *Manager) SetViewMode(mode types.ViewMode) error {
	m.session.ViewMode = mode
	return m.SaveSession()
}

// SetLastPrompt persists the focused prompt so the next launch restores it
func (m *Manager) SetLastPrompt(promptID string) error {
	m.session.LastPromptID = promptID
	return m.SaveSession()
}

func defaultProfile() types.Profile {
	return types.Profile{
		Name:         "Default",
		BackendURL:   "http://localhost:8787",
		OutputDir:    "images",
		ImagesPerRun: 4,
	}
}
