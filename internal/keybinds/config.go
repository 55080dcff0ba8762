package keybinds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// The override file may carry // comments; it is run through jsonc first.
type Config struct {
	Version    string                       `json:"version"`
	Global     map[string]string            `json:"global,omitempty"`
	Library    map[string]string            `json:"library,omitempty"`
	Variations map[string]string            `json:"variations,omitempty"`
	Compare    map[string]string            `json:"compare,omitempty"`
	Filter     map[string]string            `json:"filter,omitempty"`
	Modal      map[string]string            `json:"modal,omitempty"`
	TextInput  map[string]string            `json:"text_input,omitempty"`
	Confirm    map[string]string            `json:"confirm,omitempty"`
	Custom     map[string]map[string]string `json:"custom,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON/JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format in %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings.
func ApplyConfig(registry *Registry, config *Config) error {
	contextMappings := map[Context]map[string]string{
		ContextGlobal:     config.Global,
		ContextLibrary:    config.Library,
		ContextVariations: config.Variations,
		ContextCompare:    config.Compare,
		ContextFilter:     config.Filter,
		ContextModal:      config.Modal,
		ContextTextInput:  config.TextInput,
		ContextConfirm:    config.Confirm,
	}

	for context, bindings := range contextMappings {
		for key, actionStr := range bindings {
			registry.Register(context, key, Action(actionStr))
		}
	}

	for contextName, bindings := range config.Custom {
		context := Context(contextName)
		for key, actionStr := range bindings {
			registry.Register(context, key, Action(actionStr))
		}
	}

	return registry.Validate()
}

// LoadAndApply loads an override file and applies it on top of the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func LoadAndApply(registry *Registry, path string) error {
	config, err := LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return ApplyConfig(registry, config)
}
