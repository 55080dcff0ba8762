package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

	if len(v.knownActions) == 0 {
		t.Error("Expected known actions to be initialized")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextLibrary,
				Key:     "q",
				Message: "key bound 2 times",
			},
			expected: "[conflict] q in context 'library': key bound 2 times",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Key:     "",
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextVariations,
				Key:     "?",
				Message: "shadows global binding",
			},
			expected: "[warning] ? in context 'variations': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidateRegistry_Defaults(t *testing.T) {
	v := NewValidator()
	r := NewDefaultRegistry()

	result := v.ValidateRegistry(r)

	if result.HasErrors() {
		t.Errorf("Default registry should validate cleanly, got: %s", result.String())
	}
}

func TestValidateRegistry_UnknownAction(t *testing.T) {
	v := NewValidator()
	r := NewDefaultRegistry()
	r.Register(ContextLibrary, "z", Action("does_not_exist"))

	result := v.ValidateRegistry(r)

	if !result.HasErrors() {
		t.Fatal("Expected error for unknown action")
	}
	if !strings.Contains(result.String(), "does_not_exist") {
		t.Errorf("Expected error to name the unknown action, got: %s", result.String())
	}
}

func TestValidateRegistry_ReservedKeyWarning(t *testing.T) {
	v := NewValidator()
	r := NewDefaultRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionCopyPrompt)

	result := v.ValidateRegistry(r)

	if !result.HasWarnings() {
		t.Error("Expected warning when ctrl+c is rebound")
	}
}

func TestValidateRegistry_ShadowingWarning(t *testing.T) {
	v := NewValidator()
	r := NewRegistry()
	r.Register(ContextGlobal, "?", ActionOpenHelp)
	r.Register(ContextLibrary, "?", ActionCopyPrompt)

	result := v.ValidateRegistry(r)

	if !result.HasWarnings() {
		t.Fatal("Expected shadowing warning")
	}
	if result.Warnings[0].Key != "?" {
		t.Errorf("Expected warning for key '?', got '%s'", result.Warnings[0].Key)
	}
}

func TestValidateConfig(t *testing.T) {
	v := NewValidator()

	config := &Config{
		Library: map[string]string{
			"z": "copy_prompt",
		},
	}

	result := v.ValidateConfig(config)
	if result.HasErrors() {
		t.Errorf("Valid config should not produce errors, got: %s", result.String())
	}

	bad := &Config{
		Library: map[string]string{
			"z": "not_a_real_action",
		},
	}

	result = v.ValidateConfig(bad)
	if !result.HasErrors() {
		t.Error("Expected errors for config with unknown action")
	}
}

func TestValidationResult_String(t *testing.T) {
	clean := &ValidationResult{Errors: []ValidationError{}, Warnings: []ValidationError{}}
	if clean.String() != "No issues found" {
		t.Errorf("Expected 'No issues found', got %q", clean.String())
	}

	mixed := &ValidationResult{
		Errors: []ValidationError{
			{Type: "invalid", Context: ContextLibrary, Key: "z", Message: "unknown action 'x'"},
		},
		Warnings: []ValidationError{
			{Type: "warning", Context: ContextGlobal, Key: "ctrl+c", Message: "reserved key rebound (may cause issues)"},
		},
	}

	s := mixed.String()
	if !strings.Contains(s, "Errors (1)") || !strings.Contains(s, "Warnings (1)") {
		t.Errorf("Expected error and warning sections, got: %s", s)
	}
}
