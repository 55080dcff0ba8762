package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]bool

	// knownActions is the set of actions that bindings may reference
	knownActions map[Action]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]bool{
			"ctrl+c": true, // Force quit should always work
		},
		knownActions: knownActionSet(),
	}
}

func knownActionSet() map[Action]bool {
	actions := []Action{
		ActionQuit, ActionQuitForce, ActionOpenHelp,
		ActionNavigateUp, ActionNavigateDown, ActionImagePrev, ActionImageNext,
		ActionGoToTop, ActionGoToBottom, ActionGoToTopPrepare, ActionPageUp, ActionPageDown,
		ActionToggleViewMode, ActionCycleLeftTab, ActionCycleRightTab, ActionOpenFilter,
		ActionToggleSelectMode, ActionToggleBatchMode, ActionToggleSelection,
		ActionSetComparePair, ActionClearCompare,
		ActionCopyPrompt, ActionDownloadImage, ActionAddToContext, ActionRemoveContext,
		ActionDeleteImage,
		ActionProposeVariations, ActionCommitWorkflow, ActionClearWorkflow,
		ActionTogglePreview, ActionEditDraft, ActionDuplicateDraft, ActionRemoveDraft,
		ActionTextSubmit, ActionTextCancel,
		ActionCloseModal, ActionConfirm, ActionCancel,
	}

	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkReservedKeys(registry, result)
	v.checkUnknownActions(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration before applying it
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		return &ValidationResult{
			Errors: []ValidationError{
				{Type: "invalid", Message: err.Error()},
			},
			Warnings: []ValidationError{},
		}
	}

	return v.ValidateRegistry(registry)
}

// checkReservedKeys warns when a reserved key is bound to something else
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if v.reservedKeys[key] && context == ContextGlobal && action != ActionQuitForce {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: "reserved key rebound (may cause issues)",
				})
			}
		}
	}
}

// checkUnknownActions flags bindings that reference actions the app does not
// implement. Custom contexts are exempt; they are matched by name at runtime.
func (v *Validator) checkUnknownActions(registry *Registry, result *ValidationResult) {
	for context, bindings := range registry.bindings {
		for key, action := range bindings {
			if !v.knownActions[action] {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("unknown action '%s'", action),
				})
			}
		}
	}
}

// checkShadowing warns when a context-specific binding hides a global binding
// bound to a different action
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings, ok := registry.bindings[ContextGlobal]
	if !ok {
		return
	}

	for context, bindings := range registry.bindings {
		if context == ContextGlobal {
			continue
		}
		for key, action := range bindings {
			if globalAction, bound := globalBindings[key]; bound && globalAction != action {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding '%s'", globalAction),
				})
			}
		}
	}
}
