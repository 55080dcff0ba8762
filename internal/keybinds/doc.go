/*
Package keybinds provides customizable keyboard binding management.

# Overview

The keybinds package implements a hierarchical, context-aware keyboard
binding system that allows users to customize all keybindings through
configuration files.

# Key Concepts

Context Hierarchy:
  - Global: Bindings available everywhere
  - Library: The library browser (normal mode)
  - Variations: The variation draft editor
  - Specific: Compare, filter, modal, confirm contexts

Keys shadow from specific → global. If a key is bound in a specific
context, it overrides the global binding.

Action System:
  - Actions are constants (ActionQuit, ActionProposeVariations, etc.)
  - Keys map to actions within contexts
  - Same action can have different keys in different contexts

# Components

Registry (registry.go):
  - Central storage for keybindings
  - Context-aware key matching
  - Multi-key sequence support (e.g., "gg" for go-to-top)

Validator (validator.go):
  - Validates keybinding configurations
  - Detects conflicts and duplicates
  - Warns about shadowing
  - Protects reserved keys

Defaults (defaults.go):
  - Default keybinding configuration
  - Covers all contexts and actions
  - Used when no custom config exists

# Configuration File Format

Keybindings are stored in JSONC format (JSON with comments):

	{
	  // swap view toggle and filter
	  "library": {
	    "F": "toggle_view_mode",
	    "f": "open_filter"
	  },
	  "variations": {
	    "x": "remove_draft"
	  }
	}

The file lives at ~/.promptstudio/keybinds.jsonc; a keybinds.jsonc in
the working directory takes precedence.

# Reserved Keys

Certain keys are reserved for core functionality:
  - ctrl+c: Interrupt/quit (global)
  - esc: Close modal/cancel (context-dependent)
  - enter: Confirm/commit (context-dependent)

Rebinding reserved keys generates warnings.

# Validation

The validator checks for:
  - Duplicate bindings in same context
  - Unknown action names
  - Shadowing (warnings, not errors)
  - Reserved key rebindings (warnings)

# Example Usage

	// Create registry with defaults
	registry := NewDefaultRegistry()

	// Override from user config
	if err := LoadAndApply(registry, config.GetKeybindsFilePath()); err != nil {
		return err
	}

	// Match keys during runtime
	if action, ok := registry.Match(ContextLibrary, "v"); ok {
		// Handle action
	}

# Thread Safety

The Registry is safe for concurrent reads. Writes (Register,
RegisterMultiple) should be done during initialization.
*/
package keybinds
