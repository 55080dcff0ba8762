/*
Package types defines core data structures used throughout PromptStudio.

# Overview

The types package provides shared type definitions for:
  - Prompts and generated images (the library entities)
  - Variation drafts (the two-phase generation workflow)
  - Image rendering parameters
  - Sessions and profiles
  - In-flight generation placeholders

# Library Entities

Prompt:
  - A saved prompt with title, text and tags
  - Owns an ordered sequence of generated images

GeneratedImage:
  - One rendered image for a prompt
  - Seq is the position within the prompt's image sequence
  - FilePath points into the profile's output directory

# Workflow Entities

VariationDraft:
  - A candidate prompt variation proposed by the backend
  - Carries per-draft recommended context image ids and the backend's
    reasoning for recommending them
  - Exists only inside the variation workflow; committed drafts become
    image requests, never library rows

ImageParams:
  - Optional rendering parameters (size, aspect ratio, seed, safety level)
  - Zero values mean "backend default"

PendingGeneration:
  - Placeholder for an image request still in flight
  - Keyed by the client-chosen request id so results and failures can be
    matched back to their skeleton entries

# Configuration

Profile:
  - Per-environment backend settings
  - Backend URL, API key, output directory
  - Default image parameters and images-per-run count

Session:
  - Ephemeral state restored on startup (active profile, view mode,
    last focused prompt)

# Field Tags

All persisted types use JSON tags; ImageParams additionally carries YAML tags
for the CLI's structured output. The `omitempty` tag keeps serialized data
clean.
*/
package types
