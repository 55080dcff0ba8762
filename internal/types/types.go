package types

import "time"

// ViewMode controls how generated images are laid out in the image panel
type ViewMode string

const (
	ViewSingle ViewMode = "single" // One image at a time, full size
	ViewGrid   ViewMode = "grid"   // Thumbnail grid of the whole generation
)

// SelectionMode scopes what multi-select operations apply to
type SelectionMode string

const (
	SelectNone  SelectionMode = "none"   // No selection active
	SelectImage SelectionMode = "select" // Selecting individual images
	SelectBatch SelectionMode = "batch"  // Selecting images for batch operations
)

// DraftType classifies how far a variation strays from the base prompt
type DraftType string

const (
	DraftFaithful    DraftType = "faithful"
	DraftExploration DraftType = "exploration"
	DraftVariation   DraftType = "variation"
)

// Prompt is a saved prompt in the library
type Prompt struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GeneratedImage is one rendered image belonging to a prompt
type GeneratedImage struct {
	ID        string    `json:"id"`
	PromptID  string    `json:"promptId"`
	Seq       int       `json:"seq"` // Position within the prompt's image sequence
	FilePath  string    `json:"filePath"`
	Seed      int64     `json:"seed,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImageParams are the optional rendering parameters for a generation request.
// Zero values mean "backend default".
type ImageParams struct {
	ImageSize   string `json:"imageSize,omitempty" yaml:"imageSize,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty" yaml:"aspectRatio,omitempty"`
	Seed        int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	SafetyLevel string `json:"safetyLevel,omitempty" yaml:"safetyLevel,omitempty"`
}

// VariationDraft is a candidate prompt variation produced in phase one of the
// generation workflow. Drafts live only inside the variation workflow; they
// are never persisted to the library.
type VariationDraft struct {
	ID                    string    `json:"id"`
	Text                  string    `json:"text"`
	Mood                  string    `json:"mood,omitempty"`
	Type                  DraftType `json:"type"`
	RecommendedContextIDs []string  `json:"recommendedContextIds,omitempty"`
	ContextReasoning      string    `json:"contextReasoning,omitempty"`
}

// Clone returns a deep copy of the draft. RecommendedContextIDs is copied so
// the clone never aliases the source's slice.
func (d VariationDraft) Clone() VariationDraft {
	out := d
	if d.RecommendedContextIDs != nil {
		out.RecommendedContextIDs = make([]string, len(d.RecommendedContextIDs))
		copy(out.RecommendedContextIDs, d.RecommendedContextIDs)
	}
	return out
}

// PendingGeneration is a placeholder for an image request still in flight,
// keyed by the client-chosen request id.
type PendingGeneration struct {
	Title string `json:"title"`
	Count int    `json:"count"` // Number of skeleton entries to render
}

// Session represents ephemeral session state
type Session struct {
	ActiveProfile string   `json:"activeProfile,omitempty"`
	ViewMode      ViewMode `json:"viewMode,omitempty"`
	LastPromptID  string   `json:"lastPromptId,omitempty"`
}

// Profile holds per-environment backend settings
type Profile struct {
	Name          string      `json:"name"`
	BackendURL    string      `json:"backendUrl"`
	APIKey        string      `json:"apiKey,omitempty"`
	OutputDir     string      `json:"outputDir,omitempty"`
	DefaultParams ImageParams `json:"defaultParams,omitempty"`
	ImagesPerRun  int         `json:"imagesPerRun,omitempty"`
}
