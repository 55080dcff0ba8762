package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/promptstudio/internal/types"
)

// Manager owns the prompt library database: saved prompts and the generated
// images belonging to them.
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the library database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to library database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prompts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		text TEXT NOT NULL,
		tags TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS images (
		id TEXT PRIMARY KEY,
		prompt_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		file_path TEXT NOT NULL,
		seed INTEGER,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (prompt_id) REFERENCES prompts(id)
	);

	CREATE INDEX IF NOT EXISTS idx_prompts_created_at ON prompts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_images_prompt_id ON images(prompt_id);
	CREATE INDEX IF NOT EXISTS idx_images_seq ON images(prompt_id, seq);
	`

	_, err := m.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize library schema: %w", err)
	}

	return nil
}

// SavePrompt inserts a prompt. A missing id or timestamp is filled in.
func (m *Manager) SavePrompt(prompt *types.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.NewString()
	}
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = time.Now()
	}

	tagsJSON, err := json.Marshal(prompt.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO prompts (id, title, text, tags, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	timestampStr := prompt.CreatedAt.Local().Format("2006-01-02 15:04:05")

	_, err = m.db.Exec(query,
		prompt.ID,
		prompt.Title,
		prompt.Text,
		string(tagsJSON),
		timestampStr,
	)
	if err != nil {
		return fmt.Errorf("failed to save prompt: %w", err)
	}

	return nil
}

// UpdatePrompt rewrites a prompt's title, text and tags
func (m *Manager) UpdatePrompt(prompt *types.Prompt) error {
	tagsJSON, err := json.Marshal(prompt.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	result, err := m.db.Exec(
		"UPDATE prompts SET title = ?, text = ?, tags = ? WHERE id = ?",
		prompt.Title, prompt.Text, string(tagsJSON), prompt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("prompt not found: %s", prompt.ID)
	}

	return nil
}

// ListPrompts returns all prompts, newest first
func (m *Manager) ListPrompts() ([]types.Prompt, error) {
	query := `
		SELECT id, title, text, tags, created_at
		FROM prompts
		ORDER BY created_at DESC
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	return m.scanPrompts(rows)
}

// GetPrompt returns one prompt by id
func (m *Manager) GetPrompt(id string) (*types.Prompt, error) {
	query := `
		SELECT id, title, text, tags, created_at
		FROM prompts
		WHERE id = ?
	`

	rows, err := m.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	defer rows.Close()

	prompts, err := m.scanPrompts(rows)
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("prompt not found: %s", id)
	}

	return &prompts[0], nil
}

// DeletePrompt removes a prompt and all of its images
func (m *Manager) DeletePrompt(id string) error {
	if _, err := m.db.Exec("DELETE FROM images WHERE prompt_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete prompt images: %w", err)
	}
	if _, err := m.db.Exec("DELETE FROM prompts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return nil
}

func (m *Manager) scanPrompts(rows *sql.Rows) ([]types.Prompt, error) {
	var prompts []types.Prompt

	for rows.Next() {
		var id string
		var title string
		var text string
		var tagsJSON sql.NullString
		var timestamp string

		if err := rows.Scan(&id, &title, &text, &tagsJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}

		var tags []string
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &tags); err != nil {
				tags = nil
			}
		}

		prompts = append(prompts, types.Prompt{
			ID:        id,
			Title:     title,
			Text:      text,
			Tags:      tags,
			CreatedAt: parseTimestamp(timestamp),
		})
	}

	return prompts, rows.Err()
}

// SaveImage inserts a generated image record. A missing id or timestamp is
// filled in; a missing seq is assigned the next position in the prompt's
// sequence.
func (m *Manager) SaveImage(image *types.GeneratedImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	if image.Seq == 0 {
		var max sql.NullInt64
		err := m.db.QueryRow(
			"SELECT MAX(seq) FROM images WHERE prompt_id = ?", image.PromptID,
		).Scan(&max)
		if err != nil {
			return fmt.Errorf("failed to assign image sequence: %w", err)
		}
		image.Seq = int(max.Int64) + 1
	}

	query := `
		INSERT INTO images (id, prompt_id, seq, file_path, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	timestampStr := image.CreatedAt.Local().Format("2006-01-02 15:04:05")

	_, err := m.db.Exec(query,
		image.ID,
		image.PromptID,
		image.Seq,
		image.FilePath,
		image.Seed,
		timestampStr,
	)
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	return nil
}

// ListImages returns a prompt's images ordered by sequence position
func (m *Manager) ListImages(promptID string) ([]types.GeneratedImage, error) {
	query := `
		SELECT id, prompt_id, seq, file_path, seed, created_at
		FROM images
		WHERE prompt_id = ?
		ORDER BY seq ASC
	`

	rows, err := m.db.Query(query, promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	return m.scanImages(rows)
}

// GetImage returns one image by id
func (m *Manager) GetImage(id string) (*types.GeneratedImage, error) {
	query := `
		SELECT id, prompt_id, seq, file_path, seed, created_at
		FROM images
		WHERE id = ?
	`

	rows, err := m.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	defer rows.Close()

	images, err := m.scanImages(rows)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("image not found: %s", id)
	}

	return &images[0], nil
}

// DeleteImage removes one image record. The file on disk is left alone; the
// output directory doubles as an export folder and deletions there are the
// user's call.
func (m *Manager) DeleteImage(id string) error {
	_, err := m.db.Exec("DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// CountImages returns the number of images stored for a prompt
func (m *Manager) CountImages(promptID string) (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM images WHERE prompt_id = ?", promptID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

func (m *Manager) scanImages(rows *sql.Rows) ([]types.GeneratedImage, error) {
	var images []types.GeneratedImage

	for rows.Next() {
		var id string
		var promptID string
		var seq int
		var filePath string
		var seed sql.NullInt64
		var timestamp string

		if err := rows.Scan(&id, &promptID, &seq, &filePath, &seed, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}

		images = append(images, types.GeneratedImage{
			ID:        id,
			PromptID:  promptID,
			Seq:       seq,
			FilePath:  filePath,
			Seed:      seed.Int64,
			CreatedAt: parseTimestamp(timestamp),
		})
	}

	return images, rows.Err()
}

// Close closes the underlying database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Now()
		}
	}
	return parsed
}
