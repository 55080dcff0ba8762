package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/promptstudio/internal/types"
)

// Client talks to the generation backend: variation proposals over HTTP and
// image rendering over HTTP with progress streamed over WebSocket.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a backend client for the given profile
func NewClient(profile *types.Profile) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(profile.BackendURL, "/"),
		apiKey:  profile.APIKey,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// VariationRequest is phase one of the generation workflow: ask the backend
// to draft prompt variations from a base prompt and the context pool.
type VariationRequest struct {
	BasePrompt      string   `json:"basePrompt"`
	ContextImageIDs []string `json:"contextImageIds,omitempty"`
	Count           int      `json:"count,omitempty"`
}

type variationResponse struct {
	Variations []types.VariationDraft `json:"variations"`
}

// ProposeVariations requests draft variations for a base prompt. Each
// returned draft gets a client-side id so the editing workflow can address
// it before anything is persisted.
func (c *Client) ProposeVariations(ctx context.Context, req VariationRequest) ([]types.VariationDraft, error) {
	body, err := c.postJSON(ctx, "/v1/variations", req)
	if err != nil {
		return nil, err
	}

	var resp variationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse variation response: %w", err)
	}

	for i := range resp.Variations {
		if resp.Variations[i].ID == "" {
			resp.Variations[i].ID = uuid.NewString()
		}
	}

	return resp.Variations, nil
}

// ImageRequest is one render submission
type ImageRequest struct {
	RequestID       string            `json:"requestId"`
	Prompt          string            `json:"prompt"`
	Params          types.ImageParams `json:"params,omitempty"`
	ContextImageIDs []string          `json:"contextImageIds,omitempty"`
}

type imageResponse struct {
	ID        string `json:"id"`
	Seed      int64  `json:"seed"`
	ImageData string `json:"imageData"` // base64-encoded PNG
}

// ImageResult is one rendered image written to disk
type ImageResult struct {
	RequestID string
	ID        string
	Seed      int64
	FilePath  string
}

// GenerateImages submits count renders of prompt in parallel and writes each
// returned image into outputDir. One failed render fails the whole batch;
// partial results are discarded by the caller.
func (c *Client) GenerateImages(ctx context.Context, prompt string, params types.ImageParams, contextIDs []string, count int, outputDir string) ([]ImageResult, error) {
	if count <= 0 {
		count = 1
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]ImageResult, count)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			req := ImageRequest{
				RequestID:       uuid.NewString(),
				Prompt:          prompt,
				Params:          params,
				ContextImageIDs: contextIDs,
			}

			body, err := c.postJSON(ctx, "/v1/images", req)
			if err != nil {
				return err
			}

			var resp imageResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse image response: %w", err)
			}

			data, err := base64.StdEncoding.DecodeString(resp.ImageData)
			if err != nil {
				return fmt.Errorf("failed to decode image data: %w", err)
			}

			id := resp.ID
			if id == "" {
				id = req.RequestID
			}
			filePath := filepath.Join(outputDir, id+".png")
			if err := os.WriteFile(filePath, data, 0644); err != nil {
				return fmt.Errorf("failed to write image file: %w", err)
			}

			mu.Lock()
			results[i] = ImageResult{
				RequestID: req.RequestID,
				ID:        id,
				Seed:      resp.Seed,
				FilePath:  filePath,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// postJSON sends a JSON POST to path and returns the response body
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	return body, nil
}
