// Package segment is the typed boundary to the external segmentation
// oracle. It performs no geometric computation: it ships canonical vertices
// out and validated region lists back, nothing else.
package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Adapter errors. ErrBackendUnavailable covers transport-level failures and
// is retryable by re-issuing the upload; ErrProtocolViolation covers
// well-transported but malformed responses and is not.
var (
	ErrBackendUnavailable = errors.New("segmentation backend unreachable")
	ErrProtocolViolation  = errors.New("malformed segmentation response")
)

// SegmentationError is a semantic failure reported by the oracle itself.
// Its message is surfaced to the user verbatim.
type SegmentationError struct {
	Message string
}

func (e *SegmentationError) Error() string {
	return "segmentation failed: " + e.Message
}

// Client talks JSON over HTTP to the oracle.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the oracle at baseURL, e.g.
// "http://localhost:5000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Health probes the oracle's liveness endpoint. A nil error means uploads
// can be enabled. Errors wrap ErrBackendUnavailable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health probe returned %s", ErrBackendUnavailable, resp.Status)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("%w: decoding health probe: %v", ErrBackendUnavailable, err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("%w: oracle reports status %q", ErrBackendUnavailable, health.Status)
	}
	return nil
}

// Segment sends canonical vertices to the oracle and returns its regions.
// Results are never cached: the returned indices belong strictly to the
// request just sent.
func (c *Client) Segment(ctx context.Context, request Request) ([]Region, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding segmentation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/segment-advanced", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrBackendUnavailable, err)
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	if !parsed.Success {
		if parsed.Error == "" {
			return nil, fmt.Errorf("%w: failure with no error message", ErrProtocolViolation)
		}
		return nil, &SegmentationError{Message: parsed.Error}
	}

	if err := validateRegions(parsed.Regions); err != nil {
		return nil, err
	}
	return parsed.Regions, nil
}

// validateRegions rejects structurally incomplete region lists so a
// half-formed answer can never partially populate paint state.
func validateRegions(regions []Region) error {
	if len(regions) == 0 {
		return fmt.Errorf("%w: success with no regions", ErrProtocolViolation)
	}
	for i, r := range regions {
		if r.ID == "" {
			return fmt.Errorf("%w: region %d has no id", ErrProtocolViolation, i)
		}
		if r.VertexIndices == nil {
			return fmt.Errorf("%w: region %q has no vertex_indices", ErrProtocolViolation, r.ID)
		}
	}
	return nil
}
