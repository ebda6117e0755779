// Package generate talks to the external content-generation service that
// drafts destination content from a name.
package generate

import (
	"context"
	"fmt"
	"net/http"

	"trailhead/pkg/client"
	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/model"
)

const generatePath = "/v1/generate"

type Client struct {
	http   *client.HttpClient
	apiKey string
	cfg    *config.Config
}

// NewClient returns nil when no generation service is configured; the
// service layer treats a nil generator as unavailable.
func NewClient(cfg *config.Config) *Client {
	if cfg.GenerateServiceURL == "" {
		return nil
	}
	return &Client{
		http:   client.NewHttpClient(cfg.GenerateServiceURL, cfg.GenerateRequestTimeout),
		apiKey: cfg.GenerateServiceAPIKey,
		cfg:    cfg,
	}
}

type generateRequest struct {
	Name string `json:"name"`
}

func (c *Client) GenerateContent(ctx context.Context, name string) (*model.GeneratedContent, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-API-Key"] = c.apiKey
	}

	resp, err := c.http.POSTWithHeaders(ctx, generatePath, generateRequest{Name: name}, headers)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperrors.Unavailable("Content generation")
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, apperrors.Unavailable("Content generation")
	default:
		return nil, fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var gen model.GeneratedContent
	if err := resp.DecodeJSON(&gen); err != nil {
		return nil, fmt.Errorf("failed to decode generated content: %w", err)
	}

	return &gen, nil
}
