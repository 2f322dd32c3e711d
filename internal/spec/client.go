package spec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/logging"
)

// maxDocumentSize caps the response body read from the registry. The
// largest published instance documents are well under 1 MB.
const maxDocumentSize = 8 << 20

// Client fetches specification instance documents from a miot-spec
// registry over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *logging.Logger
}

// NewClient creates a registry client from configuration.
//
// Parameters:
//   - cfg: Spec source settings (base URL, timeout, user agent)
//   - logger: Structured logger for fetch diagnostics
//
// Returns:
//   - *Client: Ready-to-use client
func NewClient(cfg config.SpecConfig, logger *logging.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger.With("component", "spec_client"),
	}
}

// Fetch retrieves and decodes the instance document for a device URN.
//
// The URN is normalized (version suffix stripped) before the request is
// built. A non-200 response is fatal for the invocation; there is no retry
// and no caching.
//
// Parameters:
//   - ctx: Context for cancellation (the client timeout also applies)
//   - urn: Device model URN, versioned or not
//
// Returns:
//   - any: Decoded JSON document (generic value tree)
//   - error: ErrEmptyURN, ErrFetchFailed, ErrUnexpectedStatus or
//     ErrInvalidDocument, wrapped with detail
func (c *Client) Fetch(ctx context.Context, urn string) (any, error) {
	urn = NormalizeURN(urn)
	if urn == "" {
		return nil, ErrEmptyURN
	}

	reqURL := fmt.Sprintf("%s/instance?type=%s", c.baseURL, url.QueryEscape(urn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("specification fetch failed", "urn", urn, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("registry returned non-200",
			"urn", urn,
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, urn)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	c.logger.Debug("specification fetched",
		"urn", urn,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return doc, nil
}
