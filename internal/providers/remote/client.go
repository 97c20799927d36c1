// Package remote pages scraped game records from a JSON archive over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/providers"
)

// ErrMissingBaseURL is returned when no archive URL is configured.
var ErrMissingBaseURL = errors.New("remote archive URL is required")

// Config controls how the client reaches the archive.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxPages   int
}

// Client fetches raw games from GET {base}/games?page=N&per_page=M.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	maxPages   int
	logger     *slog.Logger
}

// NewClient constructs an archive client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	base := normalizeBaseURL(cfg.BaseURL)
	if base == "" {
		return nil, ErrMissingBaseURL
	}
	return &Client{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		logger:     logger,
	}, nil
}

func (c *Client) Name() string {
	return ProviderName
}

// FetchRawGames walks every page of the archive in order.
func (c *Client) FetchRawGames(ctx context.Context) ([]games.RawGame, error) {
	page := 1
	all := make([]games.RawGame, 0)

	for {
		payload, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, payload.Data...)

		totalPages := payload.Meta.TotalPages
		if totalPages > 0 {
			if page >= totalPages {
				break
			}
		} else if len(payload.Data) < defaultPerPage {
			break
		}
		if page >= c.maxPages {
			providers.LogWarn(ctx, c.logger, ProviderName, "page limit reached", nil, slog.Int("pages", page))
			break
		}
		page++
	}

	providers.LogInfo(ctx, c.logger, ProviderName, "raw games loaded",
		slog.Int(logging.FieldCount, len(all)),
		slog.Int("pages", page),
	)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (gamesResponse, error) {
	req, err := c.buildRequest(ctx, page)
	if err != nil {
		return gamesResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gamesResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return gamesResponse{}, fmt.Errorf("%s: unexpected status %d: %s", ProviderName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload gamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return gamesResponse{}, &providers.DecodeError{
			Provider: ProviderName,
			File:     "page " + strconv.Itoa(page),
			Err:      err,
		}
	}
	return payload, nil
}

func (c *Client) buildRequest(ctx context.Context, page int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}
