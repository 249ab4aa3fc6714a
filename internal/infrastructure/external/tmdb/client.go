// Package tmdb implements the movie catalog port against The Movie Database
// API. Only the popular-movies listing is used; the bot samples random picks
// from it.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/movie"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/pkg/retry"
)

// ClientConfig contains configuration for the TMDB client.
type ClientConfig struct {
	// APIKey is the TMDB v3 API key.
	APIKey string

	// BaseURL is the API base URL (default: https://api.themoviedb.org/3).
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// RetryAttempts is the number of attempts for transient failures.
	RetryAttempts int

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		APIKey:        apiKey,
		BaseURL:       "https://api.themoviedb.org/3",
		Timeout:       10 * time.Second,
		RetryAttempts: 3,
	}
}

// Client implements movie.Catalog against the TMDB API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     *slog.Logger
}

var _ movie.Catalog = (*Client)(nil)

// NewClient creates a TMDB client.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.themoviedb.org/3"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	logger := config.Logger.With("client", "tmdb")
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier: retry.New(retry.Config{
			MaxAttempts: config.RetryAttempts,
			OnRetry: func(attempt int, err error, delay time.Duration) {
				logger.Warn("retrying tmdb request", "attempt", attempt, "delay", delay, "error", err)
			},
		}),
		logger: logger,
	}
}

// PopularMovies returns one page of the popular movie listing.
func (c *Client) PopularMovies(ctx context.Context, page int) ([]movie.CatalogMovie, error) {
	if page < 1 {
		page = 1
	}

	var resp popularResponse
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		err := c.getPopular(ctx, page, &resp)
		if err == nil {
			return nil
		}
		if shared.IsTransient(err) {
			return retry.Retryable(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	movies := make([]movie.CatalogMovie, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Title == "" {
			continue
		}
		movies = append(movies, movie.CatalogMovie{
			Title:    r.Title,
			Overview: r.Overview,
		})
	}
	return movies, nil
}

func (c *Client) getPopular(ctx context.Context, page int, out *popularResponse) error {
	endpoint := fmt.Sprintf("%s/movie/popular?%s", c.config.BaseURL, url.Values{
		"api_key": {c.config.APIKey},
		"page":    {strconv.Itoa(page)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.WrapError("tmdb", "Request", shared.ErrServiceUnavailable, "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.WrapError("tmdb", "Request", shared.ErrExternalService, "read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)
		kind := shared.ErrExternalService
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = shared.ErrServiceUnavailable
		}
		return shared.WrapError("tmdb", "Request", kind,
			fmt.Sprintf("status %d: %s", resp.StatusCode, apiErr.StatusMessage), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return shared.WrapError("tmdb", "Parse", shared.ErrExternalService, "unmarshal popular response", err)
	}
	return nil
}
