// Package discord implements the Discord REST and gateway clients. The REST
// client is the role directory and promotion notifier for the progression
// engine; the gateway feeds guild events into the interface layer.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cinema-hub/cinema-community-bot/internal/domain/progression"
	"github.com/cinema-hub/cinema-community-bot/internal/domain/shared"
	"github.com/cinema-hub/cinema-community-bot/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the Discord REST client.
type ClientConfig struct {
	// Token is the bot token.
	Token string

	// BaseURL is the Discord API base URL (default: https://discord.com/api/v10).
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// RetryAttempts is the number of attempts for transient failures.
	RetryAttempts int

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(token string) ClientConfig {
	return ClientConfig{
		Token:         token,
		BaseURL:       "https://discord.com/api/v10",
		Timeout:       15 * time.Second,
		RetryAttempts: 3,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is a narrow Discord REST client covering exactly the endpoints the
// bot needs: roles, members, DMs and channel messages.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	retrier    *retry.Retrier
	logger     *slog.Logger

	// dmMu guards dmChannels, a userID -> DM channel ID cache. Discord
	// creates at most one DM channel per user pair, so caching is safe.
	dmMu       sync.Mutex
	dmChannels map[string]string
}

// NewClient creates a Discord REST client.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://discord.com/api/v10"
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	logger := config.Logger.With("client", "discord")
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier: retry.New(retry.Config{
			MaxAttempts:  config.RetryAttempts,
			InitialDelay: 500 * time.Millisecond,
			OnRetry: func(attempt int, err error, delay time.Duration) {
				logger.Warn("retrying discord request", "attempt", attempt, "delay", delay, "error", err)
			},
		}),
		logger:     logger,
		dmChannels: make(map[string]string),
	}
}

// do performs one API request with retries on 429 and 5xx responses.
// The result pointer may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	return c.retrier.Do(ctx, func(ctx context.Context) error {
		err := c.doOnce(ctx, method, path, body, result)
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return retry.Retryable(err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.config.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.WrapError("discord", "Request", shared.ErrServiceUnavailable, "http request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.WrapError("discord", "Request", shared.ErrExternalService, "read response", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if result != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, result); err != nil {
				return shared.WrapError("discord", "Request", shared.ErrExternalService, "unmarshal response", err)
			}
		}
		return nil
	}

	var apiErr apiError
	_ = json.Unmarshal(respBody, &apiErr)

	switch resp.StatusCode {
	case http.StatusForbidden:
		return shared.WrapError("discord", "Request", shared.ErrPermission,
			fmt.Sprintf("%s %s: %s", method, path, apiErr.Message), nil)
	case http.StatusNotFound:
		return shared.WrapError("discord", "Request", shared.ErrNotFound,
			fmt.Sprintf("%s %s: %s", method, path, apiErr.Message), nil)
	case http.StatusTooManyRequests:
		return shared.WrapError("discord", "Request", shared.ErrRateLimited,
			fmt.Sprintf("%s %s: retry after %.1fs", method, path, apiErr.RetryAfter), nil)
	default:
		kind := shared.ErrExternalService
		if resp.StatusCode >= 500 {
			kind = shared.ErrServiceUnavailable
		}
		return shared.WrapError("discord", "Request", kind,
			fmt.Sprintf("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Message), nil)
	}
}

// isTransient reports whether a failed request is worth retrying. Only 429,
// 5xx and transport failures qualify; 4xx responses and decode errors repeat
// identically on every attempt.
func isTransient(err error) bool {
	return shared.IsTransient(err)
}

// ══════════════════════════════════════════════════════════════════════════════
// ROLE DIRECTORY
// ══════════════════════════════════════════════════════════════════════════════

var _ progression.RoleDirectory = (*Client)(nil)

// ListRoles returns every role defined in the guild.
func (c *Client) ListRoles(ctx context.Context, guildID progression.GuildID) ([]progression.Role, error) {
	var roles []Role
	path := fmt.Sprintf("/guilds/%s/roles", guildID)
	if err := c.do(ctx, http.MethodGet, path, nil, &roles); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	result := make([]progression.Role, 0, len(roles))
	for _, r := range roles {
		result = append(result, progression.Role{ID: r.ID, Name: r.Name})
	}
	return result, nil
}

// CreateRole creates a role with the given name and returns its handle.
func (c *Client) CreateRole(ctx context.Context, guildID progression.GuildID, name string) (progression.Role, error) {
	var role Role
	path := fmt.Sprintf("/guilds/%s/roles", guildID)
	body := map[string]interface{}{"name": name}
	if err := c.do(ctx, http.MethodPost, path, body, &role); err != nil {
		return progression.Role{}, fmt.Errorf("create role %q: %w", name, err)
	}
	return progression.Role{ID: role.ID, Name: role.Name}, nil
}

// AddRole grants a role to a member.
func (c *Client) AddRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("add role %s to %s: %w", roleID, userID, err)
	}
	return nil
}

// RemoveRole revokes a role from a member.
func (c *Client) RemoveRole(ctx context.Context, guildID progression.GuildID, userID progression.UserID, roleID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove role %s from %s: %w", roleID, userID, err)
	}
	return nil
}

// MemberRoles returns the IDs of the roles a member currently holds.
func (c *Client) MemberRoles(ctx context.Context, guildID progression.GuildID, userID progression.UserID) ([]string, error) {
	var member GuildMember
	path := fmt.Sprintf("/guilds/%s/members/%s", guildID, userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &member); err != nil {
		return nil, fmt.Errorf("member roles for %s: %w", userID, err)
	}
	return member.Roles, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PROMOTION NOTIFIER
// ══════════════════════════════════════════════════════════════════════════════

var _ progression.PromotionNotifier = (*Client)(nil)

// NotifyPromotion sends the promotion announcement to the user's DMs.
func (c *Client) NotifyPromotion(ctx context.Context, userID progression.UserID, roleName string, level progression.Level) error {
	channelID, err := c.dmChannel(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}

	content := fmt.Sprintf("🎉 Congratulations! You reached level %d and earned the **%s** role in the Cinema Society!", level, roleName)
	if _, err := c.SendMessage(ctx, channelID, content); err != nil {
		return fmt.Errorf("send promotion dm: %w", err)
	}
	return nil
}

// dmChannel returns the DM channel ID for a user, creating it on first use.
func (c *Client) dmChannel(ctx context.Context, userID string) (string, error) {
	c.dmMu.Lock()
	if id, ok := c.dmChannels[userID]; ok {
		c.dmMu.Unlock()
		return id, nil
	}
	c.dmMu.Unlock()

	var channel Channel
	body := map[string]interface{}{"recipient_id": userID}
	if err := c.do(ctx, http.MethodPost, "/users/@me/channels", body, &channel); err != nil {
		return "", err
	}

	c.dmMu.Lock()
	c.dmChannels[userID] = channel.ID
	c.dmMu.Unlock()
	return channel.ID, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// SendMessage posts a plain text message to a channel.
func (c *Client) SendMessage(ctx context.Context, channelID, content string) (*Message, error) {
	return c.sendMessage(ctx, channelID, map[string]interface{}{"content": content})
}

// SendEmbed posts an embed to a channel.
func (c *Client) SendEmbed(ctx context.Context, channelID string, embed Embed) (*Message, error) {
	return c.sendMessage(ctx, channelID, map[string]interface{}{"embeds": []Embed{embed}})
}

func (c *Client) sendMessage(ctx context.Context, channelID string, body map[string]interface{}) (*Message, error) {
	var msg Message
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	if err := c.do(ctx, http.MethodPost, path, body, &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

// GatewayURL asks the API for the websocket URL the gateway should dial.
func (c *Client) GatewayURL(ctx context.Context) (string, error) {
	var result struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/gateway/bot", nil, &result); err != nil {
		return "", fmt.Errorf("gateway url: %w", err)
	}
	return result.URL, nil
}

// Me returns the bot's own user, used as a startup health check.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/@me", nil, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}
