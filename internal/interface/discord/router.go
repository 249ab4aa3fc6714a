// Package discord implements the Discord-facing interface of the cinema
// community bot: command routing, the gateway bot loop and message
// presentation.
package discord

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/handler"
)

// CommandPrefix is what chat commands start with, e.g. "!level".
const CommandPrefix = "!"

// Router routes command names to handlers.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
	logger   *slog.Logger
}

// NewRouter creates a router.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers: make(map[string]handler.Handler),
		logger:   logger.With("component", "command_router"),
	}
}

// Register adds a handler for a command name (without prefix).
func (r *Router) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.ToLower(name)] = h
}

// Dispatch routes a command. A nil response with nil error means the command
// is unknown and should be ignored, matching how Discord bots coexist with
// other bots sharing a prefix.
func (r *Router) Dispatch(ctx context.Context, name string, req handler.Request) (*handler.Response, error) {
	r.mu.RLock()
	h, ok := r.handlers[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		r.logger.Debug("unknown command", "command", name)
		return nil, nil
	}
	return h.Handle(ctx, req)
}

// ParseCommand splits message content into a command name and its arguments.
// ok is false when the content is not a command.
func ParseCommand(content string) (name, args string, ok bool) {
	if !strings.HasPrefix(content, CommandPrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(content, CommandPrefix)
	if rest == "" {
		return "", "", false
	}
	parts := strings.SplitN(rest, " ", 2)
	name = strings.ToLower(strings.TrimSpace(parts[0]))
	if name == "" {
		return "", "", false
	}
	if len(parts) == 2 {
		args = strings.TrimSpace(parts[1])
	}
	return name, args, true
}
