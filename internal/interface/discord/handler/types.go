// Package handler contains the bot's command handlers. Each handler turns a
// parsed command request into an application command or query and phrases the
// result through the presenter.
package handler

import (
	"context"

	external "github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/discord"
)

// Request carries the parsed command context from either the gateway or the
// interactions endpoint, so handlers never see the transport.
type Request struct {
	// UserID is the invoking member.
	UserID string

	// GuildID is the guild the command was used in; empty in DMs.
	GuildID string

	// ChannelID is where the response goes.
	ChannelID string

	// AuthorName is the member's display name.
	AuthorName string

	// Mention renders as a ping of the member, e.g. "<@123>".
	Mention string

	// Args is the raw text after the command name.
	Args string
}

// Response is what a handler wants sent back.
type Response struct {
	// Content is the plain text reply.
	Content string

	// Embed is an optional rich embed; when set it is sent instead of
	// plain content.
	Embed *external.Embed
}

// Handler processes one command.
type Handler interface {
	Handle(ctx context.Context, req Request) (*Response, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) (*Response, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
