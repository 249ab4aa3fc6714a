package handlers

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	external "github.com/cinema-hub/cinema-community-bot/internal/infrastructure/external/discord"
	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/handler"
)

// ══════════════════════════════════════════════════════════════════════════════
// INTERACTIONS HANDLER
// The webhook alternative to the gateway: Discord POSTs slash command
// interactions here, signed with the application's ed25519 key.
// ══════════════════════════════════════════════════════════════════════════════

// Interaction types and response types from the interactions API.
const (
	interactionPing               = 1
	interactionApplicationCommand = 2

	responsePong           = 1
	responseChannelMessage = 4
)

// Dispatcher routes a named command, mirroring the gateway router.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, req handler.Request) (*handler.Response, error)
}

// interaction is the inbound interaction payload.
type interaction struct {
	Type      int                   `json:"type"`
	GuildID   string                `json:"guild_id,omitempty"`
	ChannelID string                `json:"channel_id,omitempty"`
	Member    *external.GuildMember `json:"member,omitempty"`
	User      *external.User        `json:"user,omitempty"`
	Data      *interactionData      `json:"data,omitempty"`
}

type interactionData struct {
	Name    string              `json:"name"`
	Options []interactionOption `json:"options,omitempty"`
}

type interactionOption struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// interactionResponse is the reply body.
type interactionResponse struct {
	Type int                      `json:"type"`
	Data *interactionResponseData `json:"data,omitempty"`
}

type interactionResponseData struct {
	Content string           `json:"content,omitempty"`
	Embeds  []external.Embed `json:"embeds,omitempty"`
}

// InteractionsHandler verifies and dispatches slash command interactions.
type InteractionsHandler struct {
	publicKey  ed25519.PublicKey
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewInteractionsHandler creates the handler. publicKeyHex is the
// application's verification key from the developer portal.
func NewInteractionsHandler(publicKeyHex string, dispatcher Dispatcher, logger *slog.Logger) (*InteractionsHandler, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("interactions: decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("interactions: public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionsHandler{
		publicKey:  ed25519.PublicKey(key),
		dispatcher: dispatcher,
		logger:     logger.With("handler", "interactions"),
	}, nil
}

// ServeHTTP implements http.Handler.
func (h *InteractionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !h.verify(r, body) {
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var in interaction
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	switch in.Type {
	case interactionPing:
		h.respond(w, interactionResponse{Type: responsePong})

	case interactionApplicationCommand:
		h.handleCommand(r.Context(), w, in)

	default:
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
	}
}

// verify checks the ed25519 signature over timestamp+body.
func (h *InteractionsHandler) verify(r *http.Request, body []byte) bool {
	sigHex := r.Header.Get("X-Signature-Ed25519")
	timestamp := r.Header.Get("X-Signature-Timestamp")
	if sigHex == "" || timestamp == "" {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := append([]byte(timestamp), body...)
	return ed25519.Verify(h.publicKey, msg, sig)
}

func (h *InteractionsHandler) handleCommand(ctx context.Context, w http.ResponseWriter, in interaction) {
	if in.Data == nil || in.Data.Name == "" {
		http.Error(w, "missing command data", http.StatusBadRequest)
		return
	}

	user := in.User
	if in.Member != nil && in.Member.User != nil {
		user = in.Member.User
	}
	if user == nil {
		http.Error(w, "missing user", http.StatusBadRequest)
		return
	}

	req := handler.Request{
		UserID:     user.ID,
		GuildID:    in.GuildID,
		ChannelID:  in.ChannelID,
		AuthorName: user.DisplayName(),
		Mention:    fmt.Sprintf("<@%s>", user.ID),
		Args:       joinOptions(in.Data.Options),
	}

	resp, err := h.dispatcher.Dispatch(ctx, in.Data.Name, req)
	if err != nil {
		h.logger.Error("interaction failed", "command", in.Data.Name, "user_id", req.UserID, "error", err)
		h.respond(w, interactionResponse{
			Type: responseChannelMessage,
			Data: &interactionResponseData{Content: "😬 Something went wrong on our end. Try again later."},
		})
		return
	}
	if resp == nil {
		h.respond(w, interactionResponse{
			Type: responseChannelMessage,
			Data: &interactionResponseData{Content: "Unknown command."},
		})
		return
	}

	out := interactionResponseData{Content: resp.Content}
	if resp.Embed != nil {
		out.Embeds = []external.Embed{*resp.Embed}
		out.Content = ""
	}
	h.respond(w, interactionResponse{Type: responseChannelMessage, Data: &out})
}

// joinOptions flattens slash command options back into the text argument form
// the prefix commands use, in declaration order.
func joinOptions(options []interactionOption) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		var asString string
		if err := json.Unmarshal(opt.Value, &asString); err == nil {
			parts = append(parts, asString)
			continue
		}
		parts = append(parts, strings.TrimSpace(string(opt.Value)))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (h *InteractionsHandler) respond(w http.ResponseWriter, resp interactionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Warn("failed to write interaction response", "error", err)
	}
}
