package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ══════════════════════════════════════════════════════════════════════════════
// GATEWAY
// The gateway is the realtime half of the Discord connection: it delivers
// message and member events over a websocket. Commands arrive here in gateway
// mode; in webhook mode the HTTP interactions endpoint replaces it.
// ══════════════════════════════════════════════════════════════════════════════

// GatewayConfig contains configuration for the gateway connection.
type GatewayConfig struct {
	// Token is the bot token.
	Token string

	// Logger for structured logging.
	Logger *slog.Logger

	// ReconnectDelay is the initial delay before reconnecting.
	ReconnectDelay time.Duration

	// MaxReconnectDelay caps the reconnect backoff.
	MaxReconnectDelay time.Duration
}

// EventHandlers holds the callbacks the interface layer registers.
// Nil handlers are skipped.
type EventHandlers struct {
	OnReady          func(sessionID string, botUser User)
	OnGuildCreate    func(guild GuildCreateEvent)
	OnMessageCreate  func(msg MessageCreateEvent)
	OnGuildMemberAdd func(member GuildMemberAddEvent)
}

// Gateway maintains the websocket connection to Discord, including identify,
// heartbeating and reconnection with backoff.
type Gateway struct {
	config   GatewayConfig
	client   *Client
	handlers EventHandlers
	logger   *slog.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	sequence int64
	hasSeq   bool
}

// NewGateway creates a gateway. client supplies the dial URL.
func NewGateway(config GatewayConfig, client *Client, handlers EventHandlers) *Gateway {
	if config.ReconnectDelay <= 0 {
		config.ReconnectDelay = 2 * time.Second
	}
	if config.MaxReconnectDelay <= 0 {
		config.MaxReconnectDelay = time.Minute
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Gateway{
		config:   config,
		client:   client,
		handlers: handlers,
		logger:   config.Logger.With("component", "discord_gateway"),
	}
}

// Run connects and processes events until ctx is cancelled. Connection drops
// trigger reconnection with exponential backoff.
func (g *Gateway) Run(ctx context.Context) error {
	delay := g.config.ReconnectDelay

	for {
		err := g.connectAndServe(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		g.logger.Warn("gateway connection lost, reconnecting", "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > g.config.MaxReconnectDelay {
			delay = g.config.MaxReconnectDelay
		}
	}
}

// connectAndServe runs one full gateway session.
func (g *Gateway) connectAndServe(ctx context.Context) error {
	url, err := g.client.GatewayURL(ctx)
	if err != nil {
		return fmt.Errorf("resolve gateway url: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url+"?v=10&encoding=json", nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	g.mu.Lock()
	g.conn = conn
	g.mu.Unlock()

	// The first frame must be HELLO with the heartbeat interval.
	var hello gatewayPayload
	if err := conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("read hello: %w", err)
	}
	if hello.Op != opHello {
		return fmt.Errorf("expected hello op %d, got %d", opHello, hello.Op)
	}
	var helloBody helloData
	if err := json.Unmarshal(hello.Data, &helloBody); err != nil {
		return fmt.Errorf("decode hello: %w", err)
	}

	if err := g.identify(); err != nil {
		return fmt.Errorf("identify: %w", err)
	}

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go g.heartbeatLoop(heartbeatCtx, time.Duration(helloBody.HeartbeatInterval)*time.Millisecond)

	// Close the socket when ctx is cancelled so ReadJSON unblocks.
	go func() {
		<-heartbeatCtx.Done()
		conn.Close()
	}()

	for {
		var payload gatewayPayload
		if err := conn.ReadJSON(&payload); err != nil {
			return fmt.Errorf("read payload: %w", err)
		}

		switch payload.Op {
		case opDispatch:
			if payload.Sequence != nil {
				g.mu.Lock()
				g.sequence = *payload.Sequence
				g.hasSeq = true
				g.mu.Unlock()
			}
			// Handlers run on their own goroutine so a slow handler cannot
			// stall the read loop for everyone else. The application layer
			// serializes per user where it matters.
			go g.dispatch(payload)
		case opHeartbeat:
			g.sendHeartbeat()
		case opReconnect, opInvalidSession:
			return errors.New("server requested reconnect")
		case opHeartbeatACK:
			// nothing to do
		}
	}
}

// identify authenticates the session.
func (g *Gateway) identify() error {
	data, err := json.Marshal(identifyData{
		Token: g.config.Token,
		Intents: intentGuilds | intentGuildMembers |
			intentGuildMessages | intentMessageContent,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: "cinema-community-bot",
			Device:  "cinema-community-bot",
		},
	})
	if err != nil {
		return err
	}
	return g.writeJSON(gatewayPayload{Op: opIdentify, Data: data})
}

// heartbeatLoop sends heartbeats at the interval the server announced.
func (g *Gateway) heartbeatLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sendHeartbeat()
		}
	}
}

func (g *Gateway) sendHeartbeat() {
	g.mu.Lock()
	var data json.RawMessage = []byte("null")
	if g.hasSeq {
		data = []byte(fmt.Sprintf("%d", g.sequence))
	}
	g.mu.Unlock()

	if err := g.writeJSON(gatewayPayload{Op: opHeartbeat, Data: data}); err != nil {
		g.logger.Warn("failed to send heartbeat", "error", err)
	}
}

// writeJSON serializes writes; gorilla connections allow one writer at a time.
func (g *Gateway) writeJSON(payload gatewayPayload) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		return errors.New("gateway not connected")
	}
	return g.conn.WriteJSON(payload)
}

// dispatch routes a dispatch payload to the registered handler.
func (g *Gateway) dispatch(payload gatewayPayload) {
	switch payload.Type {
	case "READY":
		var ready readyData
		if err := json.Unmarshal(payload.Data, &ready); err != nil {
			g.logger.Warn("failed to decode READY", "error", err)
			return
		}
		g.logger.Info("gateway ready", "session_id", ready.SessionID, "bot", ready.User.Username)
		if g.handlers.OnReady != nil {
			g.handlers.OnReady(ready.SessionID, ready.User)
		}

	case "GUILD_CREATE":
		var event GuildCreateEvent
		if err := json.Unmarshal(payload.Data, &event); err != nil {
			g.logger.Warn("failed to decode GUILD_CREATE", "error", err)
			return
		}
		if g.handlers.OnGuildCreate != nil {
			g.handlers.OnGuildCreate(event)
		}

	case "MESSAGE_CREATE":
		var event MessageCreateEvent
		if err := json.Unmarshal(payload.Data, &event); err != nil {
			g.logger.Warn("failed to decode MESSAGE_CREATE", "error", err)
			return
		}
		if g.handlers.OnMessageCreate != nil {
			g.handlers.OnMessageCreate(event)
		}

	case "GUILD_MEMBER_ADD":
		var event GuildMemberAddEvent
		if err := json.Unmarshal(payload.Data, &event); err != nil {
			g.logger.Warn("failed to decode GUILD_MEMBER_ADD", "error", err)
			return
		}
		if g.handlers.OnGuildMemberAdd != nil {
			g.handlers.OnGuildMemberAdd(event)
		}
	}
}
