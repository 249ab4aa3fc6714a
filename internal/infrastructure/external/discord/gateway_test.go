package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// fakeGatewayServer serves /gateway/bot plus a websocket endpoint speaking
// just enough of the protocol: hello, identify, then the given dispatches.
// The socket stays open until the client hangs up.
func fakeGatewayServer(t *testing.T, dispatches []gatewayPayload) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/gateway/bot", func(w http.ResponseWriter, r *http.Request) {
		wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/socket"
		_ = json.NewEncoder(w).Encode(map[string]string{"url": wsURL})
	})
	mux.HandleFunc("/socket", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hello := gatewayPayload{Op: opHello, Data: json.RawMessage(`{"heartbeat_interval":45000}`)}
		if err := conn.WriteJSON(hello); err != nil {
			return
		}

		var identify gatewayPayload
		if err := conn.ReadJSON(&identify); err != nil {
			return
		}
		if identify.Op != opIdentify {
			t.Errorf("expected identify op %d, got %d", opIdentify, identify.Op)
			return
		}

		for _, d := range dispatches {
			if err := conn.WriteJSON(d); err != nil {
				return
			}
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
	server = httptest.NewServer(mux)
	return server
}

func messageDispatch(seq int64, userID string) gatewayPayload {
	data := json.RawMessage(`{"id":"m` + userID + `","channel_id":"chan-1","author":{"id":"` + userID + `"},"content":"hi"}`)
	return gatewayPayload{Op: opDispatch, Type: "MESSAGE_CREATE", Sequence: &seq, Data: data}
}

func TestGateway_SlowHandlerDoesNotBlockOtherEvents(t *testing.T) {
	server := fakeGatewayServer(t, []gatewayPayload{
		messageDispatch(1, "user-a"),
		messageDispatch(2, "user-b"),
	})
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 1})

	blockA := make(chan struct{})
	gotB := make(chan struct{})
	handlers := EventHandlers{
		OnMessageCreate: func(msg MessageCreateEvent) {
			switch msg.Author.ID {
			case "user-a":
				<-blockA
			case "user-b":
				close(gotB)
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := NewGateway(GatewayConfig{Token: "token"}, client, handlers)
	go func() { _ = gw.Run(ctx) }()

	// user-b's event must arrive even though user-a's handler is still busy.
	select {
	case <-gotB:
	case <-time.After(2 * time.Second):
		t.Fatal("second user's event was not delivered while the first handler was busy")
	}
	close(blockA)
}

func TestGateway_DispatchesGuildCreate(t *testing.T) {
	seq := int64(1)
	server := fakeGatewayServer(t, []gatewayPayload{
		{
			Op:       opDispatch,
			Type:     "GUILD_CREATE",
			Sequence: &seq,
			Data:     json.RawMessage(`{"id":"guild-1","name":"Cinema Society","system_channel_id":"sys-1"}`),
		},
	})
	defer server.Close()

	client := NewClient(ClientConfig{Token: "token", BaseURL: server.URL, RetryAttempts: 1})

	got := make(chan GuildCreateEvent, 1)
	handlers := EventHandlers{
		OnGuildCreate: func(guild GuildCreateEvent) { got <- guild },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := NewGateway(GatewayConfig{Token: "token"}, client, handlers)
	go func() { _ = gw.Run(ctx) }()

	select {
	case guild := <-got:
		assert.Equal(t, "guild-1", guild.ID)
		assert.Equal(t, "sys-1", guild.SystemChannelID)
	case <-time.After(2 * time.Second):
		t.Fatal("GUILD_CREATE was not dispatched")
	}
}
