package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinema-hub/cinema-community-bot/internal/interface/discord/handler"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		content  string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{"!level", "level", "", true},
		{"!LEVEL", "level", "", true},
		{"!rate Inception 9", "rate", "Inception 9", true},
		{"!recommend  The Matrix ", "recommend", "The Matrix", true},
		{"hello there", "", "", false},
		{"!", "", "", false},
		{"! ", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range cases {
		name, args, ok := ParseCommand(tc.content)
		assert.Equal(t, tc.wantOK, ok, "content=%q", tc.content)
		assert.Equal(t, tc.wantName, name, "content=%q", tc.content)
		assert.Equal(t, tc.wantArgs, args, "content=%q", tc.content)
	}
}

func TestRouter_Dispatch(t *testing.T) {
	router := NewRouter(nil)
	router.Register("Level", handler.HandlerFunc(func(ctx context.Context, req handler.Request) (*handler.Response, error) {
		return &handler.Response{Content: "level for " + req.UserID}, nil
	}))

	resp, err := router.Dispatch(context.Background(), "level", handler.Request{UserID: "user-1"})
	assert.NoError(t, err)
	assert.Equal(t, "level for user-1", resp.Content)

	// Registration is case-insensitive in both directions.
	resp, err = router.Dispatch(context.Background(), "LEVEL", handler.Request{UserID: "user-1"})
	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestRouter_UnknownCommandIsIgnored(t *testing.T) {
	router := NewRouter(nil)

	resp, err := router.Dispatch(context.Background(), "nosuchcommand", handler.Request{})
	assert.NoError(t, err)
	assert.Nil(t, resp)
}
