package discord

import "encoding/json"

// ══════════════════════════════════════════════════════════════════════════════
// REST API TYPES
// ══════════════════════════════════════════════════════════════════════════════

// Role represents a guild role.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color,omitempty"`
	Hoist       bool   `json:"hoist,omitempty"`
	Position    int    `json:"position,omitempty"`
	Permissions string `json:"permissions,omitempty"`
	Managed     bool   `json:"managed,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
}

// User represents a Discord user.
type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
}

// DisplayName returns the name to show in announcements.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// GuildMember represents a member of a guild.
type GuildMember struct {
	User     *User    `json:"user,omitempty"`
	Nick     string   `json:"nick,omitempty"`
	Roles    []string `json:"roles"`
	JoinedAt string   `json:"joined_at,omitempty"`
}

// Channel represents a Discord channel.
type Channel struct {
	ID   string `json:"id"`
	Type int    `json:"type"`
	Name string `json:"name,omitempty"`
}

// Message represents a channel message.
type Message struct {
	ID        string       `json:"id"`
	ChannelID string       `json:"channel_id"`
	GuildID   string       `json:"guild_id,omitempty"`
	Author    *User        `json:"author,omitempty"`
	Member    *GuildMember `json:"member,omitempty"`
	Content   string       `json:"content"`
	Timestamp string       `json:"timestamp,omitempty"`
	Embeds    []Embed      `json:"embeds,omitempty"`
}

// Embed is a rich message embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// EmbedField is a titled field inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter is the small footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// apiError is the JSON error body the Discord API returns on failure.
type apiError struct {
	Code       int     `json:"code"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// GATEWAY TYPES
// ══════════════════════════════════════════════════════════════════════════════

// Gateway opcodes used by the client.
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opResume         = 6
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// Gateway intent bits the bot needs.
const (
	intentGuilds         = 1 << 0
	intentGuildMembers   = 1 << 1
	intentGuildMessages  = 1 << 9
	intentMessageContent = 1 << 15
)

// gatewayPayload is the envelope of every gateway message.
type gatewayPayload struct {
	Op       int             `json:"op"`
	Data     json.RawMessage `json:"d,omitempty"`
	Sequence *int64          `json:"s,omitempty"`
	Type     string          `json:"t,omitempty"`
}

// helloData is the op 10 payload.
type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

// identifyData is the op 2 payload.
type identifyData struct {
	Token      string             `json:"token"`
	Intents    int                `json:"intents"`
	Properties identifyProperties `json:"properties"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// readyData is the READY dispatch payload.
type readyData struct {
	SessionID string `json:"session_id"`
	User      User   `json:"user"`
	ResumeURL string `json:"resume_gateway_url"`
}

// GuildCreateEvent is the GUILD_CREATE dispatch payload. Discord sends one
// per guild after identify; it carries the system channel used for greetings.
type GuildCreateEvent struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	SystemChannelID string `json:"system_channel_id,omitempty"`
}

// MessageCreateEvent is the MESSAGE_CREATE dispatch payload.
type MessageCreateEvent struct {
	Message
}

// GuildMemberAddEvent is the GUILD_MEMBER_ADD dispatch payload.
type GuildMemberAddEvent struct {
	GuildMember
	GuildID string `json:"guild_id"`
}
