// Package shared contains common domain types, errors, and events.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven architecture.
const (
	// Progression events
	EventXPGained EventType = "progression.xp_gained"
	EventLevelUp  EventType = "progression.level_up"

	// Movie events
	EventMovieRecommended EventType = "movie.recommended"
	EventMovieRated       EventType = "movie.rated"

	// Watch party events
	EventWatchPartyScheduled EventType = "watchparty.scheduled"
	EventWatchPartyReminder  EventType = "watchparty.reminder"

	// Community events
	EventMemberJoined EventType = "community.member_joined"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes a single event.
type EventHandler func(event Event) error

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event Event) error
}

// EventBus combines publishing with subscription management.
type EventBus interface {
	EventPublisher
	Subscribe(eventType EventType, handler EventHandler) error
	SubscribeAll(handler EventHandler) error
	Close() error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progression Events
// ═══════════════════════════════════════════════════════════════════════════

// XPGainedEvent is emitted whenever a qualifying activity grants XP.
type XPGainedEvent struct {
	BaseEvent
	GuildID string `json:"guild_id"`
	Amount  int    `json:"amount"`
	NewXP   int    `json:"new_xp"`
	Level   int    `json:"level"`
}

// Payload implements Event interface.
func (e XPGainedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"guild_id": e.GuildID,
		"amount":   e.Amount,
		"new_xp":   e.NewXP,
		"level":    e.Level,
	}
}

// NewXPGainedEvent creates a new XPGainedEvent.
func NewXPGainedEvent(userID, guildID string, amount, newXP, level int) XPGainedEvent {
	return XPGainedEvent{
		BaseEvent: NewBaseEvent(EventXPGained, userID),
		GuildID:   guildID,
		Amount:    amount,
		NewXP:     newXP,
		Level:     level,
	}
}

// LevelUpEvent is emitted when an accrual pushes a user past a rank threshold.
// A single accrual can skip several ranks; OldLevel/NewLevel carry the jump.
type LevelUpEvent struct {
	BaseEvent
	GuildID  string `json:"guild_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	RoleName string `json:"role_name"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"guild_id":  e.GuildID,
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
		"role_name": e.RoleName,
	}
}

// NewLevelUpEvent creates a new LevelUpEvent.
func NewLevelUpEvent(userID, guildID string, oldLevel, newLevel int, roleName string) LevelUpEvent {
	return LevelUpEvent{
		BaseEvent: NewBaseEvent(EventLevelUp, userID),
		GuildID:   guildID,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		RoleName:  roleName,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Movie Events
// ═══════════════════════════════════════════════════════════════════════════

// MovieRecommendedEvent is emitted when a member recommends a movie.
type MovieRecommendedEvent struct {
	BaseEvent
	MovieName     string `json:"movie_name"`
	RecommenderID string `json:"recommender_id"`
}

// Payload implements Event interface.
func (e MovieRecommendedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"movie_name":     e.MovieName,
		"recommender_id": e.RecommenderID,
	}
}

// NewMovieRecommendedEvent creates a new MovieRecommendedEvent.
func NewMovieRecommendedEvent(recommendationID, movieName, recommenderID string) MovieRecommendedEvent {
	return MovieRecommendedEvent{
		BaseEvent:     NewBaseEvent(EventMovieRecommended, recommendationID),
		MovieName:     movieName,
		RecommenderID: recommenderID,
	}
}

// MovieRatedEvent is emitted when a recommendation receives a rating.
type MovieRatedEvent struct {
	BaseEvent
	MovieName string `json:"movie_name"`
	RaterID   string `json:"rater_id"`
	Rating    int    `json:"rating"`
}

// Payload implements Event interface.
func (e MovieRatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"movie_name": e.MovieName,
		"rater_id":   e.RaterID,
		"rating":     e.Rating,
	}
}

// NewMovieRatedEvent creates a new MovieRatedEvent.
func NewMovieRatedEvent(movieName, raterID string, rating int) MovieRatedEvent {
	return MovieRatedEvent{
		BaseEvent: NewBaseEvent(EventMovieRated, movieName),
		MovieName: movieName,
		RaterID:   raterID,
		Rating:    rating,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Watch Party Events
// ═══════════════════════════════════════════════════════════════════════════

// WatchPartyScheduledEvent is emitted when a watch party is scheduled.
type WatchPartyScheduledEvent struct {
	BaseEvent
	MovieName string    `json:"movie_name"`
	HostID    string    `json:"host_id"`
	ChannelID string    `json:"channel_id"`
	StartsAt  time.Time `json:"starts_at"`
}

// Payload implements Event interface.
func (e WatchPartyScheduledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"movie_name": e.MovieName,
		"host_id":    e.HostID,
		"channel_id": e.ChannelID,
		"starts_at":  e.StartsAt,
	}
}

// NewWatchPartyScheduledEvent creates a new WatchPartyScheduledEvent.
func NewWatchPartyScheduledEvent(partyID, movieName, hostID, channelID string, startsAt time.Time) WatchPartyScheduledEvent {
	return WatchPartyScheduledEvent{
		BaseEvent: NewBaseEvent(EventWatchPartyScheduled, partyID),
		MovieName: movieName,
		HostID:    hostID,
		ChannelID: channelID,
		StartsAt:  startsAt,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Community Events
// ═══════════════════════════════════════════════════════════════════════════

// MemberJoinedEvent is emitted when a new member joins the guild.
type MemberJoinedEvent struct {
	BaseEvent
	GuildID  string `json:"guild_id"`
	Username string `json:"username"`
}

// Payload implements Event interface.
func (e MemberJoinedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"guild_id": e.GuildID,
		"username": e.Username,
	}
}

// NewMemberJoinedEvent creates a new MemberJoinedEvent.
func NewMemberJoinedEvent(userID, guildID, username string) MemberJoinedEvent {
	return MemberJoinedEvent{
		BaseEvent: NewBaseEvent(EventMemberJoined, userID),
		GuildID:   guildID,
		Username:  username,
	}
}
