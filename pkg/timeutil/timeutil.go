// Package timeutil provides the community timezone and the watch party time
// format. The Cinema Society schedules everything in one announced timezone so
// members never have to convert times in chat.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// CommunityTZ is the timezone all watch parties are announced in.
var CommunityTZ = time.UTC

// SetCommunityTZ switches the announcement timezone by IANA name,
// e.g. "Europe/London". Called once at startup from config.
func SetCommunityTZ(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("timeutil: load location %q: %w", name, err)
	}
	CommunityTZ = loc
	return nil
}

// Now returns the current time in the community timezone.
func Now() time.Time {
	return time.Now().In(CommunityTZ)
}

// partyTimeLayout is the input format members use when scheduling,
// e.g. "2026-03-14 20:30".
const partyTimeLayout = "2006-01-02 15:04"

// ParsePartyTime parses a member-supplied watch party time in the community
// timezone.
func ParsePartyTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(partyTimeLayout, strings.TrimSpace(s), CommunityTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("timeutil: expected YYYY-MM-DD HH:MM: %w", err)
	}
	return t, nil
}

// FormatPartyTime formats a time for announcements,
// e.g. "Sat, 14 Mar 2026 at 20:30".
func FormatPartyTime(t time.Time) string {
	return t.In(CommunityTZ).Format("Mon, 2 Jan 2006 at 15:04")
}

// FormatCountdown renders the time until start for reminder messages,
// e.g. "in 1h30m" or "in 45m".
func FormatCountdown(until time.Duration) string {
	if until <= 0 {
		return "now"
	}
	until = until.Round(time.Minute)
	h := int(until.Hours())
	m := int(until.Minutes()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("in %dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("in %dh", h)
	default:
		return fmt.Sprintf("in %dm", m)
	}
}
