// Package calendar builds "add to calendar" links for a webinar.
package calendar

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aura-webinar/landing/internal/models"
)

// GoogleBaseURL is the Google Calendar event template endpoint.
const GoogleBaseURL = "https://calendar.google.com/calendar/render?action=TEMPLATE"

var markup = regexp.MustCompile(`<[^>]*>?`)

// dateLayouts are tried in order against the date string after its weekday prefix.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2006-01-02",
	"01/02/2006",
}

// Event is the input of a calendar link.
type Event struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
}

// GoogleLink returns a Google Calendar template URL. The event is booked 18:00-19:00 UTC on Date's day.
func GoogleLink(ev Event) string {
	stamp := ev.Date.Format("20060102")
	dates := fmt.Sprintf("%sT180000Z/%sT190000Z", stamp, stamp)
	return GoogleBaseURL +
		"&text=" + encode(ev.Title) +
		"&details=" + encode(ev.Description) +
		"&location=" + encode(ev.Location) +
		"&dates=" + dates
}

// ForWebinar builds the event for a configuration. When the date string cannot
// be parsed, now is used.
func ForWebinar(cfg models.WebinarConfig, now time.Time) Event {
	details := fmt.Sprintf("%s\n\nJoin Zoom Meeting: %s\n\nHost: %s\nSpecial Guest: %s",
		cfg.Subtitle, cfg.ZoomLink, cfg.Host().Name, cfg.Guest().Name)
	date, ok := ParseDate(cfg.Date)
	if !ok {
		date = now
	}
	return Event{
		Title:       StripMarkup(cfg.Title),
		Description: details,
		Location:    cfg.ZoomLink,
		Date:        date,
	}
}

// StripMarkup removes inline tags from a title.
func StripMarkup(s string) string {
	return markup.ReplaceAllString(s, "")
}

// ParseDate parses strings such as "THURSDAY, FEBRUARY 6, 2026". A leading
// weekday before the first comma is dropped.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if _, rest, ok := strings.Cut(s, ","); ok && strings.Contains(rest, ",") {
		s = strings.TrimSpace(rest)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// encode escapes like encodeURIComponent: spaces become %20.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
