package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API for event creation
type Client struct {
	tokenSource oauth2.TokenSource
}

// NewClient creates a calendar client using the given token source
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{tokenSource: tokenSource}
}

// InsertEvent creates an event on the user's primary calendar and
// returns the created event's ID and HTML link.
func (c *Client) InsertEvent(ctx context.Context, event *calendarapi.Event) (string, string, error) {
	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(c.tokenSource))
	if err != nil {
		return "", "", fmt.Errorf("failed to create calendar service: %w", err)
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return created.Id, created.HtmlLink, nil
}
