// Package gcal is the optional external-calendar capability. It is an
// injected collaborator with an explicit signed-in/signed-out lifecycle;
// the scheduling engine runs fine without it.
package gcal

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"dayflow/internal/task"
)

// ErrSignedOut is returned by calendar operations before SignIn.
var ErrSignedOut = errors.New("calendar client is signed out")

// taskIDProperty is the private extended property linking an event back
// to its dayflow task.
const taskIDProperty = "dayflow_task_id"

// Client syncs scheduled tasks to one Google calendar.
type Client struct {
	calendarName string

	srv        *calendar.Service
	calendarID string
	signedIn   bool
}

// New creates a signed-out client for the named calendar.
func New(calendarName string) *Client {
	return &Client{calendarName: calendarName}
}

// SignedIn reports whether a calendar session is active.
func (c *Client) SignedIn() bool {
	return c.signedIn
}

// SignIn authorizes against Google and resolves the configured
// calendar's id. Signing in twice is a no-op.
func (c *Client) SignIn(ctx context.Context) error {
	if c.signedIn {
		return nil
	}

	scopes := []string{calendar.CalendarEventsScope, calendar.CalendarReadonlyScope}
	client, err := httpClient(ctx, scopes)
	if err != nil {
		return err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("unable to create calendar client: %w", err)
	}

	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	var calendarID string
	for _, item := range list.Items {
		if item.Summary == c.calendarName {
			calendarID = item.Id
			break
		}
	}
	if calendarID == "" {
		return fmt.Errorf("calendar %q not found", c.calendarName)
	}

	c.srv = srv
	c.calendarID = calendarID
	c.signedIn = true
	return nil
}

// SignOut drops the calendar session. The cached token stays on disk.
func (c *Client) SignOut() {
	c.srv = nil
	c.calendarID = ""
	c.signedIn = false
}

// PushTask creates or updates the event mirroring a scheduled task.
// Tasks with no scheduled start have nothing to mirror and are skipped.
func (c *Client) PushTask(t *task.Task) (*calendar.Event, error) {
	if !c.signedIn {
		return nil, ErrSignedOut
	}
	event, err := EventForTask(t)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	existing, err := c.findEvent(t.ID)
	if err != nil {
		return nil, fmt.Errorf("error searching for event: %w", err)
	}
	if existing != nil {
		return c.srv.Events.Patch(c.calendarID, existing.Id, event).Do()
	}
	return c.srv.Events.Insert(c.calendarID, event).Do()
}

// RemoveTask deletes the event mirroring a task, if one exists.
func (c *Client) RemoveTask(taskID int64) error {
	if !c.signedIn {
		return ErrSignedOut
	}
	existing, err := c.findEvent(taskID)
	if err != nil || existing == nil {
		return err
	}
	return c.srv.Events.Delete(c.calendarID, existing.Id).Do()
}

// findEvent looks up the event carrying the task's id in its private
// extended properties.
func (c *Client) findEvent(taskID int64) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%d", taskIDProperty, taskID)).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
