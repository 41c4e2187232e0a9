package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"intersify/internal/common"
	"intersify/internal/domain/application"
)

// EmailSender is the outbound mail collaborator.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Publisher is the realtime push collaborator.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload Payload) error
}

// Payload is the wire shape of a realtime notification.
type Payload struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id,omitempty"`
	Status        string `json:"status,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

const (
	EventStatusUpdate      = "APPLICATION_STATUS_UPDATE"
	EventApplicationUpdate = "APPLICATION_UPDATE"
)

// Event carries everything the dispatcher needs, pre-resolved by the engine
// so dispatch never touches the record store.
type Event struct {
	ApplicationID common.UUID
	Status        application.Status
	Notes         string
	StudentID     common.UUID
	StudentName   string
	StudentEmail  string
	CompanyID     common.UUID
	CompanyName   string
	PostingTitle  string
}

// Dispatcher fans a lifecycle transition out to email and realtime push.
// Every dispatch is fire-and-forget: failures are retried briefly, then
// logged and swallowed. Nothing here may affect the committed lifecycle
// state, so no method returns an error.
type Dispatcher struct {
	email   EmailSender
	push    Publisher
	timeout time.Duration
	logger  zerolog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(email EmailSender, push Publisher, timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{email: email, push: push, timeout: timeout, logger: logger}
}

// DispatchStatusUpdate notifies the student by email, the student's private
// channel, and the posting owner's broadcast channel. The three deliveries
// are independent; each failure is isolated.
func (d *Dispatcher) DispatchStatusUpdate(event Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		d.sendStatusEmail(ctx, event)

		studentMsg := "Your application status has been updated to " + string(event.Status)
		d.publish(ctx, StudentChannel(event.StudentID), Payload{
			Type:          EventStatusUpdate,
			Message:       studentMsg,
			ApplicationID: event.ApplicationID.String(),
			Status:        string(event.Status),
			Timestamp:     time.Now().UnixMilli(),
		})

		companyMsg := fmt.Sprintf("Application %s status updated to %s", event.ApplicationID, event.Status)
		d.publish(ctx, CompanyChannel(event.CompanyID), Payload{
			Type:          EventApplicationUpdate,
			Message:       companyMsg,
			ApplicationID: event.ApplicationID.String(),
			Status:        string(event.Status),
			Timestamp:     time.Now().UnixMilli(),
		})
	}()
}

// DispatchSubmitted announces a fresh application on the posting owner's
// broadcast channel.
func (d *Dispatcher) DispatchSubmitted(event Event) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.publish(ctx, CompanyChannel(event.CompanyID), Payload{
			Type:          EventApplicationUpdate,
			Message:       "New application for " + event.PostingTitle,
			ApplicationID: event.ApplicationID.String(),
			Status:        string(event.Status),
			Timestamp:     time.Now().UnixMilli(),
		})
	}()
}

// Wait blocks until all in-flight dispatches have finished. Used on
// shutdown to drain pending notifications, and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) sendStatusEmail(ctx context.Context, event Event) {
	if d.email == nil || event.StudentEmail == "" {
		return
	}
	body := renderStatusEmail(event)
	err := d.retry(ctx, func() error {
		return d.email.Send(ctx, event.StudentEmail, "Application Status Update - Intersify", body)
	})
	if err != nil {
		d.logger.Error().Err(err).
			Str("application_id", event.ApplicationID.String()).
			Str("to", event.StudentEmail).
			Msg("failed to send status update email")
	}
}

func (d *Dispatcher) publish(ctx context.Context, channel string, payload Payload) {
	if d.push == nil {
		return
	}
	err := d.retry(ctx, func() error {
		return d.push.Publish(ctx, channel, payload)
	})
	if err != nil {
		d.logger.Error().Err(err).
			Str("channel", channel).
			Str("application_id", payload.ApplicationID).
			Msg("failed to publish realtime notification")
	}
}

func (d *Dispatcher) retry(ctx context.Context, op func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(100*time.Millisecond),
		backoff.WithMaxInterval(time.Second),
	), 2), ctx)
	return backoff.Retry(op, policy)
}

func renderStatusEmail(event Event) string {
	notes := ""
	if event.Notes != "" {
		notes = "Notes: " + event.Notes
	}
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your application for the position of '%s' at %s has been updated.\n\n"+
			"New Status: %s\n"+
			"%s\n\n"+
			"%s\n\n"+
			"Best regards,\n"+
			"The Intersify Team",
		event.StudentName, event.PostingTitle, event.CompanyName,
		event.Status, StatusMessage(event.Status), notes)
}

// StudentChannel is the per-student private notification channel.
func StudentChannel(studentID common.UUID) string {
	return "student:" + studentID.String() + ":notifications"
}

// CompanyChannel is the per-company broadcast channel for application events.
func CompanyChannel(companyID common.UUID) string {
	return "company:" + companyID.String() + ":applications"
}
