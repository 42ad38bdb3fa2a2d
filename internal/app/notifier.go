// internal/app/notifier.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"invoice_reminder_bot/internal/domain/notification"
	"invoice_reminder_bot/internal/domain/reminder"
	domainWebhook "invoice_reminder_bot/internal/domain/webhook"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrTransport marks a webhook exchange that could not be completed.
var ErrTransport = errors.New("webhook transport failure")

// Notifier posts the reminder due today, if any, to the chat webhook.
type Notifier struct {
	rules    *reminder.RuleSet
	client   domainWebhook.Client
	identity notification.Identity
	location *time.Location
	now      func() time.Time
	out      io.Writer // receives the non-200 diagnostic line
	logger   logrus.FieldLogger
}

func NewNotifier(
	rules *reminder.RuleSet,
	client domainWebhook.Client,
	identity notification.Identity,
	location *time.Location,
	out io.Writer,
	logger logrus.FieldLogger,
) *Notifier {
	if location == nil {
		location = time.Local
	}
	return &Notifier{
		rules:    rules,
		client:   client,
		identity: identity,
		location: location,
		now:      time.Now,
		out:      out,
		logger:   logger,
	}
}

// WithClock replaces the time source; used to pin the calendar day.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// Run sends today's reminder. Days without a rule return nil without touching
// the network. A reply other than exactly 200 is printed, not returned; the only
// error is a wrapped ErrTransport.
func (n *Notifier) Run(ctx context.Context) error {
	day := n.now().In(n.location).Day()

	text, ok := n.rules.Lookup(day)
	if !ok {
		n.logger.WithField("day", day).Debug("No reminder scheduled for today.")
		return nil
	}

	log := n.logger.WithFields(logrus.Fields{
		"day":         day,
		"delivery_id": uuid.NewString(),
	})

	payload := notification.NewPayload(n.identity, text)
	resp, err := n.client.Send(ctx, payload)
	if err != nil {
		log.WithError(err).Error("Failed to deliver reminder.")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("Webhook rejected reminder.")
		fmt.Fprintf(n.out, "Error al enviar mensaje: %s\n", resp.Body)
		return nil
	}

	log.WithField("status", resp.StatusCode).Debug("Reminder sent.")
	return nil
}
