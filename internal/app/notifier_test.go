package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"invoice_reminder_bot/internal/domain/notification"
	"invoice_reminder_bot/internal/domain/reminder"
	domainWebhook "invoice_reminder_bot/internal/domain/webhook"
	"invoice_reminder_bot/internal/infra/webhook"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = notification.Identity{
	Channel:  "soporteubiquo",
	Username: "Facturas-Bot",
	IconURL:  "https://example.com/icon.gif",
}

// recordingServer captures every request body and answers with a fixed reply.
type recordingServer struct {
	*httptest.Server
	mu     sync.Mutex
	bodies [][]byte
}

func newRecordingServer(t *testing.T, status int, reply string) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rs.mu.Lock()
		rs.bodies = append(rs.bodies, raw)
		rs.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) requests() [][]byte {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([][]byte(nil), rs.bodies...)
}

func onDay(day int) func() time.Time {
	return func() time.Time { return time.Date(2025, time.March, day, 10, 0, 0, 0, time.UTC) }
}

func newTestNotifier(url string, day int, out io.Writer) (*Notifier, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	n := NewNotifier(reminder.DefaultRuleSet(), webhook.NewHTTPClient(url, time.Second), testIdentity, time.UTC, out, logger)
	return n.WithClock(onDay(day)), hook
}

func TestRunSendsReminderOnRuleDays(t *testing.T) {
	tests := []struct {
		day  int
		text string
	}{
		{reminder.EarlyReminderDay, reminder.EarlyReminderMessage},
		{reminder.DeadlineDay, reminder.DeadlineMessage},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("day %d", tc.day), func(t *testing.T) {
			srv := newRecordingServer(t, http.StatusOK, "ok")
			var out bytes.Buffer
			n, _ := newTestNotifier(srv.URL, tc.day, &out)

			require.NoError(t, n.Run(context.Background()))

			reqs := srv.requests()
			require.Len(t, reqs, 1)
			assert.JSONEq(t, `{
				"channel": "soporteubiquo",
				"username": "Facturas-Bot",
				"icon_url": "https://example.com/icon.gif",
				"text": `+quote(tc.text)+`
			}`, string(reqs[0]))
			assert.Empty(t, out.String(), "a 200 reply prints nothing")
		})
	}
}

func TestRunSkipsOtherDays(t *testing.T) {
	for _, day := range []int{1, 10, 13, 31} {
		srv := newRecordingServer(t, http.StatusOK, "ok")
		var out bytes.Buffer
		n, _ := newTestNotifier(srv.URL, day, &out)

		require.NoError(t, n.Run(context.Background()))
		assert.Empty(t, srv.requests(), "day %d must not post", day)
		assert.Empty(t, out.String(), "day %d must not print", day)
	}
}

func TestRunReportsNonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusCreated, http.StatusNoContent} {
		reply := "server error"
		if status == http.StatusNoContent {
			reply = ""
		}
		srv := newRecordingServer(t, status, reply)
		var out bytes.Buffer
		n, hook := newTestNotifier(srv.URL, reminder.DeadlineDay, &out)

		require.NoError(t, n.Run(context.Background()), "status %d must not fail the run", status)
		assert.Equal(t, "Error al enviar mensaje: "+reply+"\n", out.String())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, status, hook.LastEntry().Data["status"])
	}
}

func TestRunIsRepeatable(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK, "ok")
	n, _ := newTestNotifier(srv.URL, reminder.EarlyReminderDay, io.Discard)

	require.NoError(t, n.Run(context.Background()))
	require.NoError(t, n.Run(context.Background()))

	reqs := srv.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, reqs[0], reqs[1])
}

func TestRunIdentityIsConstantAcrossMessages(t *testing.T) {
	client := &stubClient{}
	for _, day := range []int{reminder.EarlyReminderDay, reminder.DeadlineDay} {
		logger, _ := test.NewNullLogger()
		n := NewNotifier(reminder.DefaultRuleSet(), client, testIdentity, time.UTC, io.Discard, logger).WithClock(onDay(day))
		require.NoError(t, n.Run(context.Background()))
	}

	require.Len(t, client.sent, 2)
	for _, p := range client.sent {
		assert.Equal(t, testIdentity.Channel, p.Channel)
		assert.Equal(t, testIdentity.Username, p.Username)
		assert.Equal(t, testIdentity.IconURL, p.IconURL)
	}
	assert.NotEqual(t, client.sent[0].Text, client.sent[1].Text)
}

func TestRunReturnsTransportFailure(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	client := &stubClient{err: netErr}
	logger, hook := test.NewNullLogger()
	var out bytes.Buffer
	n := NewNotifier(reminder.DefaultRuleSet(), client, testIdentity, time.UTC, &out, logger).WithClock(onDay(reminder.EarlyReminderDay))

	err := n.Run(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, netErr)
	assert.Empty(t, out.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRunUsesConfiguredLocation(t *testing.T) {
	// 23:30 UTC on the 8th is already the 9th at UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	client := &stubClient{}
	logger, _ := test.NewNullLogger()
	n := NewNotifier(reminder.DefaultRuleSet(), client, testIdentity, loc, io.Discard, logger).
		WithClock(func() time.Time { return time.Date(2025, time.March, 8, 23, 30, 0, 0, time.UTC) })

	require.NoError(t, n.Run(context.Background()))
	require.Len(t, client.sent, 1)
	assert.Equal(t, reminder.EarlyReminderMessage, client.sent[0].Text)
}

type stubClient struct {
	sent []notification.Payload
	err  error
}

func (s *stubClient) Send(_ context.Context, p notification.Payload) (domainWebhook.Response, error) {
	if s.err != nil {
		return domainWebhook.Response{}, s.err
	}
	s.sent = append(s.sent, p)
	return domainWebhook.Response{StatusCode: http.StatusOK}, nil
}

func quote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
