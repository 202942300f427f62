package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// WebhookPath is appended to the configured webhook base URL.
const WebhookPath = "/api/notifications/send"

// WebhookSender POSTs the message as JSON to {BaseURL}/api/notifications/send.
type WebhookSender struct {
	BaseURL string
	HTTP    *http.Client
}

// NewWebhookSender returns a sender for baseURL using http.DefaultClient.
func NewWebhookSender(baseURL string) *WebhookSender {
	return &WebhookSender{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

func (w *WebhookSender) Name() string { return "webhook" }

func (w *WebhookSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.BaseURL+WebhookPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

// amqpChannel is the part of *amqp.Channel the sender publishes through.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
}

// AMQPSender publishes persistent JSON messages to a durable queue through
// the default exchange. The connection is opened on first use and reopened
// on the next send after a failure.
type AMQPSender struct {
	URL   string
	Queue string

	open func(url, queue string) (amqpChannel, io.Closer, error)

	mu   sync.Mutex
	ch   amqpChannel
	conn io.Closer
}

// NewAMQPSender returns a sender for url; queue defaults to
// "huntschedule.notifications".
func NewAMQPSender(url, queue string) *AMQPSender {
	if queue == "" {
		queue = "huntschedule.notifications"
	}
	return &AMQPSender{URL: url, Queue: queue, open: openAMQP}
}

// openAMQP dials url, opens a channel and declares queue as durable.
func openAMQP(url, queue string) (amqpChannel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return ch, conn, nil
}

func (a *AMQPSender) Name() string { return "amqp" }

func (a *AMQPSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ch == nil || a.ch.IsClosed() {
		_ = a.reset()
		ch, conn, err := a.open(a.URL, a.Queue)
		if err != nil {
			return err
		}
		a.ch, a.conn = ch, conn
	}

	err = a.ch.PublishWithContext(ctx, "", a.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         m.Type,
		Body:         body,
	})
	if err != nil {
		_ = a.reset()
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close releases the connection. A later Send reopens it.
func (a *AMQPSender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reset()
}

func (a *AMQPSender) reset() error {
	var err error
	if a.conn != nil {
		err = a.conn.Close()
	}
	a.ch, a.conn = nil, nil
	return err
}

// LogSender writes messages to the global logger. Used when no sink is
// configured.
type LogSender struct{}

func (LogSender) Name() string { return "log" }

func (LogSender) Send(_ context.Context, m Message) error {
	ev := log.Info().
		Str("component", "notify").
		Str("type", m.Type).
		Str("user", m.UserName).
		Str("respawn", m.RespawnName).
		Str("slot", m.SlotTime).
		Str("period", m.PeriodName).
		Str("language", m.Language)
	if m.RejectionReason != nil {
		ev = ev.Str("reason", *m.RejectionReason)
	}
	ev.Msg("notification")
	return nil
}
