// Package events publishes domain events (new inquiries, reviews, listings)
// for out-of-process consumers such as notification workers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/logger"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
	"github.com/nats-io/nats.go"
)

// Topics, published as <prefix>.<topic>.
const (
	InquiryCreated  = "inquiries.created"
	ReviewCreated   = "reviews.created"
	BusinessCreated = "businesses.created"
)

// Envelope wraps every payload on the wire.
type Envelope struct {
	Topic      string      `json:"topic"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
	Close()
}

// NATSPublisher publishes JSON envelopes on a core NATS connection.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

func NewNATSPublisher(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("gurujee-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Infof("nats reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, prefix: prefix}, nil
}

func Subject(prefix, topic string) string {
	if prefix == "" {
		return topic
	}
	return prefix + "." + topic
}

func encode(topic string, data interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Topic: topic, OccurredAt: time.Now().UTC(), Data: data})
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	subject := Subject(p.prefix, topic)
	b, err := encode(topic, data)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(subject, b); err != nil {
		metrics.EventsPublished.WithLabelValues(subject, "error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(subject, "ok").Inc()
	return nil
}

// Connected reports connection state for /ready.
func (p *NATSPublisher) Connected() bool { return p.nc.IsConnected() }

func (p *NATSPublisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

// Noop drops events; used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, topic string, data interface{}) error { return nil }
func (Noop) Close()                                                            {}

// Recorder keeps published envelopes in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Envelope
}

func (r *Recorder) Publish(ctx context.Context, topic string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Envelope{Topic: topic, OccurredAt: time.Now().UTC(), Data: data})
	return nil
}

func (r *Recorder) Close() {}

// Topics returns the recorded topics in publish order.
func (r *Recorder) Topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Topic
	}
	return out
}

func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Envelope(nil), r.events...)
}

// Emit publishes and logs failures; domain writes never fail because of events.
func Emit(ctx context.Context, p Publisher, topic string, data interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, data); err != nil {
		logger.Warnf("publish %s failed: %v", topic, err)
	}
}
