package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishKeysByAccount(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	ev := events.NewTransactionEvent(events.TransactionCreated, 1, 9, 42, decimal.RequireFromString("-50.00"), nil)

	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "42" {
		t.Fatalf("key=%q want 42", msg.Key)
	}
	var got events.TransactionEvent
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TransactionID != 9 || !got.Amount.Equal(decimal.RequireFromString("-50")) {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	cause := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: cause}}
	err := p.Publish(context.Background(), events.TransactionEvent{})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}
