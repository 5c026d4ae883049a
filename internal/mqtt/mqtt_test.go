package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/presence-sensor/internal/logic"
)

func TestFormatPayloadHuman(t *testing.T) {
	verdict := logic.Verdict{
		Timestamp:   time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Present:     true,
		Transitions: 6,
	}

	data, err := FormatPayload(verdict, 1200)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var got Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Presence.Verdict != "HUMAN" {
		t.Errorf("verdict: got %q, want HUMAN", got.Presence.Verdict)
	}
	if got.Presence.Transitions != 6 {
		t.Errorf("transitions: got %d, want 6", got.Presence.Transitions)
	}
	if got.Presence.CO2PPM != 1200 {
		t.Errorf("co2_ppm: got %d, want 1200", got.Presence.CO2PPM)
	}
	if got.Presence.Timestamp != "2026-03-15T10:30:00Z" {
		t.Errorf("timestamp: got %q", got.Presence.Timestamp)
	}
}

func TestFormatPayloadNoHuman(t *testing.T) {
	verdict := logic.Verdict{
		Timestamp:   time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Present:     false,
		Transitions: 0,
	}

	data, err := FormatPayload(verdict, 400)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var got Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Presence.Verdict != "NO HUMAN" {
		t.Errorf("verdict: got %q, want NO HUMAN", got.Presence.Verdict)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var got SystemPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", got.System.Event)
	}
	if got.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", got.System.Reason)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"custom":true}}`)
	event := SystemEvent{RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	verdict := logic.Verdict{
		Timestamp:   time.Now(),
		Present:     true,
		Transitions: 4,
	}
	if err := f.Publish(verdict, 800); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(f.Verdicts) != 1 {
		t.Fatalf("verdicts: got %d, want 1", len(f.Verdicts))
	}
	if f.Verdicts[0].PPM != 800 {
		t.Errorf("ppm: got %d, want 800", f.Verdicts[0].PPM)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("payloads: got %d, want 1", len(f.Payloads))
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("down")

	if err := f.Publish(logic.Verdict{}, 0); err == nil {
		t.Error("expected publish error")
	}
	if len(f.Verdicts) != 0 {
		t.Error("failed publish must not record a verdict")
	}
}

func TestReplayQueuePushDrain(t *testing.T) {
	q := newReplayQueue(4)

	for i := 0; i < 3; i++ {
		q.push(queuedMsg{topic: "t", payload: []byte{byte(i)}})
	}
	if q.len() != 3 {
		t.Fatalf("len: got %d, want 3", q.len())
	}

	msgs, dropped := q.drain()
	if dropped != 0 {
		t.Errorf("dropped: got %d, want 0", dropped)
	}
	if len(msgs) != 3 {
		t.Fatalf("drained: got %d, want 3", len(msgs))
	}
	for i, m := range msgs {
		if m.payload[0] != byte(i) {
			t.Errorf("msg %d: got payload %d (order broken)", i, m.payload[0])
		}
	}
	if q.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", q.len())
	}
}

func TestReplayQueueOverflowDropsOldest(t *testing.T) {
	q := newReplayQueue(3)

	for i := 0; i < 5; i++ {
		q.push(queuedMsg{payload: []byte{byte(i)}})
	}

	msgs, dropped := q.drain()
	if dropped != 2 {
		t.Errorf("dropped: got %d, want 2", dropped)
	}
	if len(msgs) != 3 {
		t.Fatalf("drained: got %d, want 3", len(msgs))
	}
	want := []byte{2, 3, 4}
	for i, m := range msgs {
		if m.payload[0] != want[i] {
			t.Errorf("msg %d: got %d, want %d", i, m.payload[0], want[i])
		}
	}
}

func TestReplayQueueDrainEmpty(t *testing.T) {
	q := newReplayQueue(2)
	msgs, dropped := q.drain()
	if msgs != nil || dropped != 0 {
		t.Errorf("empty drain: got %v, %d", msgs, dropped)
	}
}

func TestReplayQueueReusableAfterDrain(t *testing.T) {
	q := newReplayQueue(2)
	q.push(queuedMsg{payload: []byte{1}})
	q.push(queuedMsg{payload: []byte{2}})
	q.push(queuedMsg{payload: []byte{3}}) // drops 1
	q.drain()

	q.push(queuedMsg{payload: []byte{9}})
	msgs, dropped := q.drain()
	if dropped != 0 {
		t.Errorf("dropped counter must reset on drain, got %d", dropped)
	}
	if len(msgs) != 1 || msgs[0].payload[0] != 9 {
		t.Errorf("unexpected drain result: %v", msgs)
	}
}
