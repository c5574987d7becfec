package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestPublishAndReceive(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicLock)
	if err != nil {
		t.Fatalf("Subscribe() unexpected error: %v", err)
	}
	defer sub.Close()

	if err := pub.Publish(TopicLock, "updated", LockStatus{Modules: 3}); err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}

	select {
	case event := <-sub.Events():
		if event.Topic != TopicLock || event.Type != "updated" {
			t.Errorf("unexpected event %+v", event)
		}
		var status LockStatus
		if err := json.Unmarshal(event.Data, &status); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if status.Modules != 3 {
			t.Errorf("Modules = %d, want 3", status.Modules)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestLastEventReplayedToNewSubscriber(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	for i := 1; i <= 3; i++ {
		if err := pub.Publish(TopicCheck, "updated", CheckStatus{Unsatisfied: i}); err != nil {
			t.Fatalf("Publish() unexpected error: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicCheck)
	if err != nil {
		t.Fatalf("Subscribe() unexpected error: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		// Only the most recent event is replayed
		if event.Version != 3 {
			t.Errorf("replayed version = %d, want 3", event.Version)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for replayed event")
	}

	select {
	case event := <-sub.Events():
		t.Errorf("unexpected second replayed event %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestVersionsIncrementPerTopic(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	_ = pub.Publish(TopicLock, "updated", LockStatus{})
	_ = pub.Publish(TopicLock, "updated", LockStatus{})
	_ = pub.Publish(TopicCheck, "updated", CheckStatus{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lockSub, _ := pub.Subscribe(ctx, TopicLock)
	checkSub, _ := pub.Subscribe(ctx, TopicCheck)

	if event := <-lockSub.Events(); event.Version != 2 {
		t.Errorf("lock version = %d, want 2", event.Version)
	}
	if event := <-checkSub.Events(); event.Version != 1 {
		t.Errorf("check version = %d, want 1", event.Version)
	}
}

func TestPublishAfterClose(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish(TopicLock, "updated", LockStatus{}); err == nil {
		t.Error("expected error publishing to a closed publisher")
	}
	if _, err := pub.Subscribe(context.Background(), TopicLock); err == nil {
		t.Error("expected error subscribing to a closed publisher")
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	event := Event{Topic: TopicLock, Type: "updated", Data: json.RawMessage(`{"modules":1}`), Version: 1}

	if err := WriteSSE(&buf, event); err != nil {
		t.Fatalf("WriteSSE() unexpected error: %v", err)
	}

	out := buf.String()
	if !bytes.HasPrefix(buf.Bytes(), []byte("data: ")) {
		t.Errorf("expected data: prefix, got %q", out)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n\n")) {
		t.Errorf("expected blank-line terminator, got %q", out)
	}
}
