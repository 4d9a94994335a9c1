package bus

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPublishConsumeInbound(t *testing.T) {
	mb := NewMessageBus()
	defer mb.Close()

	want := InboundMessage{ChannelID: "C1", Timestamp: "1000.00", Text: "hello"}
	if err := mb.PublishInbound(t.Context(), want); err != nil {
		t.Fatalf("PublishInbound() error: %v", err)
	}

	got, ok := mb.ConsumeInbound(t.Context())
	if !ok {
		t.Fatal("ConsumeInbound() returned not ok")
	}
	if got.ChannelID != want.ChannelID || got.Text != want.Text {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestPublishSubscribeOutbound(t *testing.T) {
	mb := NewMessageBus()
	defer mb.Close()

	if err := mb.PublishOutbound(t.Context(), OutboundMessage{ChannelID: "#c", Text: "alert"}); err != nil {
		t.Fatalf("PublishOutbound() error: %v", err)
	}

	got, ok := mb.SubscribeOutbound(t.Context())
	if !ok || got.Text != "alert" {
		t.Errorf("got %+v ok=%v, want the published message", got, ok)
	}
}

func TestPublishAfterClose(t *testing.T) {
	mb := NewMessageBus()
	mb.Close()

	if err := mb.PublishInbound(t.Context(), InboundMessage{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("PublishInbound() error = %v, want ErrBusClosed", err)
	}
	if err := mb.PublishOutbound(t.Context(), OutboundMessage{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("PublishOutbound() error = %v, want ErrBusClosed", err)
	}
}

func TestCloseUnblocksConsumers(t *testing.T) {
	mb := NewMessageBus()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := mb.ConsumeInbound(context.Background()); ok {
			t.Error("ConsumeInbound() should report not ok after close")
		}
	}()

	mb.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ConsumeInbound() did not unblock on close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	mb := NewMessageBus()
	mb.Close()
	mb.Close() // must not panic
}

func TestContextCancelUnblocksConsume(t *testing.T) {
	mb := NewMessageBus()
	defer mb.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if _, ok := mb.ConsumeInbound(ctx); ok {
		t.Error("ConsumeInbound() should report not ok on canceled context")
	}
}

func TestPublishBlocksAtCapacityUntilCancel(t *testing.T) {
	mb := NewMessageBusWithCapacity(1)
	defer mb.Close()

	if err := mb.PublishInbound(t.Context(), InboundMessage{Text: "first"}); err != nil {
		t.Fatalf("PublishInbound() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	if err := mb.PublishInbound(ctx, InboundMessage{Text: "second"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("PublishInbound() error = %v, want deadline exceeded at capacity", err)
	}
}

func TestHasImages(t *testing.T) {
	if (InboundMessage{}).HasImages() {
		t.Error("message without attachments reports images")
	}
	msg := InboundMessage{Images: []ImageAttachment{{MimeType: "image/png", Data: []byte{1}}}}
	if !msg.HasImages() {
		t.Error("message with attachments reports no images")
	}
}
