package server

import (
	"testing"
	"time"
)

func TestWebLogger_Messages(t *testing.T) {
	tests := []struct {
		name          string
		format        string
		args          []interface{}
		expectMessage string
		expectLevel   string
	}{
		{"plain message", "Render complete\n", nil, "Render complete\n", "info"},
		{"formatted message", "Rendering %dx%d with %d samples...\n", []interface{}{40, 30, 8}, "Rendering 40x30 with 8 samples...\n", "info"},
		{"warning message", "Warning: %s\n", []interface{}{"slow render"}, "Warning: slow render\n", "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			logger := NewWebLogger("render-test", messageChan)

			logger.Printf(tt.format, tt.args...)

			select {
			case msg := <-messageChan:
				if msg.Message != tt.expectMessage {
					t.Errorf("Expected message '%s', got '%s'", tt.expectMessage, msg.Message)
				}
				if msg.Level != tt.expectLevel {
					t.Errorf("Expected level '%s', got '%s'", tt.expectLevel, msg.Level)
				}
				if msg.RenderID != "render-test" {
					t.Errorf("Expected render ID 'render-test', got '%s'", msg.RenderID)
				}
				if time.Since(msg.Timestamp) > time.Second {
					t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
				}
			case <-time.After(100 * time.Millisecond):
				t.Error("Timeout waiting for console message")
			}
		})
	}
}

func TestWebLogger_PreservesOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-order", messageChan)

	messages := []string{"first\n", "second\n", "third\n"}
	for _, msg := range messages {
		logger.Printf("%s", msg)
	}

	for i, expected := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != expected {
				t.Errorf("Message %d: expected '%s', got '%s'", i, expected, msg.Message)
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-full", messageChan)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			logger.Printf("message %d\n", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logger blocked on a full channel")
	}

	if len(messageChan) != 1 {
		t.Errorf("expected only the first message to be queued, got %d", len(messageChan))
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-nil", nil)
	logger.Printf("Test message with nil channel\n")
}
