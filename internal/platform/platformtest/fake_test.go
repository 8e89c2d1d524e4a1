package platformtest

import (
	"errors"
	"testing"

	"github.com/1broseidon/seamless/internal/platform"
)

func TestFake_PushAfterCloseIsDropped(t *testing.T) {
	for _, name := range []string{"disconnect", "close"} {
		t.Run(name, func(t *testing.T) {
			f := New()
			if name == "close" {
				f.Close()
			} else {
				f.Disconnect()
			}
			f.Push(platform.Event{Kind: platform.EventOther})
			f.Configure(RootID, platform.Rect{})
			if f.Pending() != 0 {
				t.Fatalf("expected no queued events, got %d", f.Pending())
			}
			if _, err := f.WaitForEvent(); !errors.Is(err, platform.ErrConnectionClosed) {
				t.Fatalf("expected ErrConnectionClosed, got %v", err)
			}
		})
	}
}

func TestFake_SendWakeupAfterDisconnect(t *testing.T) {
	f := New()
	f.Disconnect()
	if err := f.SendWakeup(); !errors.Is(err, platform.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
	if closed, _ := f.Closed(); closed {
		t.Fatalf("Disconnect must not count as Close")
	}
}

func TestFake_SendWakeupAfterClosePanics(t *testing.T) {
	f := New()
	f.Close()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected SendWakeup after Close to panic")
		}
	}()
	f.SendWakeup()
}
