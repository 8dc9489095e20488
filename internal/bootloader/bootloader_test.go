package bootloader

import (
	"context"
	"testing"

	"github.com/mpflash/mpflash/internal/types"
)

func TestEnterMethodNoneConfirmsImmediately(t *testing.T) {
	d := New()
	ok, err := d.Enter(context.Background(), types.Device{Serial: "/dev/null"}, MethodNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected MethodNone to confirm immediately")
	}
	if d.State() != InBootloader {
		t.Fatalf("state = %v, want InBootloader", d.State())
	}
}

func TestEnterMethodManualDoesNotConfirm(t *testing.T) {
	d := New()
	ok, err := d.Enter(context.Background(), types.Device{Serial: "/dev/null"}, MethodManual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("MethodManual should never self-confirm")
	}
}

func TestEnterUnknownMethodFails(t *testing.T) {
	d := New()
	ok, err := d.Enter(context.Background(), types.Device{Serial: "/dev/null"}, Method("bogus"))
	if err == nil {
		t.Fatalf("expected error for unknown method")
	}
	if ok {
		t.Fatalf("unknown method should not confirm")
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want Failed", d.State())
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Running:      "running",
		Entering:     "entering",
		InBootloader: "in_bootloader",
		Failed:       "failed",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
