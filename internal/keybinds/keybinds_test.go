package keybinds

import (
	"errors"
	"testing"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	ran := 0
	r.Register(1, "1", "jump to hero", func() error { ran++; return nil })
	boom := errors.New("boom")
	r.Register(2, "R", "retry", func() error { return boom })

	if handled, err := r.Execute(1); !handled || err != nil || ran != 1 {
		t.Errorf("Expected key 1 handled, got handled=%v err=%v ran=%d", handled, err, ran)
	}
	if handled, err := r.Execute(2); !handled || !errors.Is(err, boom) {
		t.Errorf("Expected wrapped boom, got handled=%v err=%v", handled, err)
	}
	if handled, _ := r.Execute(99); handled {
		t.Error("Expected unbound key to be unhandled")
	}
}

func TestHintsKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(300, "F12", "save snapshot", func() error { return nil })
	r.Register(49, "1", "hero", func() error { return nil })
	r.Register(300, "F12", "snapshot", func() error { return nil })

	hints := r.Hints()
	if len(hints) != 2 || hints[0] != "F12  snapshot" || hints[1] != "1    hero" {
		t.Errorf("Unexpected hints %q", hints)
	}
	if keys := r.Keys(); len(keys) != 2 || keys[0] != 300 {
		t.Errorf("Unexpected keys %v", keys)
	}
}
