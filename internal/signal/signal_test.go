package signal

import "testing"

func TestValueZeroAndStore(t *testing.T) {
	var v Value[int]
	if got := v.Load(); got != 0 {
		t.Errorf("Expected zero value before Store, got %d", got)
	}
	v.Store(7)
	v.Store(9)
	if got := v.Load(); got != 9 {
		t.Errorf("Expected latest value 9, got %d", got)
	}
}

func TestHubEmitOrderAndUnsubscribe(t *testing.T) {
	var h Hub[string]
	var calls []string
	unA := h.Subscribe(func(s string) { calls = append(calls, "a:"+s) })
	unB := h.Subscribe(func(s string) { calls = append(calls, "b:"+s) })

	h.Emit("x")
	if len(calls) != 2 || calls[0] != "a:x" || calls[1] != "b:x" {
		t.Fatalf("Expected [a:x b:x], got %v", calls)
	}

	unA()
	unA()
	h.Emit("y")
	if len(calls) != 3 || calls[2] != "b:y" {
		t.Errorf("Expected only b to receive y, got %v", calls)
	}
	if h.Len() != 1 {
		t.Errorf("Expected 1 listener, got %d", h.Len())
	}

	unB()
	h.Emit("z")
	if len(calls) != 3 {
		t.Errorf("Expected no calls after all unsubscribed, got %v", calls)
	}
}

func TestHubUnsubscribeDuringEmit(t *testing.T) {
	var h Hub[int]
	var second int
	var unB func()
	h.Subscribe(func(int) { unB() })
	unB = h.Subscribe(func(int) { second++ })

	h.Emit(1)
	if second != 0 {
		t.Errorf("Expected listener removed mid-emit to be skipped, got %d calls", second)
	}
}
