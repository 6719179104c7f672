package ratelimit

import "testing"

func TestSessionLimiter_Burst(t *testing.T) {
	l := NewSessionLimiter(RateLimitConfig{EventsPerSecond: 0.001, BurstSize: 3})

	for i := 0; i < 3; i++ {
		if !l.Allow("a") {
			t.Fatalf("event %d rejected inside burst", i)
		}
	}
	if l.Allow("a") {
		t.Error("event past burst allowed")
	}
	if !l.Allow("b") {
		t.Error("sessions must not share a bucket")
	}
}

func TestSessionLimiter_SameLimiter(t *testing.T) {
	l := NewSessionLimiter(DefaultConfig())
	if l.GetLimiter("a") != l.GetLimiter("a") {
		t.Error("expected the same limiter for one session")
	}
	if l.Len() != 1 {
		t.Errorf("len: got %d want 1", l.Len())
	}
}

func TestSessionLimiter_Forget(t *testing.T) {
	l := NewSessionLimiter(RateLimitConfig{EventsPerSecond: 0.001, BurstSize: 1})
	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("second event allowed")
	}

	l.Forget("a")
	if l.Len() != 0 {
		t.Errorf("len: got %d want 0", l.Len())
	}
	if !l.Allow("a") {
		t.Error("forgotten session should start with a full bucket")
	}
}

func TestSessionLimiter_Disabled(t *testing.T) {
	l := NewSessionLimiter(RateLimitConfig{})
	for i := 0; i < 100; i++ {
		if !l.Allow("a") {
			t.Fatal("disabled limiter rejected an event")
		}
	}
}
