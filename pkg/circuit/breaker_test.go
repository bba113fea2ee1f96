package circuit

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

var errDelivery = errors.New("delivery failed")

func failing() error { return errDelivery }
func succeeding() error { return nil }

func TestBreaker_StartsClosed(t *testing.T) {
	breaker := NewBreaker("mail", DefaultConfig(), nil)

	if breaker.State() != StateClosed {
		t.Errorf("Expected initial state CLOSED, got %s", breaker.State())
	}
	if err := breaker.Execute(succeeding); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	config := Config{
		Threshold:        3,
		Timeout:          time.Hour,
		SuccessThreshold: 2,
		MaxHalfOpen:      1,
	}
	breaker := NewBreaker("mail", config, zap.NewNop())

	for i := 0; i < 3; i++ {
		if err := breaker.Execute(failing); err != errDelivery {
			t.Fatalf("call %d: expected delivery error, got %v", i, err)
		}
	}

	if breaker.State() != StateOpen {
		t.Fatalf("Expected state OPEN after %d failures, got %s", config.Threshold, breaker.State())
	}

	if err := breaker.Execute(succeeding); err != ErrCircuitOpen {
		t.Errorf("Expected ErrCircuitOpen while open, got %v", err)
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	config := Config{Threshold: 2, Timeout: time.Hour, SuccessThreshold: 1, MaxHalfOpen: 1}
	breaker := NewBreaker("mail", config, zap.NewNop())

	breaker.Execute(failing)
	breaker.Execute(succeeding)
	breaker.Execute(failing)

	if breaker.State() != StateClosed {
		t.Errorf("Expected state CLOSED after interleaved success, got %s", breaker.State())
	}
}

func TestBreaker_HalfOpenAfterTimeout(t *testing.T) {
	config := Config{
		Threshold:        2,
		Timeout:          time.Minute,
		SuccessThreshold: 2,
		MaxHalfOpen:      1,
	}
	breaker := NewBreaker("mail", config, zap.NewNop())

	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.Execute(failing)
	breaker.Execute(failing)
	if breaker.State() != StateOpen {
		t.Fatalf("Expected state OPEN, got %s", breaker.State())
	}

	current = current.Add(2 * time.Minute)

	// first probe passes and moves the breaker to half-open
	if err := breaker.Execute(succeeding); err != nil {
		t.Fatalf("Expected probe to pass after timeout, got %v", err)
	}
	if breaker.State() != StateHalfOpen {
		t.Fatalf("Expected state HALF_OPEN, got %s", breaker.State())
	}

	// second success closes it
	if err := breaker.Execute(succeeding); err != nil {
		t.Fatalf("Expected second probe to pass, got %v", err)
	}
	if breaker.State() != StateClosed {
		t.Errorf("Expected state CLOSED after %d successes, got %s", config.SuccessThreshold, breaker.State())
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	config := Config{Threshold: 1, Timeout: time.Minute, SuccessThreshold: 2, MaxHalfOpen: 1}
	breaker := NewBreaker("mail", config, zap.NewNop())

	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.Execute(failing)
	current = current.Add(2 * time.Minute)

	if err := breaker.Execute(failing); err != errDelivery {
		t.Fatalf("Expected probe to run, got %v", err)
	}
	if breaker.State() != StateOpen {
		t.Errorf("Expected failed probe to reopen circuit, got %s", breaker.State())
	}
}

func TestBreaker_Reset(t *testing.T) {
	config := Config{Threshold: 1, Timeout: time.Hour, SuccessThreshold: 1, MaxHalfOpen: 1}
	breaker := NewBreaker("mail", config, nil)

	breaker.Execute(failing)
	if breaker.State() != StateOpen {
		t.Fatal("Expected state OPEN")
	}

	breaker.Reset()
	if breaker.State() != StateClosed {
		t.Errorf("Expected state CLOSED after reset, got %s", breaker.State())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "CLOSED"},
		{StateOpen, "OPEN"},
		{StateHalfOpen, "HALF_OPEN"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.expected)
		}
	}
}
