package relay

import (
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	if !policy.ShouldRetry(errors.New("connection refused"), 1) {
		t.Error("expected connection error to be retryable")
	}

	if policy.ShouldRetry(errors.New("timeout"), 4) {
		t.Error("should not retry after max attempts")
	}

	if delay := policy.NextDelay(1); delay != 500*time.Millisecond {
		t.Errorf("expected 500ms delay, got %v", delay)
	}
	if delay := policy.NextDelay(2); delay != 1*time.Second {
		t.Errorf("expected 1s delay, got %v", delay)
	}
	if delay := policy.NextDelay(3); delay != 2*time.Second {
		t.Errorf("expected 2s delay, got %v", delay)
	}
}

func TestRetryPolicyRelayRejections(t *testing.T) {
	policy := DefaultRetryPolicy()

	if policy.ShouldRetry(errors.New("msg: invalid: bad signature"), 1) {
		t.Error("expected 'invalid' rejection to be non-retryable")
	}
	if policy.ShouldRetry(errors.New("msg: duplicate: already have this event"), 1) {
		t.Error("expected 'duplicate' rejection to be non-retryable")
	}
	if policy.ShouldRetry(errors.New("msg: restricted: not allowed"), 1) {
		t.Error("expected 'restricted' rejection to be non-retryable")
	}
	if policy.ShouldRetry(errors.New("blocked: banned pubkey"), 1) {
		t.Error("expected 'blocked' rejection to be non-retryable")
	}
}

func TestRetryPolicyNilError(t *testing.T) {
	policy := DefaultRetryPolicy()
	if policy.ShouldRetry(nil, 1) {
		t.Error("nil error should not be retryable")
	}
}

func TestRetryPolicyMaxDelayCap(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  10,
		InitialDelay: 1 * time.Second,
		Multiplier:   10.0,
		MaxDelay:     30 * time.Second,
	}

	if delay := policy.NextDelay(5); delay > policy.MaxDelay {
		t.Errorf("delay %v exceeds max delay %v", delay, policy.MaxDelay)
	}
}

func TestRetryPolicyExecute(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     10 * time.Millisecond,
	}

	calls := 0
	err := policy.Execute(func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicyExecuteStopsOnPermanentError(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     10 * time.Millisecond,
	}

	calls := 0
	err := policy.Execute(func() error {
		calls++
		return errors.New("invalid: bad event id")
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a permanent error", calls)
	}
}

func TestRetryPolicyExecuteExhaustsAttempts(t *testing.T) {
	policy := &RetryPolicy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     10 * time.Millisecond,
	}

	calls := 0
	err := policy.Execute(func() error {
		calls++
		return errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected the last error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
