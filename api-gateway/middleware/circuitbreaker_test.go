package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)
	failing := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		cb.Call(failing)
	}

	assert.Equal(t, StateOpen, cb.GetState())
	err := cb.Call(func() error { return nil })
	assert.Error(t, err, "an open circuit rejects calls without executing them")
}

func TestCircuitBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	time.Sleep(20 * time.Millisecond)

	cb.Call(func() error { return errors.New("still down") })
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", 2, time.Minute)

	cb.Call(func() error { return errors.New("boom") })
	cb.Call(func() error { return nil })
	cb.Call(func() error { return errors.New("boom") })

	assert.Equal(t, StateClosed, cb.GetState(), "non-consecutive failures must not open the circuit")
}

func TestServiceFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/auth/login", "user"},
		{"/users/me", "user"},
		{"/admin/stats", "user"},
		{"/listings/latest", "listing"},
		{"/favorites/reconcile", "favorite"},
		{"/device/favorites", "favorite"},
		{"/health", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, serviceFromPath(tt.path), tt.path)
	}
}
