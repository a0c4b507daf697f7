package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_OpensAfterThreshold(t *testing.T) {
	cb := New(Settings{Name: "test", FailureThreshold: 2, Cooldown: time.Hour})
	boom := errors.New("downstream unavailable")

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return boom }), boom)
	}

	calls := 0
	err := cb.Execute(func() error { calls++; return nil })
	assert.ErrorIs(t, err, ErrOpen)
	assert.Zero(t, calls)
}

func TestExecute_RetriesAfterCooldown(t *testing.T) {
	cb := New(Settings{Name: "test", FailureThreshold: 1, Cooldown: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	require.ErrorIs(t, cb.Execute(func() error { return nil }), ErrOpen)

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.NoError(t, cb.Execute(func() error { return nil }))
}

func TestExecute_SuccessResetsFailures(t *testing.T) {
	cb := New(Settings{Name: "test", FailureThreshold: 2, Cooldown: time.Hour})

	require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	require.NoError(t, cb.Execute(func() error { return nil }))

	// One more failure must not open the breaker; the count restarted.
	require.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.NoError(t, cb.Execute(func() error { return nil }))
}
