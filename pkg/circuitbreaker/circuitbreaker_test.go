package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 3, Timeout: time.Minute})
	failing := func() error { return errors.New("boom") }

	for i := 0; i < 3; i++ {
		assert.Error(t, cb.Execute(failing))
	}
	assert.Equal(t, "open", cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorContains(t, err, "circuit breaker test is open")
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.Equal(t, "open", cb.State())

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreakerResetsOnSuccess(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 2, Timeout: time.Minute})

	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.Equal(t, "closed", cb.State())
}
