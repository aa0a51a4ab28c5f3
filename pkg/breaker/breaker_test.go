package breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/library-service/pkg/breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	successfulService := func() error {
		return nil
	}
	failingService := func() error {
		return errors.New("service error")
	}

	cb := breaker.New(10, time.Second, 0.5, 2)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// trip the breaker
	for i := 0; i < 10; i++ {
		_ = cb.Call(failingService)
	}
	require.ErrorIs(t, cb.Call(successfulService), breaker.ErrOpenCB)

	// wait for half-open, then recover
	time.Sleep(time.Second + 100*time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Call(successfulService))
	}

	// closed again after recoveryRequests successes
	require.NoError(t, cb.Call(successfulService))

	cb.Reset()
	require.NoError(t, cb.Call(successfulService))
}
