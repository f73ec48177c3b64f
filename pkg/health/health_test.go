package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpointStatus(fn http.HandlerFunc) int {
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec.Code
}

func TestService_ReadyGate(t *testing.T) {
	svc := New()

	assert.Equal(t, http.StatusServiceUnavailable, endpointStatus(svc.ReadyEndpoint))

	svc.SetReady(true)
	assert.Equal(t, http.StatusOK, endpointStatus(svc.ReadyEndpoint))

	svc.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, endpointStatus(svc.ReadyEndpoint))
}

func TestService_FailingCheck(t *testing.T) {
	svc := New()
	svc.SetReady(true)

	var healthy atomic.Bool
	healthy.Store(true)
	svc.AddReadinessCheck("db", time.Second, func(context.Context) error {
		if !healthy.Load() {
			return errors.New("connection refused")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx, 10*time.Millisecond)
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return endpointStatus(svc.ReadyEndpoint) == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	healthy.Store(false)
	require.Eventually(t, func() bool {
		return endpointStatus(svc.ReadyEndpoint) == http.StatusServiceUnavailable
	}, time.Second, 10*time.Millisecond)

	// Liveness is unaffected by readiness checks.
	assert.Equal(t, http.StatusOK, endpointStatus(svc.LiveEndpoint))
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(100000)(context.Background()))
	require.Error(t, GoroutineCountCheck(0)(context.Background()))
}
