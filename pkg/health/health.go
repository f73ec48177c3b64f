// Package health provides liveness and readiness endpoints backed by
// periodically executed checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc reports the health of one component: nil means healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	failed atomic.Bool
	last   atomic.Pointer[error]
}

func (c *check) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.fn(checkCtx)
	c.last.Store(&err)
	c.failed.Store(err != nil)
}

func (c *check) lastError() error {
	if p := c.last.Load(); p != nil {
		return *p
	}
	return nil
}

// Service runs registered checks on an interval and serves /livez-style and
// /readyz-style endpoints from their latest results.
type Service struct {
	mu        sync.Mutex
	liveness  []*check
	readiness []*check
	ready     atomic.Bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates an empty health service. Register checks, then call Start.
func New() *Service {
	return &Service{}
}

// AddLivenessCheck registers a check consulted by LiveEndpoint.
func (s *Service) AddLivenessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveness = append(s.liveness, &check{name: name, timeout: timeout, fn: fn})
}

// AddReadinessCheck registers a check consulted by ReadyEndpoint.
func (s *Service) AddReadinessCheck(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readiness = append(s.readiness, &check{name: name, timeout: timeout, fn: fn})
}

// SetReady flips the manual readiness gate. ReadyEndpoint reports unready
// while the gate is down regardless of check results; used to drain traffic
// before shutdown.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start runs every registered check once, then again on each interval tick,
// until ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.runAll(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runAll(ctx)
			}
		}
	}()
}

// Stop cancels the background check loop and waits for it to exit.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Service) runAll(ctx context.Context) {
	s.mu.Lock()
	checks := make([]*check, 0, len(s.liveness)+len(s.readiness))
	checks = append(checks, s.liveness...)
	checks = append(checks, s.readiness...)
	s.mu.Unlock()

	for _, c := range checks {
		c.run(ctx)
	}
}

// LiveEndpoint reports 200 when all liveness checks pass, 503 otherwise.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	checks := append([]*check(nil), s.liveness...)
	s.mu.Unlock()
	writeStatus(w, checks, true)
}

// ReadyEndpoint reports 200 when the readiness gate is up and all readiness
// checks pass, 503 otherwise.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	checks := append([]*check(nil), s.readiness...)
	s.mu.Unlock()
	writeStatus(w, checks, s.ready.Load())
}

func writeStatus(w http.ResponseWriter, checks []*check, gate bool) {
	healthy := gate
	details := make(map[string]string, len(checks))
	for _, c := range checks {
		if c.failed.Load() {
			healthy = false
			details[c.name] = c.lastError().Error()
		} else {
			details[c.name] = "ok"
		}
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": state,
		"checks": details,
	})
}
