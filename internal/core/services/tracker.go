package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driving"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// Ensure TrackingController implements the interface.
var _ driving.TrackingService = (*TrackingController)(nil)

// maxBackoffFactor caps the extra retry delay added after consecutive
// retryable failures at eight scheduled intervals.
const maxBackoffFactor = 8

// subscriberBuffer is the per-observer snapshot channel capacity. A full
// channel drops the update for that observer instead of stalling the
// controller.
const subscriberBuffer = 8

// trackLogKeep bounds the snapshot history retained in the track store.
const trackLogKeep = 500

// TrackingController drives the position provider on a schedule, applies
// geocoding, and publishes position snapshots.
//
// It guarantees at most one outstanding position request: a scheduled
// tick that fires while a request is still in flight is coalesced
// (skipped), never queued. Results that resolve after Stop, or after a
// newer Start superseded them, are discarded via a generation counter.
type TrackingController struct {
	provider driven.PositionProvider
	resolver *GeocodeResolver
	trackLog driven.TrackStore

	mu          sync.Mutex
	cfg         domain.TrackingConfig
	state       domain.TrackingState
	current     *domain.PositionSnapshot
	tracking    bool
	inFlight    bool
	failures    int
	generation  uint64
	stopCh      chan struct{}
	wg          sync.WaitGroup
	subscribers []chan *domain.PositionSnapshot
}

// NewTrackingController creates a tracking controller.
// The trackLog is optional; when nil no history is recorded.
func NewTrackingController(
	provider driven.PositionProvider,
	resolver *GeocodeResolver,
	trackLog driven.TrackStore,
) *TrackingController {
	return &TrackingController{
		provider: provider,
		resolver: resolver,
		trackLog: trackLog,
		state:    domain.TrackingIdle,
	}
}

// Start begins scheduled tracking. Returns ErrTrackingActive when a
// live schedule is already running. A Denied session re-enters
// Requesting only through this call: the denied schedule is superseded
// and a fresh one launched.
func (t *TrackingController) Start(ctx context.Context, cfg domain.TrackingConfig) error {
	if cfg.Interval <= 0 {
		return domain.ErrInvalidInput
	}
	if cfg.Interval < domain.MinTrackingInterval {
		logger.Warn("Tracking interval %s is below the recommended floor of %s",
			cfg.Interval, domain.MinTrackingInterval)
	}

	t.mu.Lock()
	if t.tracking {
		if t.state != domain.TrackingDenied {
			t.mu.Unlock()
			return domain.ErrTrackingActive
		}
		// Supersede the denied schedule; any late results it still
		// produces are discarded by the generation bump below.
		close(t.stopCh)
	}
	t.cfg = cfg
	t.tracking = true
	t.failures = 0
	t.generation++
	gen := t.generation
	t.state = domain.TrackingRequesting
	t.stopCh = make(chan struct{})
	stopCh := t.stopCh
	t.mu.Unlock()

	t.wg.Add(1)
	go t.run(ctx, gen, stopCh)

	return nil
}

// Stop cancels the recurring schedule immediately. Idempotent. The state
// settles on the last-known-good: Active when a snapshot exists, Idle
// otherwise. In-flight requests are not aborted; their results are
// discarded on arrival.
func (t *TrackingController) Stop() {
	t.mu.Lock()
	if !t.tracking {
		t.mu.Unlock()
		return
	}
	t.tracking = false
	t.generation++
	close(t.stopCh)
	if t.current != nil {
		t.state = domain.TrackingActive
	} else {
		t.state = domain.TrackingIdle
	}
	t.mu.Unlock()

	t.wg.Wait()
}

// RequestOnce issues a single position request independent of the
// schedule. It does not reset the schedule's timer. If a request is
// already outstanding the call is coalesced and returns
// domain.ErrRequestInFlight.
func (t *TrackingController) RequestOnce(ctx context.Context) (*domain.PositionSnapshot, error) {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()

	return t.request(ctx, gen)
}

// State returns the current tracking state.
func (t *TrackingController) State() domain.TrackingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Current returns the most recent snapshot, or nil before the first
// successful request.
func (t *TrackingController) Current() *domain.PositionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Subscribe registers a snapshot observer.
func (t *TrackingController) Subscribe() <-chan *domain.PositionSnapshot {
	ch := make(chan *domain.PositionSnapshot, subscriberBuffer)
	t.mu.Lock()
	t.subscribers = append(t.subscribers, ch)
	t.mu.Unlock()
	return ch
}

// run is the scheduled tracking loop. An immediate request precedes the
// recurring timer. A failed tick never cancels the timer; consecutive
// retryable failures stretch the wait with a capped exponential backoff
// that resets on the next success.
func (t *TrackingController) run(ctx context.Context, gen uint64, stopCh chan struct{}) {
	defer t.wg.Done()

	t.tick(ctx, gen)

	for {
		if t.State() == domain.TrackingDenied {
			// Only an explicit Start re-prompts; park instead of
			// ticking against a refused provider.
			return
		}
		timer := time.NewTimer(t.nextDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stopCh:
			timer.Stop()
			return
		case <-timer.C:
			t.tick(ctx, gen)
		}
	}
}

// nextDelay returns the wait before the next scheduled tick: the
// configured interval, doubled per consecutive retryable failure, capped
// at maxBackoffFactor intervals.
func (t *TrackingController) nextDelay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	factor := 1
	for i := 0; i < t.failures && factor < maxBackoffFactor; i++ {
		factor *= 2
	}
	return t.cfg.Interval * time.Duration(factor)
}

// tick performs one scheduled position request. Denied sessions skip the
// provider entirely; only an explicit Start re-prompts.
func (t *TrackingController) tick(ctx context.Context, gen uint64) {
	t.mu.Lock()
	denied := t.state == domain.TrackingDenied
	t.mu.Unlock()
	if denied {
		return
	}

	if _, err := t.request(ctx, gen); err != nil && !errors.Is(err, domain.ErrRequestInFlight) {
		logger.Warn("Scheduled position request failed: %v", err)
	}
}

// request performs one position acquisition for the given generation.
func (t *TrackingController) request(ctx context.Context, gen uint64) (*domain.PositionSnapshot, error) {
	t.mu.Lock()
	if t.inFlight {
		t.mu.Unlock()
		return nil, domain.ErrRequestInFlight
	}
	t.inFlight = true
	cfg := t.cfg
	if t.state != domain.TrackingDenied {
		t.state = domain.TrackingRequesting
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight = false
		t.mu.Unlock()
	}()

	timeout := cfg.PositionTimeout
	if timeout <= 0 {
		timeout = domain.DefaultTrackingConfig().PositionTimeout
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fix, err := t.provider.RequestPosition(reqCtx, driven.PositionRequest{
		HighAccuracy: cfg.HighAccuracy,
		Timeout:      timeout,
		MaxCacheAge:  cfg.MaxCacheAge,
	})
	if err != nil {
		t.recordFailure(gen, err)
		return nil, err
	}

	snap := &domain.PositionSnapshot{
		Coordinate:     fix.Coordinate,
		AccuracyMeters: fix.AccuracyMeters,
		CapturedAt:     time.Now(),
	}
	if snap.AccuracyMeters < 0 {
		snap.AccuracyMeters = 0
	}

	// Resolution failure leaves the address empty; it never fails the
	// snapshot.
	if address, ok := t.resolver.ResolveAddress(ctx, fix.Coordinate); ok {
		snap.ResolvedAddress = address
	}

	if !t.publish(gen, snap) {
		return nil, domain.ErrStaleRefresh
	}

	t.record(ctx, snap)

	return snap, nil
}

// recordFailure applies the failure policy: permission refusal is
// terminal until a manual Start; unavailable and timeout keep the
// previous last-known-good state and count toward backoff.
func (t *TrackingController) recordFailure(gen uint64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		return
	}

	if errors.Is(err, domain.ErrPermissionDenied) {
		t.state = domain.TrackingDenied
		logger.Warn("Position permission denied; tracking inactive until restarted")
		return
	}

	if domain.Retryable(err) {
		t.failures++
	}
	if t.current != nil {
		t.state = domain.TrackingActive
	} else {
		t.state = domain.TrackingIdle
	}
}

// publish installs the snapshot and fans it out to subscribers. Returns
// false when the generation was superseded and the snapshot discarded.
func (t *TrackingController) publish(gen uint64, snap *domain.PositionSnapshot) bool {
	t.mu.Lock()
	if gen != t.generation {
		t.mu.Unlock()
		logger.Debug("Discarding stale position result")
		return false
	}
	t.current = snap
	t.state = domain.TrackingActive
	t.failures = 0
	subscribers := make([]chan *domain.PositionSnapshot, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.mu.Unlock()

	for _, ch := range subscribers {
		select {
		case ch <- snap:
		default:
			// Slow observer; drop rather than stall publication.
		}
	}
	return true
}

// record appends the snapshot to the optional track log.
func (t *TrackingController) record(ctx context.Context, snap *domain.PositionSnapshot) {
	if t.trackLog == nil {
		return
	}
	if err := t.trackLog.AppendSnapshot(ctx, snap); err != nil {
		logger.Warn("Failed to record snapshot: %v", err)
		return
	}
	if err := t.trackLog.Prune(ctx, trackLogKeep); err != nil {
		logger.Warn("Failed to prune track log: %v", err)
	}
}
