package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// stubPositionProvider is a controllable PositionProvider for tests.
type stubPositionProvider struct {
	mu    sync.Mutex
	fix   *driven.PositionFix
	err   error
	calls int

	// gate, when set, blocks each request until released.
	gate chan struct{}
}

func (p *stubPositionProvider) RequestPosition(ctx context.Context, _ driven.PositionRequest) (*driven.PositionFix, error) {
	p.mu.Lock()
	p.calls++
	gate := p.gate
	fix, err := p.fix, p.err
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-ctx.Done():
			return nil, domain.ErrPositionTimeout
		case <-gate:
		}
	}
	if err != nil {
		return nil, err
	}
	return fix, nil
}

func (p *stubPositionProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// recordingTrackStore captures appended snapshots.
type recordingTrackStore struct {
	mu        sync.Mutex
	appended  []*domain.PositionSnapshot
	pruneKeep int
}

func (s *recordingTrackStore) AppendSnapshot(_ context.Context, snap *domain.PositionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended = append(s.appended, snap)
	return nil
}

func (s *recordingTrackStore) RecentSnapshots(_ context.Context, _ int) ([]domain.PositionSnapshot, error) {
	return nil, nil
}

func (s *recordingTrackStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneKeep = keep
	return nil
}

func testFix() *driven.PositionFix {
	return &driven.PositionFix{
		Coordinate:     domain.Coordinate{Lat: 28.6139, Lng: 77.209},
		AccuracyMeters: 12,
	}
}

func testConfig() domain.TrackingConfig {
	cfg := domain.DefaultTrackingConfig()
	cfg.Interval = 10 * time.Second // long enough that tests see only the immediate tick
	return cfg
}

// TestTrackingController_InitialState tests the idle starting state
func TestTrackingController_InitialState(t *testing.T) {
	tracker := NewTrackingController(&stubPositionProvider{fix: testFix()}, NewGeocodeResolver(nil, 0), nil)

	assert.Equal(t, domain.TrackingIdle, tracker.State())
	assert.Nil(t, tracker.Current())
}

// TestTrackingController_RequestOnce tests a single successful acquisition
func TestTrackingController_RequestOnce(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	snap, err := tracker.RequestOnce(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, domain.Coordinate{Lat: 28.6139, Lng: 77.209}, snap.Coordinate)
	assert.Equal(t, 12.0, snap.AccuracyMeters)
	assert.Empty(t, snap.ResolvedAddress)
	assert.Equal(t, domain.TrackingActive, tracker.State())
	assert.Same(t, snap, tracker.Current())
}

// TestTrackingController_RequestOnceResolvesAddress tests geocode integration
func TestTrackingController_RequestOnceResolvesAddress(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	resolver := NewGeocodeResolver(&stubGeocoder{address: "Connaught Place"}, time.Second)
	tracker := NewTrackingController(provider, resolver, nil)

	snap, err := tracker.RequestOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Connaught Place", snap.ResolvedAddress)
}

// TestTrackingController_RequestOnceClampsAccuracy tests the non-negative guarantee
func TestTrackingController_RequestOnceClampsAccuracy(t *testing.T) {
	provider := &stubPositionProvider{fix: &driven.PositionFix{
		Coordinate:     domain.DefaultCenter,
		AccuracyMeters: -3,
	}}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	snap, err := tracker.RequestOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, snap.AccuracyMeters)
}

// TestTrackingController_RequestOnceCoalesces tests the single-outstanding-request rule
func TestTrackingController_RequestOnceCoalesces(t *testing.T) {
	gate := make(chan struct{})
	provider := &stubPositionProvider{fix: testFix(), gate: gate}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := tracker.RequestOnce(context.Background())
		assert.NoError(t, err)
	}()

	// Wait until the first request is inside the provider.
	require.Eventually(t, func() bool { return provider.callCount() == 1 },
		time.Second, time.Millisecond)

	_, err := tracker.RequestOnce(context.Background())
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(gate)
	<-done
	assert.Equal(t, 1, provider.callCount())
}

// TestTrackingController_StartRejectsZeroInterval tests input validation
func TestTrackingController_StartRejectsZeroInterval(t *testing.T) {
	tracker := NewTrackingController(&stubPositionProvider{fix: testFix()}, NewGeocodeResolver(nil, 0), nil)

	err := tracker.Start(context.Background(), domain.TrackingConfig{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestTrackingController_StartPublishesImmediately tests the immediate first tick
func TestTrackingController_StartPublishesImmediately(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)
	updates := tracker.Subscribe()

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	defer tracker.Stop()

	select {
	case snap := <-updates:
		assert.Equal(t, domain.Coordinate{Lat: 28.6139, Lng: 77.209}, snap.Coordinate)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published after start")
	}
	assert.Equal(t, domain.TrackingActive, tracker.State())
}

// TestTrackingController_StartWhileTrackingRejected tests the live-schedule guard
func TestTrackingController_StartWhileTrackingRejected(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	defer tracker.Stop()

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, time.Millisecond)
	calls := provider.callCount()

	err := tracker.Start(context.Background(), testConfig())

	assert.ErrorIs(t, err, domain.ErrTrackingActive)
	assert.Equal(t, calls, provider.callCount())
}

// TestTrackingController_StopIsIdempotent tests repeated stops
func TestTrackingController_StopIsIdempotent(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	tracker.Stop()
	tracker.Stop()

	assert.NotEqual(t, domain.TrackingRequesting, tracker.State())
}

// TestTrackingController_StopKeepsLastKnownGood tests post-stop state
func TestTrackingController_StopKeepsLastKnownGood(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, time.Millisecond)
	tracker.Stop()

	assert.Equal(t, domain.TrackingActive, tracker.State())
	assert.NotNil(t, tracker.Current())
}

// TestTrackingController_StopBeforeFirstFixIsIdle tests stop without a snapshot
func TestTrackingController_StopBeforeFirstFixIsIdle(t *testing.T) {
	gate := make(chan struct{})
	provider := &stubPositionProvider{fix: testFix(), gate: gate}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	require.Eventually(t, func() bool { return provider.callCount() == 1 },
		time.Second, time.Millisecond)

	go tracker.Stop()
	// Let the in-flight request resolve after the stop; its result must
	// be discarded as stale.
	time.Sleep(10 * time.Millisecond)
	close(gate)

	require.Eventually(t, func() bool { return tracker.State() == domain.TrackingIdle },
		time.Second, time.Millisecond)
	assert.Nil(t, tracker.Current())
}

// TestTrackingController_PermissionDeniedIsTerminal tests the denied policy
func TestTrackingController_PermissionDeniedIsTerminal(t *testing.T) {
	provider := &stubPositionProvider{err: domain.ErrPermissionDenied}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	defer tracker.Stop()

	require.Eventually(t, func() bool { return tracker.State() == domain.TrackingDenied },
		time.Second, time.Millisecond)
	assert.Nil(t, tracker.Current())
}

// TestTrackingController_DeniedRecoversOnRestart tests explicit restart after denial
func TestTrackingController_DeniedRecoversOnRestart(t *testing.T) {
	provider := &stubPositionProvider{err: domain.ErrPermissionDenied}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	require.Eventually(t, func() bool { return tracker.State() == domain.TrackingDenied },
		time.Second, time.Millisecond)
	tracker.Stop()

	// Permission granted; a new Start must re-prompt.
	provider.mu.Lock()
	provider.err = nil
	provider.fix = testFix()
	provider.mu.Unlock()

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	defer tracker.Stop()

	require.Eventually(t, func() bool { return tracker.State() == domain.TrackingActive },
		time.Second, time.Millisecond)
	assert.NotNil(t, tracker.Current())
}

// TestTrackingController_DeniedRestartsWithoutStop tests re-start from a live denied schedule
func TestTrackingController_DeniedRestartsWithoutStop(t *testing.T) {
	provider := &stubPositionProvider{err: domain.ErrPermissionDenied}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	// Wait until the denied request has fully settled so the restarted
	// schedule's immediate tick is not coalesced against it.
	require.Eventually(t, func() bool {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return tracker.state == domain.TrackingDenied && !tracker.inFlight
	}, time.Second, time.Millisecond)

	// Permission granted; a second Start with no intervening Stop must
	// supersede the denied schedule and re-enter Requesting.
	provider.mu.Lock()
	provider.err = nil
	provider.fix = testFix()
	provider.mu.Unlock()

	require.NoError(t, tracker.Start(context.Background(), testConfig()))
	defer tracker.Stop()

	require.Eventually(t, func() bool { return tracker.State() == domain.TrackingActive },
		time.Second, time.Millisecond)
	assert.NotNil(t, tracker.Current())
}

// TestTrackingController_RetryableFailureKeepsLastGood tests transient failure handling
func TestTrackingController_RetryableFailureKeepsLastGood(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	first, err := tracker.RequestOnce(context.Background())
	require.NoError(t, err)

	provider.mu.Lock()
	provider.err = domain.ErrPositionUnavailable
	provider.mu.Unlock()

	_, err = tracker.RequestOnce(context.Background())
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.Equal(t, domain.TrackingActive, tracker.State())
	assert.Same(t, first, tracker.Current())
}

// TestTrackingController_NonRetryableFailureSkipsBackoff tests backoff classification
func TestTrackingController_NonRetryableFailureSkipsBackoff(t *testing.T) {
	provider := &stubPositionProvider{err: errors.New("provider exploded")}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)
	tracker.cfg = domain.TrackingConfig{Interval: time.Second}

	_, err := tracker.RequestOnce(context.Background())

	require.Error(t, err)
	assert.Equal(t, time.Second, tracker.nextDelay())

	provider.mu.Lock()
	provider.err = domain.ErrPositionUnavailable
	provider.mu.Unlock()

	_, err = tracker.RequestOnce(context.Background())

	require.Error(t, err)
	assert.Equal(t, 2*time.Second, tracker.nextDelay())
}

// TestTrackingController_BackoffGrowsAndCaps tests the retry delay policy
func TestTrackingController_BackoffGrowsAndCaps(t *testing.T) {
	tracker := NewTrackingController(&stubPositionProvider{}, NewGeocodeResolver(nil, 0), nil)
	tracker.cfg = domain.TrackingConfig{Interval: time.Second}

	tracker.failures = 0
	assert.Equal(t, time.Second, tracker.nextDelay())

	tracker.failures = 1
	assert.Equal(t, 2*time.Second, tracker.nextDelay())

	tracker.failures = 3
	assert.Equal(t, 8*time.Second, tracker.nextDelay())

	// Capped at eight intervals regardless of further failures.
	tracker.failures = 10
	assert.Equal(t, 8*time.Second, tracker.nextDelay())
}

// TestTrackingController_RecordsTrackLog tests track log appends and pruning
func TestTrackingController_RecordsTrackLog(t *testing.T) {
	store := &recordingTrackStore{}
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), store)

	snap, err := tracker.RequestOnce(context.Background())

	require.NoError(t, err)
	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.appended, 1)
	assert.Same(t, snap, store.appended[0])
	assert.Equal(t, trackLogKeep, store.pruneKeep)
}

// TestTrackingController_SlowSubscriberDoesNotBlock tests non-blocking fan-out
func TestTrackingController_SlowSubscriberDoesNotBlock(t *testing.T) {
	provider := &stubPositionProvider{fix: testFix()}
	tracker := NewTrackingController(provider, NewGeocodeResolver(nil, 0), nil)

	// Never read from this subscription; fill its buffer past capacity.
	tracker.Subscribe()

	for i := 0; i < subscriberBuffer+4; i++ {
		_, err := tracker.RequestOnce(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, domain.TrackingActive, tracker.State())
}
