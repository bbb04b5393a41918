package cli

import (
	"context"
	"sync"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// mockTrackingService is a controllable TrackingService for command tests.
type mockTrackingService struct {
	mu      sync.Mutex
	snap    *domain.PositionSnapshot
	err     error
	state   domain.TrackingState
	started bool
	stopped bool
	updates chan *domain.PositionSnapshot
}

func newMockTrackingService() *mockTrackingService {
	return &mockTrackingService{
		state: domain.TrackingIdle,
		snap: &domain.PositionSnapshot{
			Coordinate:      domain.Coordinate{Lat: 28.6139, Lng: 77.209},
			AccuracyMeters:  12,
			CapturedAt:      time.Now(),
			ResolvedAddress: "Connaught Place, New Delhi",
		},
		updates: make(chan *domain.PositionSnapshot, 8),
	}
}

func (m *mockTrackingService) Start(_ context.Context, _ domain.TrackingConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	if m.err != nil {
		return m.err
	}
	m.state = domain.TrackingActive
	// Publish the snapshot so subscribers see an immediate update.
	select {
	case m.updates <- m.snap:
	default:
	}
	return nil
}

func (m *mockTrackingService) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTrackingService) RequestOnce(_ context.Context) (*domain.PositionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

func (m *mockTrackingService) State() domain.TrackingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockTrackingService) Current() *domain.PositionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *mockTrackingService) Subscribe() <-chan *domain.PositionSnapshot {
	return m.updates
}

// mockDiscoveryService serves canned records and records filter calls.
type mockDiscoveryService struct {
	mu         sync.Mutex
	records    []domain.ServiceRecord
	refreshErr error
	filter     domain.ServiceCategory
	query      string
	center     domain.Coordinate
	calls      []string
	directions []string
}

func newMockDiscoveryService() *mockDiscoveryService {
	return &mockDiscoveryService{
		records: []domain.ServiceRecord{
			{
				ID:         "p1",
				Name:       "Connaught Place Police Station",
				Category:   domain.CategoryPolice,
				Coordinate: domain.Coordinate{Lat: 28.6315, Lng: 77.2167},
				Address:    "Connaught Place, New Delhi",
				Phone:      "100",
				DistanceKm: 2.1,
			},
			{
				ID:         "h1",
				Name:       "Ram Manohar Lohia Hospital",
				Category:   domain.CategoryHospital,
				Coordinate: domain.Coordinate{Lat: 28.6256, Lng: 77.2037},
				Address:    "Baba Kharak Singh Marg",
				Phone:      "108",
				DistanceKm: 1.4,
			},
		},
	}
}

func (m *mockDiscoveryService) Refresh(_ context.Context, center domain.Coordinate, _ []domain.ServiceCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	return m.refreshErr
}

func (m *mockDiscoveryService) SetFilter(category string) {
	parsed, _ := domain.ParseCategory(category)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = parsed
}

func (m *mockDiscoveryService) SetQuery(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = text
}

func (m *mockDiscoveryService) ReRank(center domain.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
}

func (m *mockDiscoveryService) Visible() []domain.ServiceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	visible := make([]domain.ServiceRecord, 0, len(m.records))
	for i := range m.records {
		if m.records[i].Matches(m.filter, m.query) {
			visible = append(visible, m.records[i])
		}
	}
	domain.SortByDistance(visible)
	return visible
}

func (m *mockDiscoveryService) All() []domain.ServiceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ServiceRecord(nil), m.records...)
}

func (m *mockDiscoveryService) Call(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, id)
	return nil
}

func (m *mockDiscoveryService) Directions(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directions = append(m.directions, id)
	return nil
}

// setupTestServices wires mock services and returns a cleanup restoring
// the previous wiring.
func setupTestServices() (tracking *mockTrackingService, discovery *mockDiscoveryService, cleanup func()) {
	oldTracking := trackingService
	oldDiscovery := discoveryService
	oldConfig := trackingConfig
	oldCenter := fallbackCenter

	tracking = newMockTrackingService()
	discovery = newMockDiscoveryService()
	SetServices(tracking, discovery)
	SetTrackingConfig(domain.DefaultTrackingConfig())

	return tracking, discovery, func() {
		trackingService = oldTracking
		discoveryService = oldDiscovery
		trackingConfig = oldConfig
		fallbackCenter = oldCenter
	}
}
