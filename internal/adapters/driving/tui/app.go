package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driving"
)

// snapshotMsg carries a published position snapshot into the model.
type snapshotMsg struct {
	snapshot *domain.PositionSnapshot
}

// refreshedMsg reports a completed discovery refresh.
type refreshedMsg struct {
	err error
}

// App is the live view model. It implements tea.Model.
type App struct {
	tracking  driving.TrackingService
	discovery driving.DiscoveryService

	// ctx is the context for cancellation.
	ctx context.Context

	// updates is the tracking subscription feeding snapshot messages.
	updates <-chan *domain.PositionSnapshot

	styles *Styles

	// snapshot is the latest published position, nil before the first fix.
	snapshot *domain.PositionSnapshot

	// center is the coordinate services are ranked against.
	center domain.Coordinate

	// records is the visible ranked service set.
	records []domain.ServiceRecord

	// selected indexes records.
	selected int

	// filter is the active category filter, empty for all.
	filter string

	// queryInput captures the text filter while querying is true.
	queryInput textinput.Model
	querying   bool

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the live view around the given services. center is the
// ranking center used before the first position fix.
func NewApp(tracking driving.TrackingService, discovery driving.DiscoveryService, center domain.Coordinate) (*App, error) {
	if tracking == nil {
		return nil, fmt.Errorf("creating app: tracking service is required")
	}
	if discovery == nil {
		return nil, fmt.Errorf("creating app: discovery service is required")
	}

	input := textinput.New()
	input.Placeholder = "name or address"
	input.CharLimit = 64
	input.Width = 32

	return &App{
		tracking:   tracking,
		discovery:  discovery,
		ctx:        context.Background(),
		updates:    tracking.Subscribe(),
		styles:     DefaultStyles(),
		center:     center,
		queryInput: input,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("aegis - Live Safety View"),
		a.waitForSnapshot(),
		a.refresh(),
	)
}

// waitForSnapshot blocks on the tracking subscription and converts the
// next published snapshot into a message.
func (a *App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.ctx.Done():
			return nil
		case snap, ok := <-a.updates:
			if !ok {
				return nil
			}
			return snapshotMsg{snapshot: snap}
		}
	}
}

// refresh issues a discovery refresh around the current center.
func (a *App) refresh() tea.Cmd {
	center := a.center
	return func() tea.Msg {
		return refreshedMsg{err: a.discovery.Refresh(a.ctx, center, nil)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case snapshotMsg:
		a.snapshot = msg.snapshot
		a.center = msg.snapshot.Coordinate
		a.discovery.ReRank(a.center)
		a.reload()
		// Re-fetch around the new position, then wait for the next one.
		return a, tea.Batch(a.waitForSnapshot(), a.refresh())

	case refreshedMsg:
		a.err = msg.err
		a.reload()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.querying {
			return a.updateQuerying(msg)
		}
		return a.updateBrowsing(msg)
	}

	return a, nil
}

// updateQuerying handles keys while the text filter input is focused.
func (a *App) updateQuerying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.querying = false
		a.queryInput.Blur()
		a.queryInput.SetValue("")
		a.discovery.SetQuery("")
		a.reload()
		return a, nil
	case tea.KeyEnter:
		a.querying = false
		a.queryInput.Blur()
		return a, nil
	default:
		var cmd tea.Cmd
		a.queryInput, cmd = a.queryInput.Update(msg)
		a.discovery.SetQuery(a.queryInput.Value())
		a.reload()
		return a, cmd
	}
}

// updateBrowsing handles keys in the default list mode.
func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case "down", "j":
		if a.selected < len(a.records)-1 {
			a.selected++
		}
		return a, nil

	case "f":
		a.filter = nextFilter(a.filter)
		a.discovery.SetFilter(a.filter)
		a.reload()
		return a, nil

	case "/":
		a.querying = true
		a.queryInput.Focus()
		return a, nil

	case "r":
		return a, a.refresh()

	case "c":
		if rec := a.selectedRecord(); rec != nil {
			a.err = a.discovery.Call(rec.ID)
		}
		return a, nil

	case "d":
		if rec := a.selectedRecord(); rec != nil {
			a.err = a.discovery.Directions(rec.ID)
		}
		return a, nil
	}

	return a, nil
}

// nextFilter cycles all -> police -> hospital -> all.
func nextFilter(current string) string {
	switch current {
	case "":
		return string(domain.CategoryPolice)
	case string(domain.CategoryPolice):
		return string(domain.CategoryHospital)
	default:
		return ""
	}
}

// reload pulls the visible set and clamps the selection.
func (a *App) reload() {
	a.records = a.discovery.Visible()
	if a.selected >= len(a.records) {
		a.selected = len(a.records) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) selectedRecord() *domain.ServiceRecord {
	if a.selected < 0 || a.selected >= len(a.records) {
		return nil
	}
	return &a.records[a.selected]
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(a.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(a.viewServices())
	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())

	return b.String()
}

func (a *App) viewHeader() string {
	state := a.tracking.State()

	var position string
	switch {
	case a.snapshot != nil:
		position = a.snapshot.ShareText()
	case state == domain.TrackingDenied:
		position = a.styles.Error.Render("location permission denied")
	default:
		position = a.styles.Muted.Render("waiting for position...")
	}

	header := a.styles.Title.Render("Aegis") +
		a.styles.Muted.Render(fmt.Sprintf("  [%s]  ", state)) +
		a.styles.Normal.Render(position)

	if a.err != nil {
		header += "\n" + a.styles.Warning.Render(fmt.Sprintf("last refresh: %v", a.err))
	}
	return header
}

func (a *App) viewServices() string {
	var b strings.Builder

	label := "all services"
	if a.filter != "" {
		label = a.filter
	}
	filterLine := a.styles.Muted.Render("showing: " + label)
	if a.querying {
		filterLine += "  " + a.queryInput.View()
	} else if q := a.queryInput.Value(); q != "" {
		filterLine += a.styles.Muted.Render("  matching: " + q)
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")

	if len(a.records) == 0 {
		b.WriteString(a.styles.Muted.Render("  no services found nearby"))
		return b.String()
	}

	for i := range a.records {
		rec := &a.records[i]
		line := fmt.Sprintf("  %-28s %-9s %6.2f km  %s", truncate(rec.Name, 28), rec.Category, rec.DistanceKm, rec.Phone)
		if i == a.selected {
			line = a.styles.Selected.Render(line)
		} else {
			line = a.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (a *App) viewStatusBar() string {
	return a.styles.StatusBar.Render(
		"j/k move  f filter  / search  r refresh  c call  d directions  q quit",
	)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Run starts the TUI program.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Records returns the visible service set (for testing).
func (a *App) Records() []domain.ServiceRecord {
	return a.records
}

// Selected returns the selected index (for testing).
func (a *App) Selected() int {
	return a.selected
}

// Filter returns the active category filter (for testing).
func (a *App) Filter() string {
	return a.filter
}
