package intents

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// Ensure SystemDispatcher implements the interface.
var _ driven.IntentDispatcher = (*SystemDispatcher)(nil)

// SystemDispatcher opens intent URLs with the platform opener
// (xdg-open on Linux, open on macOS, rundll32 on Windows).
type SystemDispatcher struct {
	// open launches a URL; replaced in tests.
	open func(url string) error
}

// NewSystemDispatcher creates a dispatcher using the platform opener.
func NewSystemDispatcher() *SystemDispatcher {
	return &SystemDispatcher{open: openURL}
}

// CallService dispatches a telephony intent for the given number.
func (d *SystemDispatcher) CallService(phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return
	}
	d.dispatch("tel:" + url.PathEscape(phone))
}

// GetDirections dispatches a navigation intent from one coordinate to
// another as a Google Maps directions link.
func (d *SystemDispatcher) GetDirections(from, to domain.Coordinate) {
	d.dispatch(DirectionsURL(from, to))
}

// DirectionsURL builds the Google Maps directions link between two
// coordinates.
func DirectionsURL(from, to domain.Coordinate) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%f,%f&destination=%f,%f",
		from.Lat, from.Lng, to.Lat, to.Lng,
	)
}

func (d *SystemDispatcher) dispatch(target string) {
	go func() {
		if err := d.open(target); err != nil {
			logger.Warn("intent dispatch failed for %s: %v", target, err)
		}
	}()
}

func openURL(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Start()
}
