package main

import (
	"context"
	"os"

	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/config/file"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/intents"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/osm"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/position"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/storage/memory"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driven/storage/sqlite"
	"github.com/aegis-labs/aegis-cli/internal/adapters/driving/cli"
	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
	"github.com/aegis-labs/aegis-cli/internal/core/services"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	trackingCfg := file.TrackingSettings(configStore)
	discoveryCfg := file.DiscoverySettings(configStore)
	center := file.FallbackCenter(configStore)

	// Interval edits in config.toml apply on the next tracking start.
	watcher, err := file.NewWatcher(configStore, func(s *file.ConfigStore) {
		cli.SetTrackingConfig(file.TrackingSettings(s))
	})
	if err != nil {
		logger.Warn("config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	var trackLog driven.TrackStore
	var seeds driven.FacilityStore

	store, err := sqlite.NewStore("")
	if err != nil {
		// Degrade to in-memory seeds and no history rather than refusing
		// to start.
		logger.Warn("local store unavailable: %v", err)
		seeds = memory.NewFacilityStoreWithSeeds(defaultSeeds())
	} else {
		defer store.Close()
		trackLog = store.TrackStore()
		seeds = store.FacilityStore()
		ensureDefaultSeeds(seeds)
	}

	client := osm.NewClient()
	provider, err := buildPositionProvider(configStore, center)
	if err != nil {
		return err
	}

	resolver := services.NewGeocodeResolver(client, trackingCfg.GeocodeTimeout)
	tracker := services.NewTrackingController(provider, resolver, trackLog)
	discovery := services.NewServiceDiscoveryEngine(client, seeds, intents.NewSystemDispatcher(), discoveryCfg)

	cli.SetServices(tracker, discovery)
	cli.SetTrackingConfig(trackingCfg)
	cli.SetFallbackCenter(center)
	cli.SetFacilityStore(seeds)
	cli.SetTrackStore(trackLog)
	cli.SetVersion(version)

	return cli.Execute()
}

// buildPositionProvider selects the position source from configuration:
// a replay track file when position.replay_file is set, otherwise a
// static provider pinned to the fallback center.
func buildPositionProvider(configStore *file.ConfigStore, center domain.Coordinate) (driven.PositionProvider, error) {
	if path := configStore.GetString("position.replay_file"); path != "" {
		return position.NewReplayProvider(path)
	}

	accuracy := configStore.GetFloat("position.accuracy_m")
	if accuracy <= 0 {
		accuracy = 25
	}
	return position.NewStaticProvider(center, accuracy), nil
}

// defaultSeeds returns the built-in fixed facilities.
func defaultSeeds() []domain.Facility {
	return []domain.Facility{
		{
			ID:         "ncc-1",
			Name:       "Delhi NCC Headquarters",
			Category:   domain.CategoryFixedFacility,
			Coordinate: domain.Coordinate{Lat: 28.6562, Lng: 77.2410},
			Address:    "Red Fort, Delhi",
			Phone:      "+91-11-23011234",
		},
	}
}

// ensureDefaultSeeds installs the built-in facilities into an empty
// persistent store.
func ensureDefaultSeeds(store driven.FacilityStore) {
	ctx := context.Background()
	existing, err := store.ListFacilities(ctx)
	if err != nil || len(existing) > 0 {
		return
	}
	for _, facility := range defaultSeeds() {
		f := facility
		if err := store.SaveFacility(ctx, &f); err != nil {
			logger.Warn("failed to seed facility %s: %v", f.ID, err)
		}
	}
}
