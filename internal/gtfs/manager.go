package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/OneBusAway/go-gtfs"
	"gridline.opentransit.org/internal/logging"
	"gridline.opentransit.org/internal/timetable"
	"gridline.opentransit.org/timetabledb"
)

// Manager owns the parsed feed and everything derived from it. All
// snapshot fields are guarded by staticMutex: readers take RLock via
// the exported accessors, and a reload builds the replacement off to
// the side before swapping under the write lock.
type Manager struct {
	config      Config
	isLocalFile bool

	staticMutex       sync.RWMutex
	staticUpdateMutex sync.Mutex

	gtfsData    *gtfs.Static
	dataset     *timetable.Dataset
	inference   *timetable.InferenceResult
	cache       *timetable.DerivedCache
	agenciesMap map[string]*gtfs.Agency
	routesMap   map[string]*gtfs.Route
	// routeKeys maps feed route IDs to grouping keys; routesByKey holds
	// the feed routes behind each key.
	routeKeys        map[string]string
	routesByKey      map[string][]*gtfs.Route
	tripsByKey       map[tripGroupKey][]*timetable.Trip
	stopSpatialIndex *stopIndex
	regionBounds     *RegionBounds
	lastUpdated      time.Time
	isHealthy        bool

	Store *timetabledb.Client

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

type tripGroupKey struct {
	routeKey    string
	directionID int
}

// snapshot bundles everything a feed load derives, so a reload can
// build the whole replacement before taking the write lock.
type snapshot struct {
	gtfsData     *gtfs.Static
	dataset      *timetable.Dataset
	inference    *timetable.InferenceResult
	cache        *timetable.DerivedCache
	agenciesMap  map[string]*gtfs.Agency
	routesMap    map[string]*gtfs.Route
	routeKeys    map[string]string
	routesByKey  map[string][]*gtfs.Route
	tripsByKey   map[tripGroupKey][]*timetable.Trip
	spatialIndex *stopIndex
	regionBounds *RegionBounds
}

// InitGTFSManager loads the feed, derives directions and topology, and
// starts the periodic updater. The derived results are persisted to the
// store at GTFSDataPath.
func InitGTFSManager(config Config) (*Manager, error) {
	manager := &Manager{
		config:       config,
		isLocalFile:  !strings.HasPrefix(config.GtfsURL, "http"),
		shutdownChan: make(chan struct{}),
	}

	raw, err := rawGtfsData(config.GtfsURL, manager.isLocalFile, config)
	if err != nil {
		return nil, fmt.Errorf("error loading GTFS data: %w", err)
	}

	snap, err := buildSnapshot(raw, config)
	if err != nil {
		return nil, err
	}

	store, err := openStore(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create results store: %w", err)
	}
	manager.Store = store

	manager.applySnapshot(snap)

	if err := manager.persistSnapshot(context.Background(), raw, snap); err != nil {
		logging.LogError(slog.Default().With(slog.String("component", "gtfs_manager")),
			"Failed to persist derived results", err)
	}

	manager.wg.Add(1)
	go manager.updateStaticGTFS()

	return manager, nil
}

func openStore(config Config) (*timetabledb.Client, error) {
	dbPath := config.GTFSDataPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	return timetabledb.NewClient(timetabledb.NewConfig(dbPath, config.Env, config.Verbose))
}

// buildSnapshot parses the raw feed bytes and derives everything the
// serving paths read: the normalized dataset with inferred directions,
// lookup maps, the stop spatial index, region bounds, and an empty
// cache for the lazily built profiles and orders.
func buildSnapshot(raw []byte, config Config) (*snapshot, error) {
	logger := slog.Default().With(slog.String("component", "gtfs_manager"))

	staticData, err := gtfs.ParseStatic(raw, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	dataset, routeKeys := buildTimetableDataset(staticData, config.GroupRoutesByShortName)

	inferStart := time.Now()
	inference := timetable.InferDirections(dataset, timetable.InferOptions{})
	logging.LogOperation(logger, "directions_inferred",
		slog.Int("trips", inference.Stats.Total()),
		slog.Int("fallback", inference.Stats.Fallback),
		slog.Duration("duration", time.Since(inferStart)))

	agenciesMap, routesMap := buildLookupMaps(staticData)

	routesByKey := make(map[string][]*gtfs.Route)
	for i := range staticData.Routes {
		route := &staticData.Routes[i]
		routesByKey[routeKeys[route.Id]] = append(routesByKey[routeKeys[route.Id]], route)
	}

	tripsByKey := make(map[tripGroupKey][]*timetable.Trip)
	for _, trip := range dataset.Trips {
		key := tripGroupKey{routeKey: trip.RouteID, directionID: trip.DirectionID}
		tripsByKey[key] = append(tripsByKey[key], trip)
	}

	return &snapshot{
		gtfsData:     staticData,
		dataset:      dataset,
		inference:    inference,
		cache:        timetable.NewDerivedCache(),
		agenciesMap:  agenciesMap,
		routesMap:    routesMap,
		routeKeys:    routeKeys,
		routesByKey:  routesByKey,
		tripsByKey:   tripsByKey,
		spatialIndex: buildStopSpatialIndex(dataset),
		regionBounds: ComputeRegionBounds(staticData.Shapes, staticData.Stops),
	}, nil
}

func (manager *Manager) applySnapshot(snap *snapshot) {
	manager.staticMutex.Lock()
	defer manager.staticMutex.Unlock()

	manager.gtfsData = snap.gtfsData
	manager.dataset = snap.dataset
	manager.inference = snap.inference
	manager.cache = snap.cache
	manager.agenciesMap = snap.agenciesMap
	manager.routesMap = snap.routesMap
	manager.routeKeys = snap.routeKeys
	manager.routesByKey = snap.routesByKey
	manager.tripsByKey = snap.tripsByKey
	manager.stopSpatialIndex = snap.spatialIndex
	manager.regionBounds = snap.regionBounds
	manager.lastUpdated = time.Now()
	manager.isHealthy = true
}

// persistSnapshot saves trip directions, station tiers, and outcome
// counters. Profiles for every route and direction are built through
// the snapshot cache, which also warms it for the serving paths.
func (manager *Manager) persistSnapshot(ctx context.Context, raw []byte, snap *snapshot) error {
	var profiles []*timetable.RouteProfile
	for key := range snap.tripsByKey {
		profiles = append(profiles, profileFromSnapshot(snap, key))
	}

	return manager.Store.SaveDerivedResults(ctx, timetabledb.SaveParams{
		Feed:       raw,
		Source:     manager.config.GtfsURL,
		TripCount:  len(snap.dataset.Trips),
		RouteCount: len(snap.routesByKey),
		StopCount:  len(snap.dataset.StopsByID),
	}, snap.inference, profiles)
}

func profileFromSnapshot(snap *snapshot, key tripGroupKey) *timetable.RouteProfile {
	cacheKey := timetable.ProfileKey{RouteKey: key.routeKey, DirectionID: key.directionID}
	return snap.cache.Profile(cacheKey, func() *timetable.RouteProfile {
		return timetable.BuildRouteProfile(snap.dataset, key.routeKey, key.directionID, snap.tripsByKey[key])
	})
}

// buildLookupMaps creates O(1) lookup maps for agencies and routes.
func buildLookupMaps(data *gtfs.Static) (map[string]*gtfs.Agency, map[string]*gtfs.Route) {
	agencies := make(map[string]*gtfs.Agency, len(data.Agencies))
	for i := range data.Agencies {
		agencies[data.Agencies[i].Id] = &data.Agencies[i]
	}

	routes := make(map[string]*gtfs.Route, len(data.Routes))
	for i := range data.Routes {
		routes[data.Routes[i].Id] = &data.Routes[i]
	}
	return agencies, routes
}

// RLock acquires the snapshot read lock. Accessors documented as
// requiring it must run between RLock and RUnlock.
func (manager *Manager) RLock() {
	manager.staticMutex.RLock()
}

func (manager *Manager) RUnlock() {
	manager.staticMutex.RUnlock()
}

// GetAgencies returns the feed agencies.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) GetAgencies() []gtfs.Agency {
	return manager.gtfsData.Agencies
}

// GetStaticData returns the parsed feed of the current snapshot.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) GetStaticData() *gtfs.Static {
	return manager.gtfsData
}

// FindAgency looks up an agency by ID.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) FindAgency(id string) *gtfs.Agency {
	return manager.agenciesMap[id]
}

// FindRoute looks up a route by feed ID.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) FindRoute(id string) *gtfs.Route {
	return manager.routesMap[id]
}

// RoutesForKey returns the feed routes grouped under a route key, or
// nil when the key is unknown.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RoutesForKey(routeKey string) []*gtfs.Route {
	return manager.routesByKey[routeKey]
}

// RouteKeyFor resolves an ID that may be either a feed route ID or a
// grouping key.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RouteKeyFor(id string) (string, bool) {
	if _, ok := manager.routesByKey[id]; ok {
		return id, true
	}
	if key, ok := manager.routeKeys[id]; ok {
		return key, true
	}
	return "", false
}

// RouteKeys lists every grouping key in the snapshot.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RouteKeys() []string {
	keys := make([]string, 0, len(manager.routesByKey))
	for key := range manager.routesByKey {
		keys = append(keys, key)
	}
	return keys
}

// InferenceStats returns the outcome counters of the load's inference
// run.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) InferenceStats() timetable.Stats {
	return manager.inference.Stats
}

// Diagnostics returns the dataset and inference findings.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) Diagnostics() []timetable.Diagnostic {
	diags := append([]timetable.Diagnostic{}, manager.dataset.Diagnostics()...)
	return append(diags, manager.inference.Diagnostics...)
}

// CacheCounts reports the derived-cache sizes and lookup counters.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) CacheCounts() (profiles, rowLists, columns int, hits, misses uint64) {
	profiles, rowLists, columns = manager.cache.Counts()
	hits, misses = manager.cache.HitsMisses()
	return
}

// GetLastUpdated reports when the current snapshot was installed.
func (manager *Manager) GetLastUpdated() time.Time {
	manager.staticMutex.RLock()
	defer manager.staticMutex.RUnlock()
	return manager.lastUpdated
}

// IsHealthy reports whether a snapshot is installed and the store
// reachable.
func (manager *Manager) IsHealthy() bool {
	manager.staticMutex.RLock()
	defer manager.staticMutex.RUnlock()
	return manager.isHealthy && manager.gtfsData != nil
}

// IsReady reports whether the manager can serve timetables.
func (manager *Manager) IsReady() bool {
	manager.staticMutex.RLock()
	defer manager.staticMutex.RUnlock()
	return manager.isHealthy && manager.dataset != nil && len(manager.dataset.Trips) > 0
}

// Shutdown stops the updater goroutine and closes the store. Safe to
// call more than once.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()

		if manager.Store != nil {
			if err := manager.Store.Close(); err != nil {
				logging.LogError(slog.Default().With(slog.String("component", "gtfs_manager")),
					"Error closing results store", err)
			}
		}
	})
}
