package gtfs

import (
	"sort"

	"github.com/tidwall/rtree"
	"gridline.opentransit.org/internal/timetable"
	"gridline.opentransit.org/internal/utils"
)

// stopIndex is an R-tree over stop coordinates, rebuilt per snapshot
// and read-only afterwards.
type stopIndex struct {
	tree rtree.RTreeG[*timetable.Stop]
}

func buildStopSpatialIndex(dataset *timetable.Dataset) *stopIndex {
	index := &stopIndex{}
	for _, stop := range dataset.StopsByID {
		if !stop.HasCoords {
			continue
		}
		point := [2]float64{stop.Lon, stop.Lat}
		index.tree.Insert(point, point, stop)
	}
	return index
}

// NearbyStop is a stop with its distance from a query point.
type NearbyStop struct {
	Stop     *timetable.Stop
	Distance float64
}

// StopsNear returns the stops within radiusMeters of the point, nearest
// first. Stops without coordinates are never indexed and never match.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) StopsNear(lat, lon, radiusMeters float64) []NearbyStop {
	if manager.stopSpatialIndex == nil || radiusMeters <= 0 {
		return nil
	}

	bounds := utils.CalculateBounds(lat, lon, radiusMeters)
	var found []NearbyStop
	manager.stopSpatialIndex.tree.Search(
		[2]float64{bounds.MinLon, bounds.MinLat},
		[2]float64{bounds.MaxLon, bounds.MaxLat},
		func(min, max [2]float64, stop *timetable.Stop) bool {
			distance := utils.Distance(lat, lon, stop.Lat, stop.Lon)
			if distance <= radiusMeters {
				found = append(found, NearbyStop{Stop: stop, Distance: distance})
			}
			return true
		})

	sort.Slice(found, func(i, j int) bool {
		if found[i].Distance != found[j].Distance {
			return found[i].Distance < found[j].Distance
		}
		return found[i].Stop.ID < found[j].Stop.ID
	})
	return found
}

// RoutesServingStops maps each given stop ID to the sorted route keys
// whose trips call there.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RoutesServingStops(stopIDs []string) map[string][]string {
	wanted := make(map[string]bool, len(stopIDs))
	for _, id := range stopIDs {
		wanted[id] = true
	}

	seen := make(map[string]map[string]bool)
	for _, trip := range manager.dataset.Trips {
		for _, st := range manager.dataset.StopTimesByTrip[trip.ID] {
			if !wanted[st.StopID] {
				continue
			}
			if seen[st.StopID] == nil {
				seen[st.StopID] = make(map[string]bool)
			}
			seen[st.StopID][trip.RouteID] = true
		}
	}

	result := make(map[string][]string, len(seen))
	for stopID, keys := range seen {
		sorted := make([]string, 0, len(keys))
		for key := range keys {
			sorted = append(sorted, key)
		}
		sort.Strings(sorted)
		result[stopID] = sorted
	}
	return result
}

// RoutesNear returns the route keys serving any stop within the radius.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) RoutesNear(lat, lon, radiusMeters float64) []string {
	nearby := manager.StopsNear(lat, lon, radiusMeters)
	if len(nearby) == 0 {
		return nil
	}

	stopIDs := make(map[string]bool, len(nearby))
	for _, ns := range nearby {
		stopIDs[ns.Stop.ID] = true
	}

	seen := make(map[string]bool)
	var keys []string
	for _, trip := range manager.dataset.Trips {
		if seen[trip.RouteID] {
			continue
		}
		for _, st := range manager.dataset.StopTimesByTrip[trip.ID] {
			if stopIDs[st.StopID] {
				seen[trip.RouteID] = true
				keys = append(keys, trip.RouteID)
				break
			}
		}
	}

	sort.Strings(keys)
	return keys
}
