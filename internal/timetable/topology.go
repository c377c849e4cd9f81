package timetable

import (
	"fmt"
	"math"
	"sort"
)

// CoreEdgeFrequencyThreshold is the share of trips an edge must reach
// for its endpoints to count as core stations.
const CoreEdgeFrequencyThreshold = 0.10

// Tier classifies a station within one route and direction.
type Tier string

const (
	TierCore      Tier = "core"
	TierPassenger Tier = "passenger"
	TierTail      Tier = "tail"
)

// Edge is a directed transition between consecutive stations of a trip.
type Edge struct {
	From string
	To   string
}

// RouteProfile is the derived topology of one route and direction:
// which stations form the trunk, how the rest classify, and the
// per-trip station sequences the row builder consumes.
type RouteProfile struct {
	RouteKey    string
	DirectionID int
	TotalTrips  int

	// CoreOrder lists core station IDs in canonical travel order.
	CoreOrder []string
	// Tiers classifies every station that appears on any trip.
	Tiers map[string]Tier
	// BoundaryScores holds, per non-core station, the highest frequency
	// among edges linking it to a core station.
	BoundaryScores map[string]float64
	// EdgeFrequencies is the share of trips containing each edge.
	EdgeFrequencies map[Edge]float64

	// StationOf maps stop IDs to their merged station IDs.
	StationOf map[string]string
	// StationNames maps station IDs to display names.
	StationNames map[string]string

	// TripIDs and TripStations hold, in input order, each trip and its
	// merged station sequence.
	TripIDs      []string
	TripStations [][]string

	Diagnostics []Diagnostic
}

// IsCore reports whether a station belongs to the trunk.
func (p *RouteProfile) IsCore(stationID string) bool {
	return p.Tiers[stationID] == TierCore
}

// BuildRouteProfile derives the topology for the given trips, which are
// expected to share one route key and direction. A call with no trips
// yields an empty profile and a diagnostic rather than an error.
func BuildRouteProfile(ds *Dataset, routeKey string, directionID int, trips []*Trip) *RouteProfile {
	profile := &RouteProfile{
		RouteKey:        routeKey,
		DirectionID:     directionID,
		TotalTrips:      len(trips),
		Tiers:           make(map[string]Tier),
		BoundaryScores:  make(map[string]float64),
		EdgeFrequencies: make(map[Edge]float64),
		StationOf:       make(map[string]string),
		StationNames:    make(map[string]string),
	}

	if len(trips) == 0 {
		profile.Diagnostics = append(profile.Diagnostics, Diagnostic{
			Kind:    DiagNoTrips,
			RouteID: routeKey,
			Message: fmt.Sprintf("no trips for route %q direction %d", routeKey, directionID),
		})
		return profile
	}

	profile.buildStations(ds, trips)
	profile.buildEdges()
	profile.detectCore()
	profile.classify(ds, trips)
	return profile
}

// buildStations decides which parent-station groups merge and produces
// the merged station sequence per trip. A group merges only when no
// trip visits it more than once; a group a trip passes through twice is
// a loop, and merging it would fold distinct visits into one row.
func (p *RouteProfile) buildStations(ds *Dataset, trips []*Trip) {
	groupOf := func(stopID string) string {
		if stop := ds.StopsByID[stopID]; stop != nil && stop.ParentStation != "" {
			return stop.ParentStation
		}
		return ""
	}

	mergeable := make(map[string]bool)
	for _, trip := range trips {
		perTrip := make(map[string]int)
		for _, stopID := range ds.StopSequence(trip.ID) {
			if group := groupOf(stopID); group != "" {
				perTrip[group]++
			}
		}
		for group, count := range perTrip {
			if _, seen := mergeable[group]; !seen {
				mergeable[group] = true
			}
			if count > 1 {
				mergeable[group] = false
			}
		}
	}

	stationID := func(stopID string) string {
		if group := groupOf(stopID); group != "" && mergeable[group] {
			return group
		}
		return stopID
	}

	for _, trip := range trips {
		seq := ds.StopSequence(trip.ID)
		stations := make([]string, len(seq))
		for i, stopID := range seq {
			st := stationID(stopID)
			stations[i] = st
			p.StationOf[stopID] = st
			if _, named := p.StationNames[st]; !named {
				p.StationNames[st] = p.stationName(ds, st, stopID)
			}
		}
		p.TripIDs = append(p.TripIDs, trip.ID)
		p.TripStations = append(p.TripStations, stations)
	}
}

func (p *RouteProfile) stationName(ds *Dataset, stationID, memberStopID string) string {
	if stop := ds.StopsByID[stationID]; stop != nil && stop.Name != "" {
		return stop.Name
	}
	if stop := ds.StopsByID[memberStopID]; stop != nil {
		return stop.Name
	}
	return stationID
}

// buildEdges counts each directed station transition once per trip and
// converts counts to shares of the trip total.
func (p *RouteProfile) buildEdges() {
	counts := make(map[Edge]int)
	for _, stations := range p.TripStations {
		seen := make(map[Edge]bool)
		for i := 0; i+1 < len(stations); i++ {
			edge := Edge{From: stations[i], To: stations[i+1]}
			if !seen[edge] {
				seen[edge] = true
				counts[edge]++
			}
		}
	}

	total := float64(p.TotalTrips)
	for edge, count := range counts {
		p.EdgeFrequencies[edge] = float64(count) / total
	}
}

// detectCore marks stations touched by a frequent edge as core and
// orders them by the most representative trip.
func (p *RouteProfile) detectCore() {
	core := make(map[string]bool)
	for edge, freq := range p.EdgeFrequencies {
		if freq >= CoreEdgeFrequencyThreshold {
			core[edge.From] = true
			core[edge.To] = true
		}
	}
	if len(core) == 0 {
		return
	}

	representative := p.representativeTrip()
	posInRep := make(map[string]int)
	for i, station := range representative {
		if _, seen := posInRep[station]; !seen {
			posInRep[station] = i
		}
	}

	earliest := make(map[string]int)
	for _, stations := range p.TripStations {
		for i, station := range stations {
			if prev, seen := earliest[station]; !seen || i < prev {
				earliest[station] = i
			}
		}
	}

	order := make([]string, 0, len(core))
	for station := range core {
		order = append(order, station)
		p.Tiers[station] = TierCore
	}
	sort.Slice(order, func(i, j int) bool {
		pi, iOK := posInRep[order[i]]
		pj, jOK := posInRep[order[j]]
		if !iOK {
			pi = math.MaxInt
		}
		if !jOK {
			pj = math.MaxInt
		}
		if pi != pj {
			return pi < pj
		}
		if earliest[order[i]] != earliest[order[j]] {
			return earliest[order[i]] < earliest[order[j]]
		}
		return order[i] < order[j]
	})
	p.CoreOrder = order
}

// representativeTrip returns the station sequence shared by the most
// trips, ties broken by first appearance.
func (p *RouteProfile) representativeTrip() []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	sequences := make(map[string][]string)

	for i, stations := range p.TripStations {
		key := patternKey(stations)
		if _, seen := counts[key]; !seen {
			firstSeen[key] = i
			sequences[key] = stations
		}
		counts[key]++
	}

	bestKey := ""
	bestCount := 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[key] < firstSeen[bestKey]) {
			bestKey = key
			bestCount = count
		}
	}
	return sequences[bestKey]
}

// classify assigns passenger or tail to every non-core station. Riding
// position between core stations wins first and is final; explicit
// no-service flags mark tails; tail membership then propagates along
// shared trips to the least fixed point; whatever remains is passenger.
func (p *RouteProfile) classify(ds *Dataset, trips []*Trip) {
	betweenCores := make(map[string]bool)
	for _, stations := range p.TripStations {
		firstCore := -1
		lastCore := -1
		for i, station := range stations {
			if p.Tiers[station] == TierCore {
				if firstCore < 0 {
					firstCore = i
				}
				lastCore = i
			}
		}
		if firstCore < 0 {
			continue
		}
		for i := firstCore + 1; i < lastCore; i++ {
			if p.Tiers[stations[i]] != TierCore {
				betweenCores[stations[i]] = true
			}
		}
	}

	flagged := make(map[string]bool)
	for _, trip := range trips {
		for _, st := range ds.StopTimesByTrip[trip.ID] {
			if st.PickupType == 1 || st.DropOffType == 1 {
				flagged[p.StationOf[st.StopID]] = true
			}
		}
	}

	tripsContaining := make(map[string][]int)
	for i, stations := range p.TripStations {
		seen := make(map[string]bool)
		for _, station := range stations {
			if !seen[station] {
				seen[station] = true
				tripsContaining[station] = append(tripsContaining[station], i)
			}
		}
	}

	var worklist []string
	for station := range tripsContaining {
		if p.Tiers[station] == TierCore {
			continue
		}
		switch {
		case betweenCores[station]:
			p.Tiers[station] = TierPassenger
		case flagged[station]:
			p.Tiers[station] = TierTail
			worklist = append(worklist, station)
		}
	}
	sort.Strings(worklist)

	for len(worklist) > 0 {
		tail := worklist[0]
		worklist = worklist[1:]
		for _, tripIdx := range tripsContaining[tail] {
			for _, station := range p.TripStations[tripIdx] {
				if _, decided := p.Tiers[station]; decided {
					continue
				}
				p.Tiers[station] = TierTail
				worklist = append(worklist, station)
			}
		}
	}

	for station := range tripsContaining {
		if _, decided := p.Tiers[station]; !decided {
			p.Tiers[station] = TierPassenger
		}
	}

	p.scoreBoundaries()
}

// scoreBoundaries records each non-core station's strongest link to the
// trunk.
func (p *RouteProfile) scoreBoundaries() {
	for edge, freq := range p.EdgeFrequencies {
		fromCore := p.Tiers[edge.From] == TierCore
		toCore := p.Tiers[edge.To] == TierCore
		if fromCore == toCore {
			continue
		}
		outsider := edge.From
		if fromCore {
			outsider = edge.To
		}
		if freq > p.BoundaryScores[outsider] {
			p.BoundaryScores[outsider] = freq
		}
	}
}
