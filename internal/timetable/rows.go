package timetable

import "sort"

// Row is one display row of a timetable: a station with its tier. Row
// order is fixed per route and direction; service dates only decide
// which rows are visible.
type Row struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
	Tier      Tier   `json:"tier"`
}

// RowList is the canonical, date-independent row order for one route
// and direction. It is built once from every trip of the profile and
// cached until the route or direction selection changes.
type RowList struct {
	RouteKey    string
	DirectionID int
	Rows        []Row
}

// StationIDs returns the station IDs in row order.
func (rl *RowList) StationIDs() []string {
	ids := make([]string, len(rl.Rows))
	for i, row := range rl.Rows {
		ids[i] = row.StationID
	}
	return ids
}

// branchPlacement accumulates where a non-core station was seen: which
// segment each occurrence fell into and its normalized position there.
type branchPlacement struct {
	stationID    string
	segmentHits  map[int]int
	positions    map[int][]float64
	firstSegment int
}

// BuildRowList derives the canonical row order from a route profile.
// Core stations appear in their canonical order; every non-core station
// is slotted into the segment before, between, or after the cores where
// its occurrences fall most often, ranked within the segment by the
// median of its normalized positions. The result does not depend on any
// service date.
func BuildRowList(profile *RouteProfile) *RowList {
	rl := &RowList{
		RouteKey:    profile.RouteKey,
		DirectionID: profile.DirectionID,
	}

	coreIndex := make(map[string]int, len(profile.CoreOrder))
	for i, station := range profile.CoreOrder {
		coreIndex[station] = i
	}
	// Segment s holds the stations between core[s-1] and core[s];
	// segment 0 is pre-core and segment len(core) is post-core.
	segmentCount := len(profile.CoreOrder) + 1

	placements := make(map[string]*branchPlacement)
	place := func(stationID string, segment int, position float64) {
		p := placements[stationID]
		if p == nil {
			p = &branchPlacement{
				stationID:    stationID,
				segmentHits:  make(map[int]int),
				positions:    make(map[int][]float64),
				firstSegment: segment,
			}
			placements[stationID] = p
		}
		p.segmentHits[segment]++
		p.positions[segment] = append(p.positions[segment], position)
		if segment < p.firstSegment {
			p.firstSegment = segment
		}
	}

	for _, stations := range profile.TripStations {
		corePositions := make([]int, 0, len(stations))
		for i, station := range stations {
			if _, isCore := coreIndex[station]; isCore {
				corePositions = append(corePositions, i)
			}
		}

		for i, station := range stations {
			if _, isCore := coreIndex[station]; isCore {
				continue
			}

			// Delimit the occurrence by its surrounding core stops in
			// this trip; a trip without any core stops counts as
			// post-core.
			prev, next := -1, len(stations)
			for _, cp := range corePositions {
				if cp < i {
					prev = cp
				}
				if cp > i {
					next = cp
					break
				}
			}

			segment := segmentCount - 1
			switch {
			case prev >= 0:
				segment = coreIndex[stations[prev]] + 1
			case next < len(stations):
				segment = coreIndex[stations[next]]
			}

			span := float64(next - prev)
			position := float64(i-prev) / span
			place(station, segment, position)
		}
	}

	bySegment := make([][]*branchPlacement, segmentCount)
	for _, p := range placements {
		bySegment[p.homeSegment()] = append(bySegment[p.homeSegment()], p)
	}

	appendBranches := func(segment int) {
		branches := bySegment[segment]
		sort.Slice(branches, func(i, j int) bool {
			mi := median(branches[i].positions[segment])
			mj := median(branches[j].positions[segment])
			if mi != mj {
				return mi < mj
			}
			ni := profile.StationNames[branches[i].stationID]
			nj := profile.StationNames[branches[j].stationID]
			if ni != nj {
				return ni < nj
			}
			return branches[i].stationID < branches[j].stationID
		})
		for _, p := range branches {
			rl.Rows = append(rl.Rows, Row{
				StationID: p.stationID,
				Name:      profile.StationNames[p.stationID],
				Tier:      profile.Tiers[p.stationID],
			})
		}
	}

	appendBranches(0)
	for i, station := range profile.CoreOrder {
		rl.Rows = append(rl.Rows, Row{
			StationID: station,
			Name:      profile.StationNames[station],
			Tier:      TierCore,
		})
		appendBranches(i + 1)
	}

	return rl
}

// homeSegment is the segment holding the majority of the station's
// occurrences, the earliest segment on ties.
func (p *branchPlacement) homeSegment() int {
	best := p.firstSegment
	bestHits := 0
	for segment, hits := range p.segmentHits {
		if hits > bestHits || (hits == bestHits && segment < best) {
			best = segment
			bestHits = hits
		}
	}
	return best
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
