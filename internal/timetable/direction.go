package timetable

import (
	"runtime"
	"sync"

	"gridline.opentransit.org/internal/utils"
)

// defaultScoreEpsilon is the window within which forward and reverse
// subsequence scores count as tied and the bearing tie-break applies.
const defaultScoreEpsilon = 1e-6

// Outcome records which inference path labeled a trip.
type Outcome string

const (
	OutcomeProvided    Outcome = "provided"
	OutcomeExact       Outcome = "exact"
	OutcomeSubsequence Outcome = "subsequence"
	OutcomeCircular    Outcome = "circular"
	OutcomeBearing     Outcome = "bearing"
	OutcomeFallback    Outcome = "fallback"
)

// Stats counts trips per inference outcome across one run.
type Stats struct {
	Provided    int `json:"provided"`
	Exact       int `json:"exact"`
	Subsequence int `json:"subsequence"`
	Circular    int `json:"circular"`
	Bearing     int `json:"bearing"`
	Fallback    int `json:"fallback"`
}

// Total returns the number of trips covered by the run.
func (s Stats) Total() int {
	return s.Provided + s.Exact + s.Subsequence + s.Circular + s.Bearing + s.Fallback
}

func (s *Stats) add(o Outcome) {
	switch o {
	case OutcomeProvided:
		s.Provided++
	case OutcomeExact:
		s.Exact++
	case OutcomeSubsequence:
		s.Subsequence++
	case OutcomeCircular:
		s.Circular++
	case OutcomeBearing:
		s.Bearing++
	case OutcomeFallback:
		s.Fallback++
	}
}

func (s *Stats) merge(other Stats) {
	s.Provided += other.Provided
	s.Exact += other.Exact
	s.Subsequence += other.Subsequence
	s.Circular += other.Circular
	s.Bearing += other.Bearing
	s.Fallback += other.Fallback
}

// InferOptions tunes one inference run.
type InferOptions struct {
	// Force relabels trips that already carry a direction. Without it
	// the run is idempotent: labeled trips keep their labels.
	Force bool
	// Workers bounds route-level parallelism. Zero means GOMAXPROCS.
	Workers int
	// ScoreEpsilon overrides the tie window. Zero means the default.
	ScoreEpsilon float64
}

// InferenceResult is the output of one InferDirections run.
type InferenceResult struct {
	Stats       Stats
	Outcomes    map[string]Outcome
	Diagnostics []Diagnostic
}

// InferDirections assigns a travel direction to every trip in the
// dataset, mutating Trip.DirectionID in place. Trips are grouped by
// route and routes are processed concurrently; no two routes share
// trips, so each worker writes disjoint state into its own output slot
// and the merged result is deterministic for a fixed input order.
//
// Per route: trips without stop times fall back to direction 0. Routes
// where every sequence is circular split by first-hop bearing only.
// Otherwise the most frequent pattern becomes the forward reference and
// its reversal the reverse reference; exact matches label directly,
// everything else scores against both references, and near-ties resolve
// by comparing end-to-end bearings. Trips already labeled count as
// provided and are left alone unless forced.
func InferDirections(ds *Dataset, opts InferOptions) *InferenceResult {
	epsilon := opts.ScoreEpsilon
	if epsilon <= 0 {
		epsilon = defaultScoreEpsilon
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	routeOrder := make([]string, 0)
	tripsByRoute := make(map[string][]*Trip)
	for _, trip := range ds.Trips {
		if _, seen := tripsByRoute[trip.RouteID]; !seen {
			routeOrder = append(routeOrder, trip.RouteID)
		}
		tripsByRoute[trip.RouteID] = append(tripsByRoute[trip.RouteID], trip)
	}

	slots := make([]routeInference, len(routeOrder))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = inferRoute(ds, tripsByRoute[routeOrder[i]], opts.Force, epsilon)
			}
		}()
	}
	for i := range routeOrder {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &InferenceResult{Outcomes: make(map[string]Outcome, len(ds.Trips))}
	for _, slot := range slots {
		result.Stats.merge(slot.stats)
		for tripID, outcome := range slot.outcomes {
			result.Outcomes[tripID] = outcome
		}
		result.Diagnostics = append(result.Diagnostics, slot.diagnostics...)
	}
	return result
}

type routeInference struct {
	stats       Stats
	outcomes    map[string]Outcome
	diagnostics []Diagnostic
}

func (ri *routeInference) record(tripID string, outcome Outcome) {
	ri.outcomes[tripID] = outcome
	ri.stats.add(outcome)
}

func inferRoute(ds *Dataset, trips []*Trip, force bool, epsilon float64) routeInference {
	ri := routeInference{outcomes: make(map[string]Outcome, len(trips))}

	assign := func(trip *Trip, direction int, outcome Outcome) {
		trip.DirectionID = direction
		trip.DirectionSet = true
		ri.record(trip.ID, outcome)
	}

	// Labeled trips keep their labels but still shape the references.
	pending := make([]*Trip, 0, len(trips))
	for _, trip := range trips {
		if trip.DirectionSet && !force {
			ri.record(trip.ID, OutcomeProvided)
			continue
		}
		pending = append(pending, trip)
	}
	if len(pending) == 0 {
		return ri
	}

	allCircular := true
	anySequence := false
	for _, trip := range trips {
		seq := ds.StopSequence(trip.ID)
		if len(seq) == 0 {
			continue
		}
		anySequence = true
		if !IsCircular(seq) {
			allCircular = false
		}
	}

	if anySequence && allCircular {
		for _, trip := range pending {
			seq := ds.StopSequence(trip.ID)
			if len(seq) == 0 {
				assign(trip, 0, OutcomeFallback)
				continue
			}
			bearing, ok := ds.bearingBetween(seq[0], seq[1])
			if !ok {
				assign(trip, 0, OutcomeFallback)
				continue
			}
			if bearing < 180 {
				assign(trip, 0, OutcomeCircular)
			} else {
				assign(trip, 1, OutcomeCircular)
			}
		}
		return ri
	}

	forward := referencePattern(ds, trips)
	reverse := reversed(forward)

	for _, trip := range pending {
		seq := ds.StopSequence(trip.ID)
		if len(seq) == 0 {
			assign(trip, 0, OutcomeFallback)
			continue
		}

		if sequencesEqual(seq, forward) {
			assign(trip, 0, OutcomeExact)
			continue
		}
		if sequencesEqual(seq, reverse) {
			assign(trip, 1, OutcomeExact)
			continue
		}

		forwardScore := SequenceScore(seq, forward)
		reverseScore := SequenceScore(seq, reverse)
		diff := forwardScore - reverseScore

		if diff > epsilon {
			assign(trip, 0, OutcomeSubsequence)
			continue
		}
		if diff < -epsilon {
			assign(trip, 1, OutcomeSubsequence)
			continue
		}

		tripBearing, tripOK := ds.bearingBetween(seq[0], seq[len(seq)-1])
		forwardBearing, forwardOK := ds.bearingBetween(forward[0], forward[len(forward)-1])
		reverseBearing, reverseOK := ds.bearingBetween(reverse[0], reverse[len(reverse)-1])
		if !tripOK || !forwardOK || !reverseOK {
			assign(trip, 0, OutcomeFallback)
			continue
		}

		if utils.CircularDelta(tripBearing, forwardBearing) <= utils.CircularDelta(tripBearing, reverseBearing) {
			assign(trip, 0, OutcomeBearing)
		} else {
			assign(trip, 1, OutcomeBearing)
		}
	}

	return ri
}

// referencePattern picks the route's most frequent non-empty sequence,
// breaking count ties in favor of the pattern seen first.
func referencePattern(ds *Dataset, trips []*Trip) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	sequences := make(map[string][]string)

	order := 0
	for _, trip := range trips {
		seq := ds.StopSequence(trip.ID)
		if len(seq) == 0 {
			continue
		}
		key := patternKey(seq)
		if _, seen := counts[key]; !seen {
			firstSeen[key] = order
			sequences[key] = seq
		}
		counts[key]++
		order++
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

// bearingBetween returns the bearing from one stop to another, or false
// when either stop is unknown or lacks coordinates.
func (ds *Dataset) bearingBetween(fromID, toID string) (float64, bool) {
	from := ds.StopsByID[fromID]
	to := ds.StopsByID[toID]
	if from == nil || to == nil || !from.HasCoords || !to.HasCoords {
		return 0, false
	}
	return utils.Bearing(from.Lat, from.Lon, to.Lat, to.Lon), true
}
