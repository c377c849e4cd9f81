package timetable

import "sort"

// Ordering defaults. A pair of adjacent trips swaps only when enough
// visible rows agree, so a single out-of-line stop time cannot reorder
// a column, and the margin absorbs schedule jitter.
const (
	DefaultMaxPasses     = 8
	DefaultMarginMinutes = 2
	DefaultVoteThreshold = 4
)

// RowTime is one trip's time at one row. Revenue is false when both
// pickup and drop-off are barred at that stop.
type RowTime struct {
	Minutes int
	Revenue bool
}

// Column is one trip's timetable column: its time at every row it
// serves, keyed by station ID.
type Column struct {
	TripID   string
	Headsign string
	Times    map[string]RowTime
}

// OrderParams tunes the adjacent-swap ordering. Zero values take the
// package defaults.
type OrderParams struct {
	MaxPasses     int
	MarginMinutes int
	VoteThreshold int
}

func (p OrderParams) normalized() OrderParams {
	if p.MaxPasses <= 0 {
		p.MaxPasses = DefaultMaxPasses
	}
	if p.MarginMinutes <= 0 {
		p.MarginMinutes = DefaultMarginMinutes
	}
	if p.VoteThreshold <= 0 {
		p.VoteThreshold = DefaultVoteThreshold
	}
	return p
}

// OrderColumns orders the trips of one service date for display.
// Trips serving at least one core row with a revenue stop are ordered
// by bounded adjacent-swap voting over the visible rows; the rest are
// depot runs, appended afterwards in first-core-time order. The result
// is deterministic for a fixed input order and parameter set.
func OrderColumns(columns []Column, visibleRows []string, coreRows []string, params OrderParams) []string {
	params = params.normalized()

	var service, depot []Column
	for _, col := range columns {
		if servesCore(col, coreRows) {
			service = append(service, col)
		} else {
			depot = append(depot, col)
		}
	}

	orderServiceColumns(service, visibleRows, params)
	orderDepotColumns(depot, coreRows)

	out := make([]string, 0, len(columns))
	for _, col := range service {
		out = append(out, col.TripID)
	}
	for _, col := range depot {
		out = append(out, col.TripID)
	}
	return out
}

func servesCore(col Column, coreRows []string) bool {
	for _, row := range coreRows {
		if t, ok := col.Times[row]; ok && t.Revenue {
			return true
		}
	}
	return false
}

// orderServiceColumns runs bubble-style passes over adjacent pairs.
// Each visible row served by both trips votes to swap when the left
// trip is later than the right by more than the margin; the pair swaps
// once the votes reach the threshold. A full global ranking would cost
// O(n² · rows); this bounded scheme stays O(n · rows · passes) and
// yields a locally monotone order.
func orderServiceColumns(columns []Column, visibleRows []string, params OrderParams) {
	for pass := 0; pass < params.MaxPasses; pass++ {
		swapped := false
		for i := 0; i+1 < len(columns); i++ {
			votes := 0
			for _, row := range visibleRows {
				left, lok := columns[i].Times[row]
				right, rok := columns[i+1].Times[row]
				if lok && rok && left.Minutes > right.Minutes+params.MarginMinutes {
					votes++
				}
			}
			if votes >= params.VoteThreshold {
				columns[i], columns[i+1] = columns[i+1], columns[i]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
}

// orderDepotColumns sorts depot runs by their earliest time at a core
// row; a deadhead crossing the trunk with barred stops still carries a
// time there. Trips never touching a core row fall back to their
// earliest time anywhere, and input order breaks remaining ties.
func orderDepotColumns(columns []Column, coreRows []string) {
	key := func(col Column) int {
		best := -1
		for _, row := range coreRows {
			if t, ok := col.Times[row]; ok && (best < 0 || t.Minutes < best) {
				best = t.Minutes
			}
		}
		if best >= 0 {
			return best
		}
		for _, t := range col.Times {
			if best < 0 || t.Minutes < best {
				best = t.Minutes
			}
		}
		return best
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return key(columns[i]) < key(columns[j])
	})
}
