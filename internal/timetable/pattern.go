package timetable

import "strings"

// patternKeySeparator joins stop IDs into pattern map keys. The unit
// separator cannot appear in GTFS identifiers.
const patternKeySeparator = "\x1f"

// StopSequence returns the trip's stops ordered by sequence number. The
// result is memoized at dataset construction; a trip without stop times
// yields an empty sequence. Callers must not mutate the returned slice.
func (ds *Dataset) StopSequence(tripID string) []string {
	return ds.sequences[tripID]
}

// IsCircular reports whether a sequence starts and ends at the same
// stop. Single-stop sequences are not circular.
func IsCircular(seq []string) bool {
	return len(seq) >= 2 && seq[0] == seq[len(seq)-1]
}

// SequenceScore measures how well candidate matches reference, as the
// fraction of candidate stops found in reference in the same relative
// order. The scan is greedy: each candidate stop consumes the earliest
// remaining match in reference. Stops present only in the candidate are
// skipped without penalty, so a local detour does not zero the score.
// The result is in [0, 1]; a sequence scores 1 against itself, and an
// empty candidate scores 0.
func SequenceScore(candidate, reference []string) float64 {
	if len(candidate) == 0 {
		return 0
	}

	matched := 0
	ri := 0
	for _, stopID := range candidate {
		for j := ri; j < len(reference); j++ {
			if reference[j] == stopID {
				matched++
				ri = j + 1
				break
			}
		}
	}

	return float64(matched) / float64(len(candidate))
}

func patternKey(seq []string) string {
	return strings.Join(seq, patternKeySeparator)
}

func reversed(seq []string) []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[len(seq)-1-i] = s
	}
	return out
}

func sequencesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
