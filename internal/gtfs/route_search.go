package gtfs

import (
	"sort"
	"strings"

	"github.com/OneBusAway/go-gtfs"
)

// normalizeSearchTerms lowercases and splits user input into terms.
func normalizeSearchTerms(input string) []string {
	return strings.Fields(strings.ToLower(input))
}

// SearchRoutes matches routes whose short or long name contains every
// term of the query, case-insensitively. Short-name matches rank before
// long-name-only matches; ties order by agency and route ID.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) SearchRoutes(input string, maxCount int) []*gtfs.Route {
	limit := maxCount
	if limit <= 0 {
		limit = 20
	}

	terms := normalizeSearchTerms(input)
	if len(terms) == 0 {
		return []*gtfs.Route{}
	}

	type match struct {
		route     *gtfs.Route
		shortName bool
	}
	var matches []match

	for i := range manager.gtfsData.Routes {
		route := &manager.gtfsData.Routes[i]
		shortName := strings.ToLower(route.ShortName)
		longName := strings.ToLower(route.LongName)

		all := true
		inShort := true
		for _, term := range terms {
			if !strings.Contains(shortName, term) {
				inShort = false
			}
			if !strings.Contains(shortName, term) && !strings.Contains(longName, term) {
				all = false
				break
			}
		}
		if all {
			matches = append(matches, match{route: route, shortName: inShort})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].shortName != matches[j].shortName {
			return matches[i].shortName
		}
		if matches[i].route.Agency.Id != matches[j].route.Agency.Id {
			return matches[i].route.Agency.Id < matches[j].route.Agency.Id
		}
		return matches[i].route.Id < matches[j].route.Id
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	routes := make([]*gtfs.Route, 0, len(matches))
	for _, m := range matches {
		routes = append(routes, m.route)
	}
	return routes
}
