package gtfs

import (
	"time"

	"github.com/OneBusAway/go-gtfs"
)

const serviceDateLayout = "20060102"

// serviceActiveOn evaluates one calendar entry for a service date:
// added dates win, removed dates lose, otherwise the weekday bit inside
// the date range decides.
func serviceActiveOn(service *gtfs.Service, date time.Time) bool {
	for _, removed := range service.RemovedDates {
		if sameServiceDate(removed, date) {
			return false
		}
	}
	for _, added := range service.AddedDates {
		if sameServiceDate(added, date) {
			return true
		}
	}

	if date.Before(service.StartDate) || date.After(service.EndDate) {
		return false
	}

	switch date.Weekday() {
	case time.Monday:
		return service.Monday
	case time.Tuesday:
		return service.Tuesday
	case time.Wednesday:
		return service.Wednesday
	case time.Thursday:
		return service.Thursday
	case time.Friday:
		return service.Friday
	case time.Saturday:
		return service.Saturday
	default:
		return service.Sunday
	}
}

func sameServiceDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ActiveTripIDsOn returns the set of trips running on a YYYYMMDD
// service date. An unparsable date yields an empty set; the derivation
// core never sees dates except through this filter.
// IMPORTANT: Caller must hold manager.RLock() before calling this method.
func (manager *Manager) ActiveTripIDsOn(date string) map[string]bool {
	parsed, err := time.Parse(serviceDateLayout, date)
	if err != nil {
		return map[string]bool{}
	}

	activeServices := make(map[string]bool, len(manager.gtfsData.Services))
	for i := range manager.gtfsData.Services {
		service := &manager.gtfsData.Services[i]
		if serviceActiveOn(service, parsed) {
			activeServices[service.Id] = true
		}
	}

	active := make(map[string]bool)
	for _, trip := range manager.dataset.Trips {
		if activeServices[trip.ServiceID] {
			active[trip.ID] = true
		}
	}
	return active
}
