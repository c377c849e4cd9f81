package models

import (
	"time"

	"gridline.opentransit.org/internal/clock"
)

// ResponseModel is the envelope every API response uses.
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data,omitempty"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// EntryData wraps a single entry with its references.
type EntryData struct {
	Entry      interface{}     `json:"entry"`
	References ReferencesModel `json:"references"`
}

// ListData wraps a list with its references.
type ListData struct {
	LimitExceeded bool            `json:"limitExceeded"`
	List          interface{}     `json:"list"`
	References    ReferencesModel `json:"references"`
}

// ReferencesModel carries the entities referenced by a response body.
type ReferencesModel struct {
	Agencies []AgencyReference `json:"agencies"`
	Routes   []Route           `json:"routes"`
	Stops    []Stop            `json:"stops"`
}

// NewEmptyReferences returns references that serialize as empty arrays
// instead of nulls.
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Agencies: []AgencyReference{},
		Routes:   []Route{},
		Stops:    []Stop{},
	}
}

// ResponseCurrentTime returns the envelope timestamp in epoch
// milliseconds.
func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

// NewEntryResponse builds a 200 envelope around a single entry.
func NewEntryResponse(entry interface{}, references ReferencesModel, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(c),
		Data: EntryData{
			Entry:      entry,
			References: references,
		},
		Text:    "OK",
		Version: 2,
	}
}

// NewListResponse builds a 200 envelope around a list.
func NewListResponse(list interface{}, references ReferencesModel, limitExceeded bool, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(c),
		Data: ListData{
			LimitExceeded: limitExceeded,
			List:          list,
			References:    references,
		},
		Text:    "OK",
		Version: 2,
	}
}

// NewOKResponse builds a 200 envelope around an entry with no
// references.
func NewOKResponse(entry interface{}, c clock.Clock) ResponseModel {
	return NewEntryResponse(entry, NewEmptyReferences(), c)
}

// CurrentTimeData is the payload of the current-time endpoint.
type CurrentTimeData struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
}

// NewCurrentTimeData formats a point in time for the current-time
// endpoint.
func NewCurrentTimeData(t time.Time) CurrentTimeData {
	return CurrentTimeData{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
	}
}
