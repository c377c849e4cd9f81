// Package utils contains the geometry kernel and small helpers shared by
// the API layer: combined-ID handling and request parameter parsing.
package utils

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ExtractIDFromParams returns the {id} path value with any ".json"
// suffix removed.
func ExtractIDFromParams(r *http.Request) string {
	return strings.TrimSuffix(r.PathValue("id"), ".json")
}

// ValidateID rejects blank identifiers.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id is required")
	}
	return nil
}

// ValidateDate parses a YYYY-MM-DD service date.
func ValidateDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD: %q", date)
	}
	return t, nil
}

// FormCombinedID joins an agency ID and an entity ID into the combined
// "{agency}_{id}" wire form.
func FormCombinedID(agencyID, codeID string) string {
	return agencyID + "_" + codeID
}

// ExtractAgencyIDAndCodeID splits a combined "{agency}_{id}" identifier.
// The entity ID may itself contain underscores, so only the first one
// delimits.
func ExtractAgencyIDAndCodeID(combinedID string) (string, string, error) {
	agencyID, codeID, found := strings.Cut(combinedID, "_")
	if !found || agencyID == "" || codeID == "" {
		return "", "", fmt.Errorf("invalid combined id %q: expected {agencyID}_{id}", combinedID)
	}
	return agencyID, codeID, nil
}

// NullStringOrEmpty unwraps a sql.NullString.
func NullStringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// ParseFloatParam reads a float query parameter, returning ok=false when
// absent and an error message when malformed.
func ParseFloatParam(r *http.Request, name string, fieldErrors map[string][]string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fieldErrors[name] = append(fieldErrors[name], fmt.Sprintf("invalid float value: %q", raw))
		return 0, false
	}
	return val, true
}

// ParseIntParam reads an int query parameter, returning ok=false when
// absent and an error message when malformed.
func ParseIntParam(r *http.Request, name string, fieldErrors map[string][]string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrors[name] = append(fieldErrors[name], fmt.Sprintf("invalid integer value: %q", raw))
		return 0, false
	}
	return val, true
}
