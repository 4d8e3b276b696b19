package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"esn-planner/core/constants"
	"esn-planner/core/errors"
)

// PresenceType categorises a day of a consultant's calendar. Holiday and
// weekend are derived from the date at query time and never stored.
type PresenceType string

const (
	PresenceAbsence  PresenceType = "absence"
	PresenceRTT      PresenceType = "rtt"
	PresenceRemote   PresenceType = "remote"
	PresenceTraining PresenceType = "training"
	PresenceOther    PresenceType = "other"

	// Derived only, never user-entered.
	PresenceHoliday PresenceType = "holiday"
	PresenceWeekend PresenceType = "weekend"
)

var symbols = map[PresenceType]string{
	PresenceAbsence:  "A",
	PresenceRTT:      "R",
	PresenceRemote:   "T",
	PresenceTraining: "F",
	PresenceOther:    "O",
	PresenceHoliday:  "JF",
	PresenceWeekend:  "W",
}

// Symbol returns the single-letter grid symbol for the type.
func (t PresenceType) Symbol() string {
	return symbols[t]
}

// Storable reports whether the type may be saved by a user.
func (t PresenceType) Storable() bool {
	switch t {
	case PresenceAbsence, PresenceRTT, PresenceRemote, PresenceTraining, PresenceOther:
		return true
	}
	return false
}

// Entry is one presence record for a (consultant, day) cell. Times are "HH:MM"
// strings, present together only when the entry does not cover the full day.
type Entry struct {
	Type        PresenceType `json:"type"`
	Description string       `json:"description"`
	StartTime   *string      `json:"startTime"`
	EndTime     *string      `json:"endTime"`
	IsFullDay   bool         `json:"isFullDay"`
}

// Validate checks the save-time invariants: a storable type, and for partial
// days both times present with start strictly before end.
func (e Entry) Validate() *errors.AppError {
	if !e.Type.Storable() {
		return errors.NewAppError(errors.ErrInvalidInput, "Type de présence invalide", nil)
	}
	if e.IsFullDay {
		return nil
	}
	if e.StartTime == nil || e.EndTime == nil {
		return errors.NewAppError(errors.ErrInvalidInput, "Les heures de début et de fin sont obligatoires", nil)
	}
	start, err := time.Parse(constants.TimeLayout, *e.StartTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "Heure de début invalide", err)
	}
	end, err := time.Parse(constants.TimeLayout, *e.EndTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "Heure de fin invalide", err)
	}
	if !start.Before(end) {
		return errors.NewAppError(errors.ErrInvalidInput, "L'heure de début doit précéder l'heure de fin", nil)
	}
	return nil
}

// UnmarshalJSON accepts both the structured form and the legacy bare
// type-string cell value, which is normalized to a full-day entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*e = Entry{Type: PresenceType(legacy), IsFullDay: true}
		return nil
	}

	type alias Entry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = Entry(a)
	return nil
}

// Map is the full presence collection, keyed "{consultantId}-{YYYY-MM-DD}".
type Map map[string]Entry

// Key builds the map key for a (consultant, day) cell. Time-of-day is ignored.
func Key(consultantID int, day time.Time) string {
	return fmt.Sprintf("%d-%s", consultantID, day.Format(constants.DateLayout))
}

// ParseKey splits a map key back into its consultant id and day.
func ParseKey(key string) (int, time.Time, error) {
	idx := strings.Index(key, "-")
	if idx <= 0 {
		return 0, time.Time{}, fmt.Errorf("presence: malformed key %q", key)
	}
	id, err := strconv.Atoi(key[:idx])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("presence: malformed key %q: %w", key, err)
	}
	day, err := time.Parse(constants.DateLayout, key[idx+1:])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("presence: malformed key %q: %w", key, err)
	}
	return id, day, nil
}

// Clone returns a shallow copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
