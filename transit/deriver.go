// Package transit derives durations and arrival times for transport legs
// from partial, independently edited inputs. Every function here is pure:
// route lookups happen in the caller and their results are passed in.
package transit

import (
	"fmt"
	"strconv"
	"strings"
)

// Derivation is the outcome of a duration computation. An empty DurationText
// means the inputs were missing or inconsistent and nothing should be shown.
type Derivation struct {
	DurationText string `json:"duration_text"`
	// Auto is set when both timezone offsets were known, i.e. the duration
	// was computed rather than assumed from wall-clock times.
	Auto bool `json:"auto"`
}

// Flight computes the elapsed duration of a flight_train leg.
//
// Elapsed minutes = (end + dayOffset*1440 - arrOffset) - (start - depOffset),
// with nil offsets treated as 0 (same timezone assumed). A negative result
// means the times and day offset are inconsistent; the duration is cleared
// rather than displayed negative.
func Flight(start, end string, depOffset, arrOffset *int, dayOffset int) Derivation {
	startMins, err := ParseClock(start)
	if err != nil {
		return Derivation{}
	}
	endMins, err := ParseClock(end)
	if err != nil {
		return Derivation{}
	}

	dOff, aOff := 0, 0
	if depOffset != nil {
		dOff = *depOffset
	}
	if arrOffset != nil {
		aOff = *arrOffset
	}

	startUTC := startMins - dOff
	endUTC := endMins + dayOffset*24*60 - aOff
	elapsed := endUTC - startUTC
	if elapsed < 0 {
		return Derivation{}
	}
	return Derivation{
		DurationText: FormatDuration(elapsed),
		Auto:         depOffset != nil && arrOffset != nil,
	}
}

// Road formats the known duration of a car_bus leg: external route minutes
// plus the user's buffer. It never derives an end time; that is the explicit
// ApplySuggested action.
func Road(routeMinutes, bufferMinutes int) Derivation {
	total := routeMinutes + bufferMinutes
	if total <= 0 {
		return Derivation{}
	}
	return Derivation{DurationText: FormatDuration(total)}
}

// Resolution is the outcome of resolving a public-transit route.
type Resolution struct {
	RouteMinutes  int    // raw leg duration, rounded up to minutes
	BufferMinutes int    // safety margin added on top of RouteMinutes
	DurationText  string // formatted inflated duration
	EndTime       string // empty when no start time was available
	DayOffset     int    // 1 when the suggested end time wrapped past midnight
}

// ResolveTransit inflates an externally supplied leg duration by a fixed 20%
// safety margin and, when a start time is known, suggests an end time. An
// end time that lands on an earlier hour than the start means the leg crossed
// midnight, so the arrival day offset becomes 1.
func ResolveTransit(rawSeconds int, start string) Resolution {
	if rawSeconds <= 0 {
		return Resolution{}
	}
	raw := (rawSeconds + 59) / 60
	inflated := (raw*12 + 9) / 10 // ceil(raw * 1.2)
	res := Resolution{
		RouteMinutes:  raw,
		BufferMinutes: inflated - raw,
		DurationText:  FormatDuration(inflated),
	}

	startMins, err := ParseClock(start)
	if err != nil {
		return res
	}
	endMins := (startMins + inflated) % (24 * 60)
	res.EndTime = FormatClock(endMins)
	if endMins/60 < startMins/60 {
		res.DayOffset = 1
	}
	return res
}

// ApplySuggested sets end = start + totalMinutes, wrapping at 24h, and
// reports whether the addition crossed midnight. Idempotent for fixed inputs.
func ApplySuggested(start string, totalMinutes int) (end string, dayOffset int, ok bool) {
	startMins, err := ParseClock(start)
	if err != nil || totalMinutes <= 0 {
		return "", 0, false
	}
	endMins := (startMins + totalMinutes) % (24 * 60)
	if endMins < startMins {
		dayOffset = 1
	}
	return FormatClock(endMins), dayOffset, true
}

// ParseClock parses "HH:MM" (seconds tolerated and ignored) into minutes
// since midnight.
func ParseClock(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(mins int) string {
	mins = ((mins % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// FormatDuration renders a minute count as "2h 30m".
func FormatDuration(mins int) string {
	if mins < 0 {
		return ""
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}
