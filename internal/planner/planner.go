// Package planner holds the pure itinerary computations: stop
// reordering, cost totals, date ranges and calendar projection.
// Nothing here touches the database or the network.
package planner

import (
	"errors"
	"time"

	"globetrotter-backend/internal/models"
)

const dateLayout = "2006-01-02"

// Validation errors for stops and activities.
var (
	ErrMissingStopID     = errors.New("stop id is required")
	ErrMissingCity       = errors.New("city is required")
	ErrMissingDates      = errors.New("start and end dates are required")
	ErrInvalidDateRange  = errors.New("end date is before start date")
	ErrDuplicateStopID   = errors.New("duplicate stop id")
	ErrMissingName       = errors.New("activity name is required")
	ErrMissingTime       = errors.New("activity time is required")
	ErrNegativeCost      = errors.New("activity cost must not be negative")
	ErrDuplicateActivity = errors.New("duplicate activity id within stop")
)

// MoveStop moves the stop at src to dst, preserving the relative
// order of everything else. Out-of-range indexes leave the list
// untouched. The input slice is not modified.
func MoveStop(stops []models.Stop, src, dst int) []models.Stop {
	out := make([]models.Stop, len(stops))
	copy(out, stops)
	if src < 0 || src >= len(out) || dst < 0 || dst >= len(out) {
		return out
	}
	moved := out[src]
	out = append(out[:src], out[src+1:]...)
	out = append(out[:dst], append([]models.Stop{moved}, out[dst:]...)...)
	return out
}

// TotalCost sums every activity cost across all stops. Activities
// without a cost count as zero. The result does not depend on the
// order of stops or activities.
func TotalCost(stops []models.Stop) float64 {
	var total float64
	for _, stop := range stops {
		for _, act := range stop.Activities {
			if act.Cost != nil {
				total += *act.Cost
			}
		}
	}
	return total
}

// DateRange returns the earliest start date and latest end date
// across all stops with parseable dates. Both results are nil when
// no stop carries a valid date pair.
func DateRange(stops []models.Stop) (*time.Time, *time.Time) {
	var min, max *time.Time
	for _, stop := range stops {
		start, err := time.Parse(dateLayout, stop.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, stop.EndDate)
		if err != nil {
			continue
		}
		if min == nil || start.Before(*min) {
			s := start
			min = &s
		}
		if max == nil || end.After(*max) {
			e := end
			max = &e
		}
	}
	return min, max
}

// ValidateStops runs ValidateStop over a whole list and rejects
// duplicate stop ids, which would collide in storage.
func ValidateStops(stops []models.Stop) error {
	seen := make(map[string]struct{}, len(stops))
	for _, stop := range stops {
		if err := ValidateStop(stop); err != nil {
			return err
		}
		if _, ok := seen[stop.ID]; ok {
			return ErrDuplicateStopID
		}
		seen[stop.ID] = struct{}{}
	}
	return nil
}

// ValidateStop checks the add-stop rules: the stop needs its
// client-assigned id, a city, and a parseable date pair whose end
// does not precede its start.
func ValidateStop(stop models.Stop) error {
	if stop.ID == "" {
		return ErrMissingStopID
	}
	if stop.City == "" {
		return ErrMissingCity
	}
	if stop.StartDate == "" || stop.EndDate == "" {
		return ErrMissingDates
	}
	start, err := time.Parse(dateLayout, stop.StartDate)
	if err != nil {
		return ErrMissingDates
	}
	end, err := time.Parse(dateLayout, stop.EndDate)
	if err != nil {
		return ErrMissingDates
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	seen := make(map[string]struct{}, len(stop.Activities))
	for _, act := range stop.Activities {
		if err := ValidateActivity(act); err != nil {
			return err
		}
		if _, ok := seen[act.ID]; ok {
			return ErrDuplicateActivity
		}
		seen[act.ID] = struct{}{}
	}
	return nil
}

// ValidateActivity checks the add-activity rules: name and time are
// required and the cost, when present, must not be negative.
func ValidateActivity(act models.Activity) error {
	if act.Name == "" {
		return ErrMissingName
	}
	if act.Time == "" {
		return ErrMissingTime
	}
	if act.Cost != nil && *act.Cost < 0 {
		return ErrNegativeCost
	}
	return nil
}
