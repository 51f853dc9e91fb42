package planner

import (
	"time"

	"globetrotter-backend/internal/models"
)

// Event kinds produced by the calendar projection.
const (
	EventActivity = "activity"
	EventStay     = "stay"
)

// Event is a calendar entry projected from a stop or an activity.
// End is exclusive for stay events.
type Event struct {
	ID    string    `json:"id"`
	Kind  string    `json:"kind"`
	Title string    `json:"title"`
	City  string    `json:"city"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarEvents projects stops into calendar entries:
//
//   - one one-hour point event per activity, anchored at the stop's
//     start date combined with the activity's "HH:MM" time;
//   - one multi-day stay event per stop spanning
//     [startDate, endDate + 1 day) so the stay includes its end date.
//
// Stops or activities with unparseable dates or times are dropped
// rather than producing an error.
func CalendarEvents(stops []models.Stop) []Event {
	var events []Event
	for _, stop := range stops {
		start, startErr := time.Parse(dateLayout, stop.StartDate)

		if startErr == nil {
			for _, act := range stop.Activities {
				clock, err := time.Parse("15:04", act.Time)
				if err != nil {
					continue
				}
				at := time.Date(start.Year(), start.Month(), start.Day(),
					clock.Hour(), clock.Minute(), 0, 0, time.UTC)
				events = append(events, Event{
					ID:    act.ID,
					Kind:  EventActivity,
					Title: act.Name,
					City:  stop.City,
					Start: at,
					End:   at.Add(time.Hour),
				})
			}
		}

		end, endErr := time.Parse(dateLayout, stop.EndDate)
		if startErr != nil || endErr != nil {
			continue
		}
		events = append(events, Event{
			ID:    stop.ID,
			Kind:  EventStay,
			Title: stop.City,
			City:  stop.City,
			Start: start,
			End:   end.AddDate(0, 0, 1),
		})
	}
	return events
}
