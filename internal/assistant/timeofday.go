package assistant

import "time"

// TimeOfDay is a coarse partition of the 24-hour clock used to pick
// contextually appropriate greetings and follow-ups.
type TimeOfDay string

// Time-of-day buckets. TimeAny marks pools that apply regardless of hour.
const (
	Morning   TimeOfDay = "morning"   // [05:00, 12:00)
	Afternoon TimeOfDay = "afternoon" // [12:00, 17:00)
	Evening   TimeOfDay = "evening"   // [17:00, 05:00)
	TimeAny   TimeOfDay = "any"
)

// TimeOfDayAt buckets the wall-clock hour of t.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	default:
		return Evening
	}
}
