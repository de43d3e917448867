package eudr

import (
	"time"
)

// Windows computes the date boundaries for a check made on today, with a
// recent window of days calendar days.
func Windows(today time.Time, days int) DateWindow {
	return DateWindow{
		Cutoff:      Cutoff,
		RecentStart: today.AddDate(0, 0, -days).Format(DateFormat),
		RecentEnd:   today.Format(DateFormat),
	}
}

// Date-only bounds are widened to whole days so both ends stay inclusive.
func startOfDay(d string) string {
	return d + "T00:00:00Z"
}

func endOfDay(d string) string {
	return d + "T23:59:59Z"
}

// PreCutoffRange is the open-started interval ending on the cutoff.
func (w DateWindow) PreCutoffRange() string {
	return "../" + endOfDay(w.Cutoff)
}

func (w DateWindow) RecentRange() string {
	return startOfDay(w.RecentStart) + "/" + endOfDay(w.RecentEnd)
}
