package extraction

import (
	"strings"
	"time"
)

// phrasePatterns are multiword deadline phrases checked before single weekday
// tokens. Order matters: "next week" must win over the bare weekday scan.
var phrasePatterns = []struct {
	phrase  string
	resolve func(ref time.Time) time.Time
}{
	{"end of day", func(ref time.Time) time.Time { return ref }},
	{"end of the day", func(ref time.Time) time.Time { return ref }},
	{"today", func(ref time.Time) time.Time { return ref }},
	{"tomorrow", func(ref time.Time) time.Time { return ref.AddDate(0, 0, 1) }},
	{"next week", func(ref time.Time) time.Time { return ref.AddDate(0, 0, 7) }},
	{"end of week", func(ref time.Time) time.Time { return nextWeekday(ref, time.Friday) }},
	{"end of the week", func(ref time.Time) time.Time { return nextWeekday(ref, time.Friday) }},
	{"this week", func(ref time.Time) time.Time { return nextWeekday(ref, time.Friday) }},
	{"next month", func(ref time.Time) time.Time { return ref.AddDate(0, 1, 0) }},
	{"end of month", endOfMonth},
	{"end of the month", endOfMonth},
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ResolveDeadline scans free text for a relative deadline phrase and resolves
// it against the reference date, normally the meeting date. "by Wednesday"
// spoken on a Monday means two days out, not nine. It returns nil when the
// text names no recognizable deadline.
func ResolveDeadline(text string, ref time.Time) *time.Time {
	lowered := strings.ToLower(text)
	ref = midnight(ref)

	for _, p := range phrasePatterns {
		if strings.Contains(lowered, p.phrase) {
			resolved := midnight(p.resolve(ref))
			return &resolved
		}
	}

	// Bare weekday mention, e.g. "by wednesday" or "before friday". The
	// first weekday appearing in the text wins.
	earliest := -1
	var found time.Weekday
	for name, day := range weekdayNames {
		idx := strings.Index(lowered, name)
		if idx < 0 {
			continue
		}
		if earliest < 0 || idx < earliest {
			earliest = idx
			found = day
		}
	}
	if earliest >= 0 {
		resolved := nextWeekday(ref, found)
		return &resolved
	}

	return nil
}

// nextWeekday returns the first occurrence of the weekday strictly after ref.
// A Monday reference and a Monday target resolve to the following Monday.
func nextWeekday(ref time.Time, day time.Weekday) time.Time {
	days := (int(day) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return ref.AddDate(0, 0, days)
}

func endOfMonth(ref time.Time) time.Time {
	firstOfNext := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
