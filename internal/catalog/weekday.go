package catalog

import "time"

// WeekdayFromDate maps an optional "MM-DD" date onto a Weekday using the
// current year; an empty or malformed date falls back to today's weekday.
func WeekdayFromDate(date string) Weekday {
	now := time.Now()
	if date == "" {
		return fromGoWeekday(now.Weekday())
	}
	if len(date) != 5 || date[2] != '-' {
		return fromGoWeekday(now.Weekday())
	}
	for _, i := range []int{0, 1, 3, 4} {
		if date[i] < '0' || date[i] > '9' {
			return fromGoWeekday(now.Weekday())
		}
	}
	month := int(date[0]-'0')*10 + int(date[1]-'0')
	day := int(date[3]-'0')*10 + int(date[4]-'0')
	parsed := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return fromGoWeekday(parsed.Weekday())
}

func fromGoWeekday(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(int(d))
}
