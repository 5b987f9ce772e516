package date

import "time"

// The Tokyo exchange is closed on weekends, Japanese public holidays and the
// year-end break. Only the holidays that fall on fixed days or on a "Happy
// Monday" are modeled here; that covers the days the quotes API actually
// skips for the ranges this tool requests.

// fixedHolidays are the public holidays observed on the same day every year.
var fixedHolidays = map[[2]int]bool{
	{1, 1}:   true, // New Year's Day
	{2, 11}:  true, // National Foundation Day
	{4, 29}:  true, // Showa Day
	{5, 3}:   true, // Constitution Memorial Day
	{5, 4}:   true, // Greenery Day
	{5, 5}:   true, // Children's Day
	{8, 11}:  true, // Mountain Day
	{11, 3}:  true, // Culture Day
	{11, 23}: true, // Labor Thanksgiving Day
	{12, 23}: true, // The Emperor's Birthday
}

// mondayHolidays maps a month to the ordinal of its holiday Monday.
var mondayHolidays = map[time.Month]int{
	time.January:   2, // Coming of Age Day
	time.July:      3, // Marine Day
	time.September: 3, // Respect for the Aged Day
	time.October:   2, // Sports Day
}

// IsBusinessDay reports whether the exchange is open on d.
func (d Date) IsBusinessDay() bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	if fixedHolidays[[2]int{int(d.Month()), d.Day()}] {
		return false
	}

	// Year-end break.
	if (d.Month() == time.December && d.Day() >= 29) || (d.Month() == time.January && d.Day() <= 3) {
		return false
	}

	if d.Weekday() == time.Monday {
		if nth, ok := mondayHolidays[d.Month()]; ok && (d.Day()-1)/7+1 == nth {
			return false
		}
	}
	return true
}

// LastBusinessDays returns the range ending on the most recent business day
// and starting n business days earlier. The range therefore spans n+1
// business days.
func LastBusinessDays(n int) (from, to Date) {
	to = Today()
	for !to.IsBusinessDay() {
		to = to.Add(-1)
	}

	from = to
	for found := 0; found < n; {
		from = from.Add(-1)
		if from.IsBusinessDay() {
			found++
		}
	}
	return from, to
}
