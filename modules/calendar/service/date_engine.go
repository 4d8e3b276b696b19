package service

import "time"

// DateEngine provides the date computations behind the presence grid: French
// public holidays, month/week/two-week day windows and French day labels.
// All methods are pure; returned dates are normalized to midnight UTC.
type DateEngine struct{}

// NewDateEngine creates a date engine.
func NewDateEngine() *DateEngine {
	return &DateEngine{}
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frenchWeekdays = map[time.Weekday]string{
	time.Monday:    "lundi",
	time.Tuesday:   "mardi",
	time.Wednesday: "mercredi",
	time.Thursday:  "jeudi",
	time.Friday:    "vendredi",
	time.Saturday:  "samedi",
	time.Sunday:    "dimanche",
}

// EasterSunday computes Easter Sunday for the given year using the anonymous
// Gregorian (Gauss) algorithm.
func (e *DateEngine) EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	f := b % 4
	g := (b + 8) / 25
	h := (b - g + 1) / 3
	i := (19*a + b - d - h + 15) % 30
	k := c / 4
	l := c % 4
	m := (32 + 2*f + 2*k - i - l) % 7
	n := (a + 11*i + 22*m) / 451
	month := (i + m - 7*n + 114) / 31
	day := (i+m-7*n+114)%31 + 1
	return date(year, time.Month(month), day)
}

// HolidaysForYear returns the eleven French public holidays of the year:
// eight fixed dates plus Easter Monday, Ascension and Whit Monday.
func (e *DateEngine) HolidaysForYear(year int) []time.Time {
	easter := e.EasterSunday(year)
	return []time.Time{
		date(year, time.January, 1),   // Jour de l'an
		easter.AddDate(0, 0, 1),       // Lundi de Pâques
		date(year, time.May, 1),       // Fête du travail
		date(year, time.May, 8),       // Victoire 1945
		easter.AddDate(0, 0, 39),      // Ascension
		easter.AddDate(0, 0, 50),      // Lundi de Pentecôte
		date(year, time.July, 14),     // Fête nationale
		date(year, time.August, 15),   // Assomption
		date(year, time.November, 1),  // Toussaint
		date(year, time.November, 11), // Armistice 1918
		date(year, time.December, 25), // Noël
	}
}

// IsHoliday reports whether the date falls on a public holiday. The comparison
// deliberately matches month and day only, ignoring the year component of the
// holiday list entries, to stay compatible with the historical behaviour.
func (e *DateEngine) IsHoliday(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	for _, h := range e.HolidaysForYear(t.Year()) {
		if h.Month() == t.Month() && h.Day() == t.Day() {
			return true
		}
	}
	return false
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func (e *DateEngine) IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DaysInMonth returns every day of the month in ascending order. month0 is
// zero-based (0 = January), mirroring the grid's navigation convention.
func (e *DateEngine) DaysInMonth(year, month0 int) []time.Time {
	if month0 < 0 || month0 > 11 {
		return nil
	}
	first := date(year, time.Month(month0+1), 1)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekDays returns the Monday-to-Sunday week containing the anchor date.
func (e *DateEngine) WeekDays(anchor time.Time) []time.Time {
	if anchor.IsZero() {
		return nil
	}
	monday := normalize(anchor)
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// TwoWeekDays returns the week containing the anchor followed by the next
// seven days, fourteen consecutive dates in total.
func (e *DateEngine) TwoWeekDays(anchor time.Time) []time.Time {
	week := e.WeekDays(anchor)
	if len(week) == 0 {
		return nil
	}
	days := make([]time.Time, 0, 14)
	days = append(days, week...)
	last := week[len(week)-1]
	for i := 1; i <= 7; i++ {
		days = append(days, last.AddDate(0, 0, i))
	}
	return days
}

// MonthName returns the French month name, or "" for a zero date.
func (e *DateEngine) MonthName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return frenchMonths[int(t.Month())-1]
}

// DayName returns the French weekday name, or "" for a zero date.
func (e *DateEngine) DayName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return frenchWeekdays[t.Weekday()]
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
