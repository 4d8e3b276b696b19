package dto

// DayResponse describes one day of a calendar window.
type DayResponse struct {
	Date      string `json:"date"` // YYYY-MM-DD
	DayName   string `json:"day_name"`
	MonthName string `json:"month_name"`
	IsWeekend bool   `json:"is_weekend"`
	IsHoliday bool   `json:"is_holiday"`
}

// HolidaysResponse lists the public holidays of a year.
type HolidaysResponse struct {
	Year     int      `json:"year"`
	Holidays []string `json:"holidays"` // YYYY-MM-DD, ascending
}

// WindowResponse describes a month, week or two-week day window.
type WindowResponse struct {
	Days []DayResponse `json:"days"`
}
