package dateutil

import (
	"math"
	"time"
)

// DaysPerYear is the average Julian year length used to turn elapsed days into fractional years.
const DaysPerYear = 365.25

// EndOfMonth returns the last calendar day of the month containing date, at midnight.
func EndOfMonth(date time.Time) time.Time {
	firstOfNext := time.Date(date.Year(), date.Month()+1, 1, 0, 0, 0, 0, date.Location())
	return firstOfNext.AddDate(0, 0, -1)
}

// MonthEnds returns n consecutive month-end dates, the first being the end of start's month.
func MonthEnds(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		dates[i] = EndOfMonth(first.AddDate(0, i, 0))
	}
	return dates
}

// DaysBetween returns the number of whole calendar days from fromDate to toDate.
func DaysBetween(fromDate, toDate time.Time) int {
	return int(math.Round(toDate.Sub(fromDate).Hours() / 24))
}

// YearsBetween returns the elapsed whole days between two dates expressed in fractional years.
func YearsBetween(fromDate, toDate time.Time) float64 {
	return float64(DaysBetween(fromDate, toDate)) / DaysPerYear
}
