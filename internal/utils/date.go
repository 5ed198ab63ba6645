package utils

import (
	"errors"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatRFC3339     DateFormat = time.RFC3339
)

var calendarDateFormats = []DateFormat{
	FormatISO8601Date,
	FormatRFC3339,
	FormatUSDate,
}

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ParseCalendarDate accepts the date formats the booking form has sent over
// time and truncates the result to midnight UTC.
func ParseCalendarDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, errors.New("date is required")
	}

	for _, format := range calendarDateFormats {
		parsed, err := time.Parse(string(format), input)
		if err != nil {
			continue
		}

		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, ErrInvalidDate
}
