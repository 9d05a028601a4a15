package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ParseNumber reads a numeric cell. Surrounding whitespace and thousands
// separators are tolerated; anything else fails.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Excel stores dates as day serials; anything outside 1900-01-01 through
// 9999-12-31 is not a date.
const (
	minSerial = 1
	maxSerial = 2958465
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"02-01-2006",
	"02.01.2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate reads a date cell: an Excel serial or one of the common
// layouts. Month-first wins over day-first for slash dates.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < minSerial || f > maxSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("02/01/2006", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
