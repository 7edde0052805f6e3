package dataset

import "time"

// dateLayouts are the formats accepted when sniffing string columns for
// dates, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
}

// ParseTime attempts to parse a single cell value as a date.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// CoerceTimes converts a column to timestamps without mutating the table.
// Datetime columns pass through. A categorical column converts only when
// every non-missing cell parses as a date; otherwise ok is false. The
// returned null mask mirrors the column's missing cells.
func (c *Column) CoerceTimes() (times []time.Time, null []bool, ok bool) {
	switch c.Kind {
	case KindDatetime:
		times = make([]time.Time, len(c.Times))
		copy(times, c.Times)
		null = make([]bool, len(c.Null))
		copy(null, c.Null)
		return times, null, true
	case KindCategorical:
		times = make([]time.Time, len(c.Strings))
		null = make([]bool, len(c.Null))
		sawValue := false
		for i, s := range c.Strings {
			if c.Null[i] {
				null[i] = true
				continue
			}
			ts, parsed := ParseTime(s)
			if !parsed {
				return nil, nil, false
			}
			times[i] = ts
			sawValue = true
		}
		return times, null, sawValue
	}
	return nil, nil, false
}

// IsDateLike reports whether the column is a datetime column or a string
// column whose every non-missing cell parses as a date.
func (c *Column) IsDateLike() bool {
	if c.Kind == KindDatetime {
		return true
	}
	_, _, ok := c.CoerceTimes()
	return ok
}
