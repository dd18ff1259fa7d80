package ledger

import (
	"time"
)

// Month is a calendar month in "YYYY-MM" form. The zero-padded format
// makes lexicographic order equal to chronological order, which the
// allocator relies on.
type Month string

const monthLayout = "2006-01"

// ParseMonth validates and normalizes a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", &ValidationError{Msg: "месяц должен быть в формате YYYY-MM: " + s}
	}
	return Month(t.Format(monthLayout)), nil
}

// CurrentMonth returns the current calendar month in UTC.
func CurrentMonth() Month {
	return Month(time.Now().UTC().Format(monthLayout))
}

// Time returns the first day of the month.
func (m Month) Time() time.Time {
	t, _ := time.Parse(monthLayout, string(m))
	return t
}

func (m Month) String() string { return string(m) }

// ParseMonths validates a payment's month list: non-empty, every entry
// well-formed, strictly ascending (duplicates therefore rejected).
func ParseMonths(raw []string) ([]Month, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{Msg: "не выбран ни один месяц"}
	}
	months := make([]Month, 0, len(raw))
	for _, s := range raw {
		m, err := ParseMonth(s)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	for i := 1; i < len(months); i++ {
		if months[i] <= months[i-1] {
			return nil, &ValidationError{Msg: "месяцы должны идти по возрастанию без повторов"}
		}
	}
	return months, nil
}
