package valueobject

import (
	"fmt"
	"time"
)

// Quarter represents a reporting quarter
type Quarter string

const (
	Q1 Quarter = "Q1" // January - March
	Q2 Quarter = "Q2" // April - June
	Q3 Quarter = "Q3" // July - September
	Q4 Quarter = "Q4" // October - December
)

// IsValid checks if the quarter is a valid Quarter
func (q Quarter) IsValid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	}
	return false
}

// String returns the string representation of Quarter
func (q Quarter) String() string {
	return string(q)
}

// Period identifies the reporting bucket a transaction date falls into.
// It is stamped onto a record at write time so that period reports never
// have to re-derive it, and must therefore always agree with the record's
// date field.
type Period struct {
	Month       string  `json:"month"`
	MonthNumber int     `json:"month_number"`
	Year        int     `json:"year"`
	Quarter     Quarter `json:"quarter"`
}

// PeriodOf classifies a date into its reporting period.
// Quarter boundaries: Q1 = months 1-3, Q2 = 4-6, Q3 = 7-9, Q4 = 10-12.
func PeriodOf(date time.Time) Period {
	monthNumber := int(date.Month())
	return Period{
		Month:       date.Month().String(),
		MonthNumber: monthNumber,
		Year:        date.Year(),
		Quarter:     quarterOf(monthNumber),
	}
}

func quarterOf(monthNumber int) Quarter {
	switch {
	case monthNumber <= 3:
		return Q1
	case monthNumber <= 6:
		return Q2
	case monthNumber <= 9:
		return Q3
	default:
		return Q4
	}
}

// String returns a readable representation like "March 2026 (Q1)"
func (p Period) String() string {
	return fmt.Sprintf("%s %d (%s)", p.Month, p.Year, p.Quarter)
}
