// Package schedule expands installment contracts into dated charge lines.
//
// Period 0 is always the contract start date. The day-of-week and
// day-of-month anchors are descriptive: they are validated and stored, but the
// generator derives every date from the start date alone.
package schedule

import (
	"fmt"
	"time"
)

// PeriodType is the billing cadence of a contract.
type PeriodType string

const (
	Weekly  PeriodType = "weekly"
	Monthly PeriodType = "monthly"
)

// Valid reports whether t is a supported cadence.
func (t PeriodType) Valid() bool {
	return t == Weekly || t == Monthly
}

// Status is the settlement state of a charge line.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// MaxPeriods bounds the size of a single contract.
const MaxPeriods = 520

// maxMonthDay keeps monthly dates valid in every month.
const maxMonthDay = 28

// Params are the inputs of charge generation.
type Params struct {
	StartDate    time.Time
	PeriodType   PeriodType
	PeriodCount  int
	PeriodAmount float64
	DayOfWeek    *int // 0 = Monday
	DayOfMonth   *int
}

// Line is one generated charge.
type Line struct {
	Index  int
	Date   time.Time
	Amount float64
	Status Status
}

// Paid reports whether the line is settled.
func (l Line) Paid() bool { return l.Status == StatusPaid }

// ParamError reports an invalid generation parameter.
type ParamError struct {
	Field   string
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConsistencyError reports a regeneration that would corrupt paid history.
type ConsistencyError struct {
	Index   int
	Message string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("period %d: %s", e.Index+1, e.Message)
}

// Normalize truncates the start date to a calendar day, drops the anchor that
// does not belong to the period type and fills the missing one from the start
// date.
func (p Params) Normalize() Params {
	p.StartDate = DateOnly(p.StartDate)
	switch p.PeriodType {
	case Weekly:
		p.DayOfMonth = nil
		if p.DayOfWeek == nil {
			d := Weekday(p.StartDate)
			p.DayOfWeek = &d
		}
	case Monthly:
		p.DayOfWeek = nil
		if p.DayOfMonth == nil {
			d := p.StartDate.Day()
			if d > maxMonthDay {
				d = maxMonthDay
			}
			p.DayOfMonth = &d
		}
	}
	return p
}

// Validate checks the parameters without generating anything.
func (p Params) Validate() error {
	if p.StartDate.IsZero() {
		return &ParamError{Field: "start_date", Message: "is required"}
	}
	if !p.PeriodType.Valid() {
		return &ParamError{Field: "period_type", Message: fmt.Sprintf("unsupported value %q", p.PeriodType)}
	}
	if p.PeriodCount <= 0 {
		return &ParamError{Field: "period_count", Message: "must be greater than 0"}
	}
	if p.PeriodCount > MaxPeriods {
		return &ParamError{Field: "period_count", Message: fmt.Sprintf("must not exceed %d", MaxPeriods)}
	}
	if p.PeriodAmount <= 0 {
		return &ParamError{Field: "period_amount", Message: "must be greater than 0"}
	}
	if p.DayOfWeek != nil && (*p.DayOfWeek < 0 || *p.DayOfWeek > 6) {
		return &ParamError{Field: "day_of_week", Message: "must be between 0 and 6"}
	}
	if p.DayOfMonth != nil && (*p.DayOfMonth < 1 || *p.DayOfMonth > maxMonthDay) {
		return &ParamError{Field: "day_of_month", Message: fmt.Sprintf("must be between 1 and %d", maxMonthDay)}
	}
	return nil
}

// DateFor returns the charge date of period k.
func DateFor(start time.Time, t PeriodType, k int) time.Time {
	start = DateOnly(start)
	if k == 0 {
		return start
	}
	switch t {
	case Monthly:
		day := start.Day()
		if day > maxMonthDay {
			day = maxMonthDay
		}
		return time.Date(start.Year(), start.Month()+time.Month(k), day, 0, 0, 0, 0, time.UTC)
	default:
		return start.AddDate(0, 0, 7*k)
	}
}

// Generate expands p into PeriodCount pending lines.
func Generate(p Params) ([]Line, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lines := make([]Line, p.PeriodCount)
	for k := range lines {
		lines[k] = Line{
			Index:  k,
			Date:   DateFor(p.StartDate, p.PeriodType, k),
			Amount: p.PeriodAmount,
			Status: StatusPending,
		}
	}
	return lines, nil
}

// EndDate is the exclusive contract boundary: one day past the last charge.
func EndDate(start time.Time, t PeriodType, count int) time.Time {
	if count <= 0 {
		return DateOnly(start)
	}
	return DateFor(start, t, count-1).AddDate(0, 0, 1)
}

// PeriodsBetween counts the charge dates that fall before the exclusive end.
// It is the inverse of EndDate.
func PeriodsBetween(start, end time.Time, t PeriodType) int {
	end = DateOnly(end)
	n := 0
	for n < MaxPeriods+1 && DateFor(start, t, n).Before(end) {
		n++
	}
	return n
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Weekday returns the Monday-based weekday of t (0 = Monday, 6 = Sunday).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
