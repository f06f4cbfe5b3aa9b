package schedule

import (
	"fmt"
	"math"
	"time"
)

// QuoteInput holds a partially filled contract form. Nil fields are derived
// from the others.
type QuoteInput struct {
	StartDate    time.Time
	PeriodType   PeriodType
	TotalAmount  *float64
	PeriodAmount *float64
	PeriodCount  *int
	EndDate      *time.Time
}

// Quote is a fully reconciled set of contract figures.
type Quote struct {
	StartDate    time.Time  `json:"start_date"`
	PeriodType   PeriodType `json:"period_type"`
	TotalAmount  float64    `json:"total_amount"`
	PeriodAmount float64    `json:"period_amount"`
	PeriodCount  int        `json:"period_count"`
	LastCharge   time.Time  `json:"last_charge_date"`
	EndDate      time.Time  `json:"end_date"`
}

// PeriodAmountFor splits total over n periods, rounded to cents.
func PeriodAmountFor(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return roundCents(total / float64(n))
}

// TotalFor multiplies a per-period amount by n, rounded to cents.
func TotalFor(perPeriod float64, n int) float64 {
	return roundCents(perPeriod * float64(n))
}

// PeriodsFor is the number of periods needed to pay total at perPeriod
// a period; the last period may be short. Ratios beyond MaxPeriods
// saturate at MaxPeriods+1.
func PeriodsFor(total, perPeriod float64) int {
	if perPeriod <= 0 || total <= 0 {
		return 0
	}
	ratio := total / perPeriod
	if !(ratio <= MaxPeriods) {
		return MaxPeriods + 1
	}
	return int(math.Ceil(roundCents(ratio*100)/100 - 1e-9))
}

// Reconcile derives the missing figures of a contract form.
//
// The period count comes from PeriodCount, else from EndDate, else from
// the two amounts.
// Given a count, the total is derived from the per-period amount or the other
// way round. When both amounts are supplied they are returned as is.
func Reconcile(in QuoteInput) (Quote, error) {
	if in.StartDate.IsZero() {
		return Quote{}, &ParamError{Field: "start_date", Message: "is required"}
	}
	if !in.PeriodType.Valid() {
		return Quote{}, &ParamError{Field: "period_type", Message: "must be weekly or monthly"}
	}

	count := 0
	switch {
	case in.PeriodCount != nil:
		count = *in.PeriodCount
	case in.EndDate != nil:
		count = PeriodsBetween(in.StartDate, *in.EndDate, in.PeriodType)
	case in.TotalAmount != nil && in.PeriodAmount != nil && *in.PeriodAmount > 0:
		count = PeriodsFor(*in.TotalAmount, *in.PeriodAmount)
	default:
		return Quote{}, &ParamError{Field: "period_count", Message: "period_count or end_date is required"}
	}
	if count <= 0 {
		return Quote{}, &ParamError{Field: "period_count", Message: "must be greater than 0"}
	}
	if count > MaxPeriods {
		return Quote{}, &ParamError{Field: "period_count", Message: fmt.Sprintf("must not exceed %d", MaxPeriods)}
	}

	q := Quote{
		StartDate:   DateOnly(in.StartDate),
		PeriodType:  in.PeriodType,
		PeriodCount: count,
		LastCharge:  DateFor(in.StartDate, in.PeriodType, count-1),
		EndDate:     EndDate(in.StartDate, in.PeriodType, count),
	}
	switch {
	case in.TotalAmount != nil && in.PeriodAmount != nil:
		q.TotalAmount, q.PeriodAmount = *in.TotalAmount, *in.PeriodAmount
	case in.PeriodAmount != nil:
		q.PeriodAmount = *in.PeriodAmount
		q.TotalAmount = TotalFor(q.PeriodAmount, count)
	case in.TotalAmount != nil:
		q.TotalAmount = *in.TotalAmount
		q.PeriodAmount = PeriodAmountFor(q.TotalAmount, count)
	default:
		return Quote{}, &ParamError{Field: "total_amount", Message: "total_amount or period_amount is required"}
	}
	if q.TotalAmount <= 0 || q.PeriodAmount <= 0 {
		return Quote{}, &ParamError{Field: "total_amount", Message: "amounts must be greater than 0"}
	}
	return q, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
