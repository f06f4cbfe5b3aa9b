// Package roi folds expenses, contract charges and activity weights into the
// dashboard's return-on-investment figures.
package roi

import (
	"fmt"
	"math"
	"strings"
)

// Rates converts an amount in the given currency to the base currency.
// *catalog.Catalog satisfies it.
type Rates interface {
	Rate(currency string) (float64, bool)
}

// Amount is a single expense or charge value.
type Amount struct {
	Value    float64
	Currency string
}

// Charge is one contract installment.
type Charge struct {
	Amount
	Paid bool
}

// Input is everything Summarize needs. Expenses must hold flat expenses only:
// contract anchors and the expenses recorded for paid charges are represented
// by Charges.
type Input struct {
	Expenses             []Amount
	Charges              []Charge
	Weights              []float64
	MarketReferencePrice float64
	BaseCurrency         string
}

// Stats is one ROI block, computed either over paid or over planned spend.
type Stats struct {
	TotalExpense         float64 `json:"total_expense"`
	AverageCost          float64 `json:"average_cost"`
	MoneySaved           float64 `json:"money_saved"`
	ROIPercentage        float64 `json:"roi_percentage"`
	BreakEvenProgress    float64 `json:"break_even_progress"`
	RemainingToBreakEven float64 `json:"remaining_to_break_even"`
}

// Snapshot is the derived ROI summary. It is never persisted.
type Snapshot struct {
	TotalActivities      int     `json:"total_activities"`
	WeightedTotal        float64 `json:"weighted_total"`
	MarketReferencePrice float64 `json:"market_reference_price"`
	BaseCurrency         string  `json:"base_currency"`
	Paid                 Stats   `json:"paid"`
	Planned              Stats   `json:"planned"`
}

// UnknownCurrencyError is returned when an amount uses a currency with no rate.
type UnknownCurrencyError struct {
	Currency string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("no exchange rate for currency %q", e.Currency)
}

// Summarize computes the paid and planned ROI blocks.
func Summarize(in Input, rates Rates) (Snapshot, error) {
	convert := func(a Amount) (float64, error) {
		if rates == nil {
			return a.Value, nil
		}
		r, ok := rates.Rate(a.Currency)
		if !ok {
			return 0, &UnknownCurrencyError{Currency: strings.ToUpper(a.Currency)}
		}
		return a.Value * r, nil
	}

	var flat float64
	for _, e := range in.Expenses {
		v, err := convert(e)
		if err != nil {
			return Snapshot{}, err
		}
		flat += v
	}

	var paid, planned float64
	for _, c := range in.Charges {
		v, err := convert(c.Amount)
		if err != nil {
			return Snapshot{}, err
		}
		planned += v
		if c.Paid {
			paid += v
		}
	}

	var weighted float64
	for _, w := range in.Weights {
		weighted += w
	}

	return Snapshot{
		TotalActivities:      len(in.Weights),
		WeightedTotal:        weighted,
		MarketReferencePrice: in.MarketReferencePrice,
		BaseCurrency:         in.BaseCurrency,
		Paid:                 Compute(flat+paid, weighted, in.MarketReferencePrice),
		Planned:              Compute(flat+planned, weighted, in.MarketReferencePrice),
	}, nil
}

// Compute derives one stats block from a spend total.
//
// With no spend the ROI is 0 and progress reads as broken even, whatever the
// weighted total. With no activity the average cost is 0.
func Compute(total, weighted, price float64) Stats {
	s := Stats{
		TotalExpense: total,
		MoneySaved:   price*weighted - total,
	}
	if weighted > 0 {
		s.AverageCost = total / weighted
	}
	if total > 0 {
		s.ROIPercentage = (price*weighted - total) / total * 100
	}
	s.BreakEvenProgress = clamp(s.ROIPercentage+100, 0, 100)
	if price > 0 {
		s.RemainingToBreakEven = math.Max(0, total/price-weighted)
	}
	return s
}

// Rounded returns a copy with every figure rounded to two decimals.
func (s Snapshot) Rounded() Snapshot {
	s.WeightedTotal = round2(s.WeightedTotal)
	s.MarketReferencePrice = round2(s.MarketReferencePrice)
	s.Paid = s.Paid.rounded()
	s.Planned = s.Planned.rounded()
	return s
}

func (s Stats) rounded() Stats {
	return Stats{
		TotalExpense:         round2(s.TotalExpense),
		AverageCost:          round2(s.AverageCost),
		MoneySaved:           round2(s.MoneySaved),
		ROIPercentage:        round2(s.ROIPercentage),
		BreakEvenProgress:    round2(s.BreakEvenProgress),
		RemainingToBreakEven: round2(s.RemainingToBreakEven),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
