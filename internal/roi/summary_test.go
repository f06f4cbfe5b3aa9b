package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenmq77/duckiki/internal/catalog"
)

func nzd(v float64) Amount { return Amount{Value: v, Currency: "NZD"} }

func TestSummarizeSingleMembership(t *testing.T) {
	snap, err := Summarize(Input{
		Expenses:             []Amount{nzd(400)},
		Weights:              []float64{1.0},
		MarketReferencePrice: 50,
		BaseCurrency:         "NZD",
	}, catalog.Default())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.TotalActivities)
	assert.InDelta(t, 1.0, snap.WeightedTotal, 1e-9)
	assert.InDelta(t, 400.0, snap.Planned.TotalExpense, 1e-9)
	assert.InDelta(t, 400.0, snap.Planned.AverageCost, 1e-9)
	assert.InDelta(t, -87.5, snap.Planned.ROIPercentage, 1e-9)
	assert.InDelta(t, -350.0, snap.Planned.MoneySaved, 1e-9)
	assert.InDelta(t, 12.5, snap.Planned.BreakEvenProgress, 1e-9)
	assert.InDelta(t, 7.0, snap.Planned.RemainingToBreakEven, 1e-9)
	assert.Equal(t, snap.Planned, snap.Paid)
}

func TestSummarizePaidVersusPlanned(t *testing.T) {
	snap, err := Summarize(Input{
		Expenses: []Amount{nzd(100)},
		Charges: []Charge{
			{Amount: nzd(10), Paid: true},
			{Amount: nzd(10), Paid: true},
			{Amount: nzd(10)},
			{Amount: nzd(10)},
		},
		Weights:              []float64{1, 1.5, 3},
		MarketReferencePrice: 50,
	}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 120.0, snap.Paid.TotalExpense, 1e-9)
	assert.InDelta(t, 140.0, snap.Planned.TotalExpense, 1e-9)
	assert.InDelta(t, 5.5, snap.WeightedTotal, 1e-9)
	assert.Greater(t, snap.Paid.ROIPercentage, snap.Planned.ROIPercentage)
}

func TestSummarizeConvertsCurrencies(t *testing.T) {
	snap, err := Summarize(Input{
		Expenses:             []Amount{{Value: 100, Currency: "rmb"}, nzd(10)},
		Charges:              []Charge{{Amount: Amount{Value: 100, Currency: "CNY"}, Paid: true}},
		MarketReferencePrice: 50,
	}, catalog.Default())
	require.NoError(t, err)
	assert.InDelta(t, 56.0, snap.Paid.TotalExpense, 1e-9)
}

func TestSummarizeUnknownCurrency(t *testing.T) {
	_, err := Summarize(Input{Expenses: []Amount{{Value: 1, Currency: "XYZ"}}}, catalog.Default())
	var ue *UnknownCurrencyError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "XYZ", ue.Currency)
}

func TestComputeGuards(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		weighted float64
		price    float64
		want     Stats
	}{
		{
			name: "nothing recorded",
			want: Stats{BreakEvenProgress: 100},
		},
		{
			name:  "spend without activity",
			total: 200, price: 50,
			want: Stats{TotalExpense: 200, MoneySaved: -200, ROIPercentage: -100, BreakEvenProgress: 0, RemainingToBreakEven: 4},
		},
		{
			name:     "activity without spend",
			weighted: 3, price: 50,
			want: Stats{MoneySaved: 150, BreakEvenProgress: 100},
		},
		{
			name:  "zero price",
			total: 100, weighted: 2,
			want: Stats{TotalExpense: 100, AverageCost: 50, MoneySaved: -100, ROIPercentage: -100},
		},
		{
			name:  "past break even",
			total: 100, weighted: 4, price: 50,
			want: Stats{TotalExpense: 100, AverageCost: 25, MoneySaved: 100, ROIPercentage: 100, BreakEvenProgress: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.total, tt.weighted, tt.price))
		})
	}
}

func TestROIMonotonicInWeight(t *testing.T) {
	prev := Compute(500, 0, 50).ROIPercentage
	for w := 0.5; w <= 40; w += 0.5 {
		cur := Compute(500, w, 50).ROIPercentage
		assert.GreaterOrEqual(t, cur, prev, "weighted=%v", w)
		prev = cur
	}
}

func TestRounded(t *testing.T) {
	s := Snapshot{WeightedTotal: 1.23456, Planned: Stats{ROIPercentage: -33.33333}}.Rounded()
	assert.Equal(t, 1.23, s.WeightedTotal)
	assert.Equal(t, -33.33, s.Planned.ROIPercentage)
}
