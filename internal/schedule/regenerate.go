package schedule

import "sort"

// Plan is the outcome of regenerating a contract's charge set.
type Plan struct {
	// Lines is the complete new charge set, ordered by index.
	Lines []Line
	// Kept holds the indexes of paid lines carried over unchanged.
	Kept []int
	// Created holds the indexes that had no previous line.
	Created []int
	// Removed holds the previous lines that fall outside the new count.
	Removed []Line
}

// Regenerate rebuilds a charge set from new parameters.
//
// Paid lines are history: a paid line whose index still exists is carried
// over with its date, amount and status untouched. Pending lines are rebuilt
// from p, new indexes are created pending, and pending lines past the new
// count are removed. Dropping a paid line, or keeping one whose date no longer
// fits between its neighbours, is a *ConsistencyError and nothing is planned.
func Regenerate(prev []Line, p Params) (Plan, error) {
	fresh, err := Generate(p)
	if err != nil {
		return Plan{}, err
	}

	byIndex := make(map[int]Line, len(prev))
	for _, l := range prev {
		byIndex[l.Index] = l
	}

	plan := Plan{Lines: fresh}
	for i := range plan.Lines {
		old, ok := byIndex[i]
		switch {
		case !ok:
			plan.Created = append(plan.Created, i)
		case old.Paid():
			old.Index = i
			plan.Lines[i] = old
			plan.Kept = append(plan.Kept, i)
		}
	}

	var removed []Line
	for _, l := range prev {
		if l.Index < p.PeriodCount {
			continue
		}
		if l.Paid() {
			return Plan{}, &ConsistencyError{Index: l.Index, Message: "paid charge would be dropped by the new period count"}
		}
		removed = append(removed, l)
	}
	sort.Slice(removed, func(a, b int) bool { return removed[a].Index < removed[b].Index })
	plan.Removed = removed

	for i := 1; i < len(plan.Lines); i++ {
		if !plan.Lines[i].Date.After(plan.Lines[i-1].Date) {
			return Plan{}, &ConsistencyError{Index: i, Message: "charge dates would no longer be strictly increasing around a paid charge"}
		}
	}
	return plan, nil
}
