package dataset

import "sort"

// ValueCount is one category frequency from ValueCounts.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts tallies the non-missing values of a categorical column,
// sorted by descending count with ties in first-occurrence order.
func ValueCounts(c *Column) []ValueCount {
	counts := make(map[string]int)
	order := []string{}
	for i, v := range c.Strings {
		if c.Null[i] {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]ValueCount, 0, len(order))
	for _, v := range order {
		out = append(out, ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
