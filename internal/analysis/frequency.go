package analysis

import (
	"sort"

	"github.com/KaramelBytes/edakit/internal/table"
)

// CategoryCount is one distinct value and how often it occurs.
type CategoryCount struct {
	Value string
	Count int
}

// FrequencyTable lists distinct values by descending count.
type FrequencyTable []CategoryCount

// ValueCounts tallies the non-missing cells of c by their text. Values with
// equal counts keep the order in which they first appear in the column.
func ValueCounts(c *table.Column) FrequencyTable {
	pos := map[string]int{}
	var out FrequencyTable
	for _, v := range c.Strings() {
		if i, ok := pos[v]; ok {
			out[i].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Total returns the sum of all counts.
func (f FrequencyTable) Total() int {
	n := 0
	for _, c := range f {
		n += c.Count
	}
	return n
}

// Labels returns the values in table order.
func (f FrequencyTable) Labels() []string {
	out := make([]string, len(f))
	for i, c := range f {
		out[i] = c.Value
	}
	return out
}

// Counts returns the counts in table order.
func (f FrequencyTable) Counts() []float64 {
	out := make([]float64, len(f))
	for i, c := range f {
		out[i] = float64(c.Count)
	}
	return out
}
