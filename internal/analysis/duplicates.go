package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dbsmedya/flightdq/internal/table"
)

// DuplicateGroup is an identifier value that occurs more than once.
type DuplicateGroup struct {
	Value string
	Count int
}

// DetectExactDuplicates returns every row that has at least one identical row,
// all copies included, in table order. Missing values compare equal to each other.
func DetectExactDuplicates(t *table.Table) *table.Table {
	keys := make([]string, t.Len())
	counts := make(map[string]int, t.Len())
	for i := 0; i < t.Len(); i++ {
		keys[i] = rowKey(t.Row(i))
		counts[keys[i]]++
	}

	var idx []int
	for i, k := range keys {
		if counts[k] > 1 {
			idx = append(idx, i)
		}
	}
	return t.Subset(idx)
}

// DetectDuplicateFlightNumbers counts the non-missing values of idColumn and returns
// those seen more than once, by descending count, ties in first-seen order.
func DetectDuplicateFlightNumbers(t *table.Table, idColumn string) ([]DuplicateGroup, error) {
	values, ok := t.Values(idColumn)
	if !ok {
		return nil, &SchemaError{Analysis: NameDuplicateFlightNumbers, Column: idColumn}
	}

	groups := countValues(values)
	dups := groups[:0]
	for _, g := range groups {
		if g.Count > 1 {
			dups = append(dups, g)
		}
	}
	return dups, nil
}

// countValues tallies non-missing values, ordered by descending count then first occurrence.
func countValues(values []table.Value) []DuplicateGroup {
	pos := make(map[string]int)
	var groups []DuplicateGroup
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		s := v.String()
		if i, seen := pos[s]; seen {
			groups[i].Count++
			continue
		}
		pos[s] = len(groups)
		groups = append(groups, DuplicateGroup{Value: s, Count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// rowKey encodes a row so that two rows share a key iff all their values are equal.
func rowKey(r table.Row) string {
	var b strings.Builder
	for _, v := range r {
		s := v.String()
		b.WriteByte(byte('0' + v.Kind))
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String()
}
