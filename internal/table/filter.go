package table

// Filters narrows a flight table before analysis. Each non-empty list keeps the
// rows whose value in the matching column is one of the listed values; lists
// combine with AND. Missing values never match.
type Filters struct {
	Cities    []string
	Countries []string
	Airlines  []string
	Airports  []string
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return len(f.Cities) == 0 && len(f.Countries) == 0 && len(f.Airlines) == 0 && len(f.Airports) == 0
}

// Apply returns the derived table. Filters on columns the table lacks match nothing.
func (f Filters) Apply(t *Table) *Table {
	if f.Empty() {
		return t
	}

	type clause struct {
		col     int
		present bool
		allowed map[string]struct{}
	}
	var clauses []clause
	for _, c := range []struct {
		column string
		values []string
	}{
		{ColArrivalCity, f.Cities},
		{ColArrivalCountry, f.Countries},
		{ColAirlineCode, f.Airlines},
		{ColAirportCode, f.Airports},
	} {
		if len(c.values) == 0 {
			continue
		}
		allowed := make(map[string]struct{}, len(c.values))
		for _, v := range c.values {
			allowed[v] = struct{}{}
		}
		idx, ok := t.ColumnIndex(c.column)
		clauses = append(clauses, clause{col: idx, present: ok, allowed: allowed})
	}

	return t.Where(func(r Row) bool {
		for _, c := range clauses {
			if !c.present {
				return false
			}
			v := r[c.col]
			if v.IsNull() {
				return false
			}
			if _, ok := c.allowed[v.String()]; !ok {
				return false
			}
		}
		return true
	})
}

// Options returns the distinct non-missing values of a column in first-seen order.
func Options(t *Table, column string) []string {
	values, ok := t.Values(column)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		s := v.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
