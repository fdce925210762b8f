package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dbsmedya/flightdq/internal/table"
)

// Rule validates one column, optionally against a partner column of the same row.
// Missing values reach Valid as empty strings.
type Rule struct {
	Column  string
	Partner string
	Valid   func(value, partner string) bool
}

// PatternRule accepts values of column that fully match pattern.
func PatternRule(column, pattern string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Column: column,
		Valid:  func(value, _ string) bool { return re.MatchString(value) },
	}
}

// PairRule validates column with a predicate over the value and its partner column.
func PairRule(column, partner string, valid func(value, partner string) bool) Rule {
	return Rule{Column: column, Partner: partner, Valid: valid}
}

// DefaultRules is the validation table for the flight schema.
func DefaultRules() []Rule {
	return []Rule{
		PatternRule(table.ColAirportCode, `^[A-Z]{3}$`),
		PatternRule(table.ColGPSCode, `^[A-Z]{4}$`),
		PatternRule(table.ColRegionCode, `^[A-Za-z]{2}-[A-Za-z]{2,3}$`),
		PatternRule(table.ColAirlineCode, `^[A-Z]{2,3}$`),
		PairRule(table.ColFlightNumber, table.ColAirlineCode, FlightNumberMatchesAirline),
	}
}

// FlightNumberMatchesAirline accepts a flight number made of the airline code
// followed by one or more digits. Either side missing is invalid.
func FlightNumberMatchesAirline(number, airline string) bool {
	if number == "" || airline == "" {
		return false
	}
	rest, ok := strings.CutPrefix(number, airline)
	if !ok || rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// FieldResult is the outcome of one rule. Mask is true for invalid rows.
// Invalid holds the offending values: the column, plus the partner for pair rules.
type FieldResult struct {
	Column  string
	Partner string
	Mask    []bool
	Count   int
	Invalid *table.Table
}

// ValidateData applies DefaultRules.
func ValidateData(t *table.Table) ([]FieldResult, error) {
	return ValidateWith(t, DefaultRules())
}

// ValidateWith applies rules in order and returns one result per rule.
func ValidateWith(t *table.Table, rules []Rule) ([]FieldResult, error) {
	results := make([]FieldResult, 0, len(rules))
	for _, r := range rules {
		res, err := applyRule(t, r)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func applyRule(t *table.Table, r Rule) (FieldResult, error) {
	values, ok := t.Values(r.Column)
	if !ok {
		return FieldResult{}, &SchemaError{Analysis: NameValidation, Column: r.Column}
	}
	names := []string{r.Column}
	partners := make([]table.Value, len(values))
	if r.Partner != "" {
		if partners, ok = t.Values(r.Partner); !ok {
			return FieldResult{}, &SchemaError{Analysis: NameValidation, Column: r.Partner}
		}
		names = append(names, r.Partner)
	}

	res := FieldResult{Column: r.Column, Partner: r.Partner, Mask: make([]bool, len(values))}
	var invalid []int
	for i, v := range values {
		if !r.Valid(v.String(), partners[i].String()) {
			res.Mask[i] = true
			res.Count++
			invalid = append(invalid, i)
		}
	}

	sel, err := t.Select(names...)
	if err != nil {
		return FieldResult{}, fmt.Errorf("failed to select %v: %w", names, err)
	}
	res.Invalid = sel.Subset(invalid)
	return res, nil
}
