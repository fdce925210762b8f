// Package migrate holds the explicit, separately invoked steps that prepare the
// flight table: repairing the raw SQL dump and seeding a database from it.
package migrate

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// insertHeader matches the column list of an INSERT statement.
var insertHeader = regexp.MustCompile(`(?is)INSERT\s+INTO\s+(\w+)\s*\((.*?)\)\s*VALUES`)

// FixInsertColumns double-quotes every column name in the INSERT headers of sql,
// so names containing spaces parse. Already quoted names are left as they are,
// which makes the fix idempotent.
func FixInsertColumns(sql string) string {
	fixed, _ := fixInsertColumns(sql)
	return fixed
}

func fixInsertColumns(sql string) (string, int) {
	n := 0
	out := insertHeader.ReplaceAllStringFunc(sql, func(header string) string {
		m := insertHeader.FindStringSubmatch(header)
		cols := strings.Split(m[2], ",")
		for i, c := range cols {
			c = strings.TrimSpace(c)
			if len(c) >= 2 && strings.HasPrefix(c, `"`) && strings.HasSuffix(c, `"`) {
				c = c[1 : len(c)-1]
			}
			cols[i] = `"` + c + `"`
		}
		n++
		return "INSERT INTO " + m[1] + " (" + strings.Join(cols, ", ") + ") VALUES"
	})
	return out, n
}

// FixFile reads the SQL script at in, fixes its INSERT headers and writes the
// result to out. It returns the number of headers rewritten.
func FixFile(in, out string) (int, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", in, err)
	}

	fixed, n := fixInsertColumns(string(data))
	if err := os.WriteFile(out, []byte(fixed), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return n, nil
}
