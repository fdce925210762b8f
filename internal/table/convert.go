package table

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// typeKinds maps the words of driver type names (VARCHAR(20), UNSIGNED BIGINT,
// DOUBLE PRECISION) to kinds.
var typeKinds = map[string]Kind{
	"INT": KindInteger, "INTEGER": KindInteger, "INT2": KindInteger, "INT4": KindInteger,
	"INT8": KindInteger, "TINYINT": KindInteger, "SMALLINT": KindInteger,
	"MEDIUMINT": KindInteger, "BIGINT": KindInteger, "SERIAL": KindInteger,
	"SMALLSERIAL": KindInteger, "BIGSERIAL": KindInteger,

	"REAL": KindReal, "FLOAT": KindReal, "FLOAT4": KindReal, "FLOAT8": KindReal,
	"DOUBLE": KindReal, "DEC": KindReal, "DECIMAL": KindReal, "NUMERIC": KindReal,
	"NUMBER": KindReal,

	"CHAR": KindText, "CHARACTER": KindText, "VARCHAR": KindText, "NCHAR": KindText,
	"NVARCHAR": KindText, "BPCHAR": KindText, "TEXT": KindText, "TINYTEXT": KindText,
	"MEDIUMTEXT": KindText, "LONGTEXT": KindText, "CLOB": KindText, "STRING": KindText,
}

// KindFromDatabaseType maps a driver-reported column type name to a Kind by its
// first recognised word. Unrecognised names (POINT, INTERVAL, BLOB, "") map to
// KindNull, leaving the kind to be inferred from the values.
func KindFromDatabaseType(name string) Kind {
	words := strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if k, ok := typeKinds[w]; ok {
			return k
		}
	}
	return KindNull
}

// FromDriver converts a value scanned by database/sql into a Value.
// Supports nil, signed and unsigned integers, floats, strings, []byte, bool and time.Time.
// []byte cells (as returned by the MySQL driver) are decoded according to the column kind.
func FromDriver(v interface{}, kind Kind) Value {
	switch i := v.(type) {
	case nil:
		return Null()
	case int64:
		return Int(i)
	case int:
		return Int(int64(i))
	case int32:
		return Int(int64(i))
	case int16:
		return Int(int64(i))
	case int8:
		return Int(int64(i))
	case uint:
		return fromUnsigned(uint64(i))
	case uint64:
		return fromUnsigned(i)
	case uint32:
		return Int(int64(i))
	case uint16:
		return Int(int64(i))
	case uint8:
		return Int(int64(i))
	case float64:
		return Real(i)
	case float32:
		return Real(float64(i))
	case bool:
		if i {
			return Int(1)
		}
		return Int(0)
	case string:
		return parseByKind(i, kind)
	case []byte:
		return parseByKind(string(i), kind)
	case time.Time:
		return Text(i.Format(time.RFC3339))
	default:
		return Null()
	}
}

// fromUnsigned keeps values beyond the int64 range as reals instead of wrapping.
func fromUnsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return Real(float64(u))
	}
	return Int(int64(u))
}

// parseByKind decodes textual driver output into the column's declared kind,
// keeping it as text when it does not parse.
func parseByKind(s string, kind Kind) Value {
	switch kind {
	case KindInteger:
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return Int(n)
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Real(f)
		}
	case KindReal:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Real(f)
		}
	}
	return Text(s)
}

// InferKind derives a column kind from its values: numeric when every non-missing
// value is numeric and at least one exists, text when any value is text, otherwise unknown.
func InferKind(values []Value) Kind {
	kind := KindNull
	for _, v := range values {
		switch v.Kind {
		case KindText:
			return KindText
		case KindReal:
			kind = KindReal
		case KindInteger:
			if kind == KindNull {
				kind = KindInteger
			}
		}
	}
	return kind
}
