package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromDriver_IntTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected Value
	}{
		{"int64", int64(42), Int(42)},
		{"int", int(100), Int(100)},
		{"int32", int32(200), Int(200)},
		{"int16", int16(300), Int(300)},
		{"int8", int8(-128), Int(-128)},
		{"uint", uint(500), Int(500)},
		{"uint64", uint64(1000), Int(1000)},
		{"uint64 max int64", uint64(math.MaxInt64), Int(math.MaxInt64)},
		{"uint64 beyond int64", uint64(math.MaxUint64), Real(float64(uint64(math.MaxUint64)))},
		{"uint8", uint8(255), Int(255)},
		{"bool true", true, Int(1)},
		{"bool false", false, Int(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromDriver(tt.input, KindNull))
		})
	}
}

func TestFromDriver_FloatAndNil(t *testing.T) {
	assert.Equal(t, Real(42.5), FromDriver(float64(42.5), KindNull))
	assert.Equal(t, Real(float64(float32(1.5))), FromDriver(float32(1.5), KindNull))
	assert.True(t, FromDriver(nil, KindInteger).IsNull())
	assert.True(t, FromDriver(struct{}{}, KindText).IsNull(), "unsupported types map to missing")
}

func TestFromDriver_TextByKind(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		kind     Kind
		expected Value
	}{
		{"text column keeps digits as text", "123", KindText, Text("123")},
		{"bytes in text column", []byte("JFK"), KindText, Text("JFK")},
		{"bytes in integer column", []byte("180"), KindInteger, Int(180)},
		{"decimal bytes in integer column", []byte("180.5"), KindInteger, Real(180.5)},
		{"bytes in real column", []byte("2.25"), KindReal, Real(2.25)},
		{"unparseable in integer column", []byte("n/a"), KindInteger, Text("n/a")},
		{"string with spaces", " 7 ", KindInteger, Int(7)},
		{"unknown kind stays text", "42", KindNull, Text("42")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromDriver(tt.input, tt.kind))
		})
	}
}

func TestFromDriver_Time(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, Text("2025-03-01T12:00:00Z"), FromDriver(ts, KindNull))
}

func TestKindFromDatabaseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"INTEGER", KindInteger},
		{"BIGINT", KindInteger},
		{"int4", KindInteger},
		{"REAL", KindReal},
		{"DOUBLE", KindReal},
		{"DECIMAL", KindReal},
		{"NUMERIC", KindReal},
		{"float8", KindReal},
		{"TEXT", KindText},
		{"VARCHAR", KindText},
		{"", KindNull},
		{"BLOB", KindNull},
		{"UNSIGNED BIGINT", KindInteger},
		{"smallint", KindInteger},
		{"DOUBLE PRECISION", KindReal},
		{"DECIMAL(10,2)", KindReal},
		{"VARCHAR(20)", KindText},
		{"character varying", KindText},
		{"POINT", KindNull},
		{"INTERVAL", KindNull},
		{"GEOMETRY", KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindFromDatabaseType(tt.input))
		})
	}
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindNull, InferKind(nil))
	assert.Equal(t, KindNull, InferKind([]Value{Null(), Null()}))
	assert.Equal(t, KindInteger, InferKind([]Value{Int(1), Null(), Int(3)}))
	assert.Equal(t, KindReal, InferKind([]Value{Int(1), Real(2.5)}))
	assert.Equal(t, KindReal, InferKind([]Value{Real(2.5), Int(1)}))
	assert.Equal(t, KindText, InferKind([]Value{Int(1), Text("x")}))
}
