package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a monetary value as stored on folio documents. Older documents carry
// amounts as strings, integers or nulls; anything that does not parse as a number
// decodes to zero instead of failing the whole read.
type Amount float64

// Decimal returns the amount as a decimal for arithmetic.
func (a Amount) Decimal() decimal.Decimal {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// AmountFromDecimal converts a decimal back into a stored amount.
func AmountFromDecimal(d decimal.Decimal) Amount {
	f, _ := d.Float64()
	return Amount(f)
}

// MarshalBSONValue always writes a double.
func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(float64(a))
}

// UnmarshalBSONValue accepts double, int32, int64, decimal128, string and null.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		if v, ok := raw.DoubleOK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Int32:
		if v, ok := raw.Int32OK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Int64:
		if v, ok := raw.Int64OK(); ok {
			*a = Amount(v)
			return nil
		}
	case bsontype.Decimal128:
		if v, ok := raw.Decimal128OK(); ok {
			*a = parseAmount(v.String())
			return nil
		}
	case bsontype.String:
		if v, ok := raw.StringValueOK(); ok {
			*a = parseAmount(v)
			return nil
		}
	}
	*a = 0
	return nil
}

// MarshalJSON writes the amount as a plain number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		*a = parseAmount(s)
		return nil
	}
	*a = parseAmount(string(b))
	return nil
}

func parseAmount(s string) Amount {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Amount(v)
}
