package domain

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Decimal is a monetary amount with exact decimal semantics.
// It is stored as BSON Decimal128 and serialized to JSON as a string token,
// so prices never pass through a binary float on either boundary.
type Decimal struct {
	value primitive.Decimal128
}

// ParseDecimal parses a decimal token like "4500000.00".
func ParseDecimal(s string) (Decimal, error) {
	v, err := primitive.ParseDecimal128(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Decimal{value: v}, nil
}

// MustDecimal parses a decimal token or panics. For tests and seed data.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecimalFromInt creates a Decimal from an integer amount.
func NewDecimalFromInt(n int64) Decimal {
	v, _ := primitive.ParseDecimal128(strconv.FormatInt(n, 10))
	return Decimal{value: v}
}

func (d Decimal) String() string {
	return d.value.String()
}

// IsZero reports whether the value is the zero Decimal.
func (d Decimal) IsZero() bool {
	return d.value == primitive.Decimal128{}
}

// Decimal128 returns the raw BSON representation.
func (d Decimal) Decimal128() primitive.Decimal128 {
	return d.value
}

// Rat converts the value into an exact rational number.
func (d Decimal) Rat() (*big.Rat, error) {
	bi, exp, err := d.value.BigInt()
	if err != nil {
		return nil, fmt.Errorf("decimal %s to rational: %w", d.value, err)
	}
	r := new(big.Rat).SetInt(bi)
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(exp))), nil)
	if exp >= 0 {
		return r.Mul(r, new(big.Rat).SetInt(pow)), nil
	}
	return r.Quo(r, new(big.Rat).SetInt(pow)), nil
}

// Cmp compares d with other: -1 if d < other, 0 if equal, +1 if d > other.
func (d Decimal) Cmp(other Decimal) (int, error) {
	a, err := d.Rat()
	if err != nil {
		return 0, err
	}
	b, err := other.Rat()
	if err != nil {
		return 0, err
	}
	return a.Cmp(b), nil
}

// MarshalJSON emits the decimal as a quoted string token.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, d.value.String()), nil
}

// UnmarshalJSON accepts both a quoted string token and a bare numeric token.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Decimal{}
		return nil
	}
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := primitive.ParseDecimal128(s)
	if err != nil {
		return fmt.Errorf("decimal from JSON %q: %w", s, err)
	}
	d.value = v
	return nil
}

// MarshalBSONValue stores the value as BSON Decimal128.
func (d Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.value)
}

// UnmarshalBSONValue reads Decimal128 and tolerates the integer and string
// shapes a schemaless store may hold for legacy documents.
func (d *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bsoncore.Value{Type: t, Data: data}
	switch t {
	case bsontype.Decimal128:
		v, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("malformed bson decimal128 value")
		}
		d.value = v
		return nil
	case bsontype.Int32:
		if v, ok := raw.Int32OK(); ok {
			*d = NewDecimalFromInt(int64(v))
			return nil
		}
	case bsontype.Int64:
		if v, ok := raw.Int64OK(); ok {
			*d = NewDecimalFromInt(v)
			return nil
		}
	case bsontype.String:
		if s, ok := raw.StringValueOK(); ok {
			parsed, err := ParseDecimal(s)
			if err != nil {
				return err
			}
			*d = parsed
			return nil
		}
	case bsontype.Null:
		*d = Decimal{}
		return nil
	}
	return fmt.Errorf("cannot decode bson %s into Decimal", t)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
