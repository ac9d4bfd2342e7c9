package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NoData is what the profile page shows for a stat without a value.
const NoData = "--"

type Kind int

const (
	// KindString is a raw token, either NoData or a duration like "12:34".
	KindString Kind = iota
	// KindRatio is a percentage divided by 100.
	KindRatio
	// KindList is a space separated token, usually hero names.
	KindList
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindRatio:
		return "ratio"
	case KindList:
		return "list"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a single stat value scraped from the profile page.
type Value struct {
	kind Kind
	str  string
	list []string
	i    int64
	f    float64
	// exact is set when a ratio is backed by dec instead of f
	exact bool
	dec   decimal.Decimal
}

func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

func RatioValue(f float64) Value {
	return Value{kind: KindRatio, f: f}
}

func DecimalRatioValue(d decimal.Decimal) Value {
	return Value{kind: KindRatio, exact: true, dec: d}
}

func ListValue(tokens ...string) Value {
	return Value{kind: KindList, list: append([]string{}, tokens...)}
}

func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func (v Value) clone() Value {
	if v.list != nil {
		v.list = append([]string{}, v.list...)
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

// Exact reports whether the value is a ratio represented as an exact decimal.
func (v Value) Exact() bool {
	return v.exact
}

// Str returns the raw token of a KindString value.
func (v Value) Str() string {
	return v.str
}

// List returns a copy of the tokens of a KindList value.
func (v Value) List() []string {
	return append([]string{}, v.list...)
}

// Int returns the integer of a KindInt value.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the numeric value of a KindRatio, KindFloat or KindInt value.
func (v Value) Float() float64 {
	switch {
	case v.kind == KindInt:
		return float64(v.i)
	case v.exact:
		return v.dec.InexactFloat64()
	}
	return v.f
}

// Decimal returns the numeric value of a KindRatio, KindFloat or KindInt value
// as a decimal. Exact ratios are returned as is.
func (v Value) Decimal() decimal.Decimal {
	switch {
	case v.exact:
		return v.dec
	case v.kind == KindInt:
		return decimal.NewFromInt(v.i)
	}
	return decimal.NewFromFloat(v.f)
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.exact != other.exact {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	case KindInt:
		return v.i == other.i
	}
	if v.exact {
		return v.dec.Equal(other.dec)
	}
	return v.f == other.f
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		return "[" + strings.Join(v.list, " ") + "]"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	}
	if v.exact {
		return v.dec.String()
	}
	return strconv.FormatFloat(v.f, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindList:
		return json.Marshal(v.list)
	case KindInt:
		return json.Marshal(v.i)
	}
	if v.exact {
		return []byte(v.dec.String()), nil
	}
	return json.Marshal(v.f)
}

// parseFinite is strconv.ParseFloat without "Inf" and "NaN", which no stat
// can hold and JSON cannot encode.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return f, nil
}

// Coercer turns a single token of text into a Value.
type Coercer func(token string) (Value, error)

// NewCoercer returns a Coercer that calls Coerce with useDecimal.
func NewCoercer(useDecimal bool) Coercer {
	return func(token string) (Value, error) {
		return Coerce(token, useDecimal)
	}
}

// Coerce infers the type of a token. The first matching rule wins:
//  1. NoData or anything containing ':' stays a string
//  2. anything containing '%' is a ratio
//  3. anything containing ' ' is a list
//  4. everything else is a number, ',' separators are ignored
//
// With useDecimal, ratios are built from the shortest decimal representation of
// the float ratio so binary rounding artifacts are not carried over.
func Coerce(token string, useDecimal bool) (Value, error) {
	switch {
	case token == NoData || strings.Contains(token, ":"):
		return StringValue(token), nil

	case strings.Contains(token, "%"):
		percent, err := parseFinite(strings.TrimSpace(strings.ReplaceAll(token, "%", "")))
		if err != nil {
			return Value{}, fmt.Errorf("coerce ratio %q: %w", token, err)
		}
		ratio := percent / 100
		if !useDecimal {
			return RatioValue(ratio), nil
		}
		d, err := decimal.NewFromString(strconv.FormatFloat(ratio, 'f', -1, 64))
		if err != nil {
			return Value{}, fmt.Errorf("coerce ratio %q: %w", token, err)
		}
		return DecimalRatioValue(d), nil

	case strings.Contains(token, " "):
		return ListValue(strings.Split(token, " ")...), nil
	}

	number := strings.ReplaceAll(token, ",", "")
	if strings.Contains(number, ".") {
		f, err := parseFinite(number)
		if err != nil {
			return Value{}, fmt.Errorf("coerce float %q: %w", token, err)
		}
		return FloatValue(f), nil
	}
	i, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("coerce int %q: %w", token, err)
	}
	return IntValue(i), nil
}
