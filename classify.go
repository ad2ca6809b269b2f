package formschema

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
	"github.com/shopspring/decimal"
)

// shape is the structural class of a data value.
type shape int

const (
	shapeScalar shape = iota
	shapeSequence
	shapeMap
)

// classify decides whether v is a sequence, a keyed map or a scalar. Slices
// and arrays are sequences. A string-keyed map whose keys are exactly
// "0".."n-1" is a sequence too; every other string-keyed map, including an
// empty one, is a keyed map.
func classify(v any) shape {
	switch t := v.(type) {
	case nil:
		return shapeScalar
	case []any, []string:
		return shapeSequence
	case map[string]any:
		if denseIndexKeys(mapKeys(t)) {
			return shapeSequence
		}
		return shapeMap
	case map[string]string:
		if denseIndexKeys(mapKeys(t)) {
			return shapeSequence
		}
		return shapeMap
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is raw bytes, not a list
			return shapeScalar
		}
		return shapeSequence
	case reflect.Array:
		return shapeSequence
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return shapeScalar
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		if denseIndexKeys(keys) {
			return shapeSequence
		}
		return shapeMap
	}
	return shapeScalar
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func denseIndexKeys(keys []string) bool {
	if len(keys) == 0 {
		return false
	}
	seen := make([]bool, len(keys))
	for _, k := range keys {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(keys) || strconv.Itoa(i) != k || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// entries is an object view: keys sorted, values looked up by key.
type entries struct {
	keys   []string
	values map[string]any
}

func (e entries) has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// objectView returns the keyed-map view of v. Callers classify first.
func objectView(v any) entries {
	var m map[string]any
	switch t := v.(type) {
	case map[string]any:
		m = t
	case map[string]string:
		m = make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
	default:
		rv := reflect.ValueOf(v)
		m = make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
	}
	keys := mapKeys(m)
	sort.Strings(keys)
	return entries{keys: keys, values: m}
}

// sequenceView returns the elements of v in index order. Callers classify first.
func sequenceView(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		// dense "0".."n-1" keys
		out := make([]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			i, _ := strconv.Atoi(iter.Key().String())
			out[i] = iter.Value().Interface()
		}
		return out
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// numberLiteral matches json.Number and look-alikes from other JSON decoders.
type numberLiteral interface {
	String() string
	Float64() (float64, error)
	Int64() (int64, error)
}

// isInteger accepts native Go integers and integral number literals. Floats
// are never integers, even when their value is whole.
func isInteger(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		return integralLiteral(string(t))
	case numberLiteral:
		return integralLiteral(t.String())
	}
	return false
}

func integralLiteral(s string) bool {
	if strings.ContainsAny(s, ".eE") {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// numericString follows the shape PHP's is_numeric accepts: optional
// surrounding whitespace, a sign, digits with an optional fraction and an
// optional exponent. Hex and binary forms are not numeric.
var numericString = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?[ \t\n\r\v\f]*$`)

// isNumeric accepts native numbers, number literals and numeric strings.
func isNumeric(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case json.Number:
		return numericString.MatchString(string(t))
	case string:
		return numericString.MatchString(t)
	case numberLiteral:
		return numericString.MatchString(t.String())
	}
	return false
}

// numericValue is a candidate number ready for bound comparison.
type numericValue struct {
	dec decimal.Decimal
	nan bool
	inf int // +1 or -1 for infinities
}

// toNumeric converts a value that passed isNumeric. Strings are parsed from
// their literal so no binary rounding happens before the bound's precision is
// applied; floats use their shortest decimal representation.
func toNumeric(v any) numericValue {
	switch t := v.(type) {
	case int:
		return numericValue{dec: decimal.NewFromInt(int64(t))}
	case int8:
		return numericValue{dec: decimal.NewFromInt(int64(t))}
	case int16:
		return numericValue{dec: decimal.NewFromInt(int64(t))}
	case int32:
		return numericValue{dec: decimal.NewFromInt(int64(t))}
	case int64:
		return numericValue{dec: decimal.NewFromInt(t)}
	case uint, uint8, uint16, uint32, uint64:
		return fromLiteral(strconv.FormatUint(reflect.ValueOf(t).Uint(), 10))
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case json.Number:
		return fromLiteral(string(t))
	case string:
		return fromLiteral(t)
	case numberLiteral:
		return fromLiteral(t.String())
	}
	return numericValue{nan: true}
}

func fromFloat(f float64) numericValue {
	switch {
	case math.IsNaN(f):
		return numericValue{nan: true}
	case math.IsInf(f, 1):
		return numericValue{inf: 1}
	case math.IsInf(f, -1):
		return numericValue{inf: -1}
	}
	return numericValue{dec: decimal.NewFromFloat(f)}
}

func fromLiteral(s string) numericValue {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// "5." and ".5" are numeric but not decimal literals
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return numericValue{nan: true}
		}
		return fromFloat(f)
	}
	return numericValue{dec: d}
}

// compare returns -1, 0 or 1 comparing the value rounded to the bound's
// decimal places against the bound. ok is false for NaN, which never
// violates a bound.
func (n numericValue) compare(bound *Number) (cmp int, ok bool) {
	if n.nan {
		return 0, false
	}
	if n.inf != 0 {
		return n.inf, true
	}
	b, places := bound.Decimal(), int64(bound.Places())
	if n.dec.Sign() == 0 {
		return -b.Sign(), true
	}
	// Decide by magnitude when the value is far from the bound's scale.
	// Rounding such a value would rescale it across its whole exponent.
	mag := magnitude(n.dec)
	switch {
	case b.Sign() == 0 && mag > -places, b.Sign() != 0 && mag > magnitude(b)+1:
		return n.dec.Sign(), true
	case mag < -places:
		// rounds to zero at the bound's places
		return -b.Sign(), true
	}
	return n.dec.Round(int32(places)).Cmp(b), true
}

// magnitude is the decimal exponent of d's leading digit plus one, so that
// 10^(magnitude-1) <= |d| < 10^magnitude for non-zero d.
func magnitude(d decimal.Decimal) int64 {
	return int64(d.Exponent()) + int64(d.NumDigits())
}
