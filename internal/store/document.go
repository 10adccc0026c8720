package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

// String returns the field as a string. Numbers are formatted without exponent.
func (d Document) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Float returns the numeric field, parsing strings. Missing or invalid values are 0.
func (d Document) Float(key string) float64 {
	switch val := d[key].(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case json.Number:
		f, _ := val.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f
	default:
		return 0
	}
}

// Clone returns a copy of d; nested documents and maps are copied too.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Document:
		return val.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Document(val).Clone())
	case map[string]string:
		m := make(map[string]string, len(val))
		for k, s := range val {
			m[k] = s
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(val))
		for i := range val {
			s[i] = cloneValue(val[i])
		}
		return s
	default:
		return v
	}
}

// Compact drops nil values and empty strings, recursing into nested maps.
// Firebase rejects undefined values, so documents are compacted before writes
// that carry arbitrary gateway input.
func Compact(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val == "" {
				continue
			}
			out[k] = val
		case Document:
			if c := Compact(val); len(c) > 0 {
				out[k] = c
			}
		case map[string]interface{}:
			if c := Compact(Document(val)); len(c) > 0 {
				out[k] = map[string]interface{}(c)
			}
		default:
			out[k] = v
		}
	}
	return out
}

// Plain converts d and nested Documents into map[string]interface{} so SDK
// encoders that switch on concrete map types accept it.
func (d Document) Plain() map[string]interface{} {
	out := make(map[string]interface{}, len(d))
	for k, v := range d {
		if nested, ok := v.(Document); ok {
			out[k] = nested.Plain()
			continue
		}
		out[k] = v
	}
	return out
}
