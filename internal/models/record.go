// Package models defines the catalog entities shared by the build pipeline
// and the retrieval engine.
package models

// RawRecord is one decoded line of an input JSONL stream. The source datasets
// carry no schema version, so accessors tolerate missing or mistyped fields
// and return zero values instead of failing.
type RawRecord map[string]any

// Str returns the string at key, or "" when absent or not a string.
func (r RawRecord) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Strs returns the string slice at key. Non-string elements are skipped.
func (r RawRecord) Strs(key string) []string {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map returns the nested object at key, or nil.
func (r RawRecord) Map(key string) map[string]any {
	if v, ok := r[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Float returns the numeric value at key. encoding/json decodes all JSON
// numbers as float64, but int is handled too for records built in tests.
func (r RawRecord) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Int returns the integer value at key, truncating fractional parts.
func (r RawRecord) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Bool returns the boolean value at key, or false.
func (r RawRecord) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// ProductKey resolves the identifier joining a record to its product:
// parent_asin when present, else asin. Empty when the record carries neither.
func (r RawRecord) ProductKey() string {
	if k := r.Str("parent_asin"); k != "" {
		return k
	}
	return r.Str("asin")
}
