// Package mapper converts raw Admin API resource representations into the
// local document schema. Every mapping is total: malformed upstream fields
// degrade to absent values instead of failing the record, because one bad
// field must not drop an otherwise valid resource.
package mapper

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// externalID coerces an external id of any upstream shape (number, string)
// to its canonical string form. Missing or unusable ids yield "".
func externalID(v interface{}) string {
	switch id := v.(type) {
	case json.Number:
		return id.String()
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

func str(record map[string]interface{}, key string) string {
	s, _ := record[key].(string)
	return s
}

func boolean(record map[string]interface{}, key string) bool {
	b, _ := record[key].(bool)
	return b
}

// optFloat parses monetary and quantity fields that arrive as strings or
// numbers. Missing, empty, and non-numeric input map to absent, never zero.
func optFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return &f
		}
	case float64:
		return &n
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &f
		}
	}
	return nil
}

func optInt(v interface{}) *int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return &i
		}
	case float64:
		i := int64(n)
		return &i
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return &i
		}
	}
	return nil
}

func optTime(v interface{}) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// tagList normalizes comma-separated or array tag fields into a trimmed,
// non-empty list.
func tagList(v interface{}) []string {
	var raw []string
	switch tags := v.(type) {
	case string:
		raw = strings.Split(tags, ",")
	case []interface{}:
		for _, t := range tags {
			if s, ok := t.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}

	var out []string
	for _, t := range raw {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func subRecords(v interface{}) []map[string]interface{} {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]interface{}); ok {
			out = append(out, record)
		}
	}
	return out
}
