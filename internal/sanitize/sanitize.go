// Package sanitize neutralizes injected markup in form input before it
// reaches validation or storage.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips every tag and attribute. No HTML survives.
var policy = bluemonday.StrictPolicy()

// String removes all HTML tags and attributes from s and trims surrounding
// whitespace.
func String(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// Map returns a copy of data with every string value, including strings
// inside slices, passed through String. Other values are carried over
// unchanged. The input map is never mutated.
func Map(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case string:
			out[key] = String(v)
		case []any:
			items := make([]any, len(v))
			for i, item := range v {
				if s, ok := item.(string); ok {
					items[i] = String(s)
				} else {
					items[i] = item
				}
			}
			out[key] = items
		case []string:
			items := make([]string, len(v))
			for i, s := range v {
				items[i] = String(s)
			}
			out[key] = items
		default:
			out[key] = value
		}
	}
	return out
}
