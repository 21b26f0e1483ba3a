package giantbomb

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Params are the resource-specific query parameters of one request.
// Supported value types: string, int, []string and []int (comma joined),
// and map[string]string (serialized as k1:v1;k2:v2).
type Params map[string]any

// encoded marks a value that is already percent-encoded.
type encoded string

// buildURL returns base + path + "/?api_key=<key>&format=json" followed by
// every parameter as &name=value, in name order.
func buildURL(base, path, apiKey string, params Params) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(path)
	b.WriteString("/?api_key=")
	b.WriteString(escape(apiKey))
	b.WriteString("&format=json")

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteByte('&')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(encodeValue(params[name]))
	}
	return b.String()
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case encoded:
		return string(val)
	case string:
		return escape(val)
	case int:
		return strconv.Itoa(val)
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = escape(s)
		}
		return strings.Join(parts, ",")
	case []int:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = escape(k) + ":" + escape(val[k])
		}
		return strings.Join(parts, ";")
	default:
		return escape(fmt.Sprint(val))
	}
}

// escape percent-encodes s for use in a query value, spaces as %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// escapeSearchQuery also encodes hyphens, which the search endpoint
// otherwise misreads.
func escapeSearchQuery(s string) string {
	return strings.ReplaceAll(escape(s), "-", "%2D")
}
