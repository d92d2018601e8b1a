// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"regexp"
	"strings"
)

// flattenIgnoreKeys names subtrees preserved verbatim during flattening,
// key and value both.
var flattenIgnoreKeys = map[string]struct{}{
	"Tags": {},
}

var (
	camelBoundaryRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerUpperRe    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// CamelToSnake converts one camelCase key to snake_case. Acronym runs keep
// a single boundary: "HTTPServer" becomes "http_server".
func CamelToSnake(name string) string {
	s := camelBoundaryRe.ReplaceAllString(name, "${1}_${2}")
	s = lowerUpperRe.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// FlattenRecord converts a host record's nested camelCase keys to the flat
// snake_case convention expected by the inventory sink. Maps and lists are
// recursed; subtrees named in flattenIgnoreKeys are carried over untouched.
// The input is not modified.
func FlattenRecord(record map[string]any) map[string]any {
	return flattenMap(record)
}

func flattenMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if _, ok := flattenIgnoreKeys[k]; ok {
			out[k] = v
			continue
		}
		out[CamelToSnake(k)] = flattenValue(v)
	}
	return out
}

func flattenValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return flattenMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = flattenValue(e)
		}
		return out
	default:
		return v
	}
}
