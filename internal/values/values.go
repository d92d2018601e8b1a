// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package values provides accessors for loosely typed attribute maps, such
// as a decoded YAML source file.
package values

import (
	"fmt"
)

// GetStringValue returns the string held at key k. When required is set, a
// missing or empty value is an error; otherwise the empty string is
// returned. A present value of the wrong type is always an error.
func GetStringValue(in map[string]any, k string, required bool) (string, error) {
	v, ok := in[k]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required value %q", k)
		}
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type for value %q: want string, got %T", k, v)
	}
	if s == "" && required {
		return "", fmt.Errorf("missing required value %q", k)
	}
	return s, nil
}

// GetBoolValue returns the bool held at key k. When required is set, a
// missing key is an error; otherwise false is returned.
func GetBoolValue(in map[string]any, k string, required bool) (bool, error) {
	v, ok := in[k]
	if !ok {
		if required {
			return false, fmt.Errorf("missing required value %q", k)
		}
		return false, nil
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type for value %q: want bool, got %T", k, v)
	}
	return b, nil
}

// Fields returns the set of keys present in the map. Callers use it to
// reject unrecognized attributes.
func Fields(in map[string]any) map[string]struct{} {
	fields := make(map[string]struct{}, len(in))
	for k := range in {
		fields[k] = struct{}{}
	}
	return fields
}
