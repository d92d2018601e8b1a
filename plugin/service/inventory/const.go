// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

const (
	// ConstPlugin defines the attribute naming the plugin a source file is
	// written for.
	ConstPlugin = "plugin"

	// ConstURL defines the attribute for the base URL of the CONS3RT API
	// (e.g., https://api.arcus-cloud.io/rest).
	ConstURL = "cons3rt_url"

	// ConstCache defines the attribute enabling the inventory cache.
	ConstCache = "cache"

	// ConstCacheDir defines the attribute for the cache directory used by
	// the file-backed cache.
	ConstCacheDir = "cache_dir"
)

const (
	// GroupName is the single inventory group every discovered host joins.
	GroupName = "cons3rt"

	// StatusReserved is the deployment run status whose hosts are
	// queryable. Runs in any other status are excluded from enumeration.
	StatusReserved = "RESERVED"

	// DefaultMaxWorkers bounds the number of concurrent API calls in each
	// fan-out stage.
	DefaultMaxWorkers = 10
)

// allowedPluginNames are the accepted values of the plugin attribute in a
// source file.
var allowedPluginNames = map[string]struct{}{
	"cons3rt":              {},
	"cons3rt.core.cons3rt": {},
}
