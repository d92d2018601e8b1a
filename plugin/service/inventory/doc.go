// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

// Package inventory sources hosts from a CONS3RT environment.
//
// A deployment run is a remote instantiation of a deployed topology,
// containing zero or more hosts. Only runs whose fapStatus is RESERVED have
// queryable hosts; every other run contributes nothing to the inventory.
//
// The fetch is a two-stage pipeline over the CONS3RT REST API: the run
// listing is filtered to reserved runs, one run-detail call per reserved
// run collects host stubs (each stamped with its parent run's id and name),
// and one detail call per stub collects the full host records. Each stage
// fans out on a bounded worker pool and joins fully before the next stage
// starts; a failure anywhere aborts the whole fetch once the stage drains,
// so callers either receive the complete host set or an error, never a
// partial inventory.
//
// Hosts register under their role identifier (the systemRole field), which
// doubles as the inventory hostname; a host with an empty role is skipped
// entirely. Records are handed to the sink with their nested camelCase keys
// converted to snake_case, except the Tags subtree which is preserved
// verbatim. The final host list is sorted ascending by host id so inventory
// output is deterministic across fetches.
//
// The plugin surface is three operations invoked by an external driver:
// ValidateSource, Fetch (with an explicit, optional cache handle), and
// Populate. Composed-variable and keyed-group semantics belong to the sink.
