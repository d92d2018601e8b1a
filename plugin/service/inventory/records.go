// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Keys stamped onto every host record to carry its parent run's identity.
const (
	stampRunID   = "drId"
	stampRunName = "drName"
)

// DeploymentRun is the typed view of a run summary returned by the run
// listing. Fields the pipeline does not dispatch on are preserved in Extra
// so upstream schema additions flow through untouched.
type DeploymentRun struct {
	ID        int            `mapstructure:"id"`
	Name      string         `mapstructure:"name"`
	FapStatus string         `mapstructure:"fapStatus"`
	Extra     map[string]any `mapstructure:",remain"`
}

// Reserved reports whether the run's resources are currently allocated and
// its hosts queryable.
func (r DeploymentRun) Reserved() bool {
	return r.FapStatus == StatusReserved
}

// runDetail is the typed view of the run detail endpoint, the source of the
// per-run host stubs.
type runDetail struct {
	ID                 int              `mapstructure:"id"`
	Name               string           `mapstructure:"name"`
	DeploymentRunHosts []map[string]any `mapstructure:"deploymentRunHosts"`
	Extra              map[string]any   `mapstructure:",remain"`
}

// RunHost is a per-run host stub queued for the detail lookup, stamped with
// its parent run's identity.
type RunHost struct {
	ID      int
	RunID   int
	RunName string
	// Attributes is the raw stub, stamps included.
	Attributes map[string]any
}

// HostDetail is the full host record returned by the per-host detail call.
type HostDetail struct {
	ID         int    `json:"id"`
	SystemRole string `json:"systemRole"`
	RunID      int    `json:"drId"`
	RunName    string `json:"drName"`
	// Attributes is the complete raw record, stamps included. It is the
	// flattening input handed to the sink as host variables.
	Attributes map[string]any `json:"attributes"`
}

// Hostname returns the record's role identifier, the name it registers
// under in the inventory. An empty role means the host is unusable as a
// lookup key and is skipped entirely.
func (h HostDetail) Hostname() string {
	return h.SystemRole
}

// Snapshot maps a group name to its ordered host records. It is the unit of
// delivery to the sink and of cache serialization.
type Snapshot map[string][]HostDetail

func decodeRun(raw map[string]any) (DeploymentRun, error) {
	var run DeploymentRun
	if err := mapstructure.Decode(raw, &run); err != nil {
		return DeploymentRun{}, fmt.Errorf("error decoding deployment run: %w", err)
	}
	return run, nil
}

func decodeRunDetail(raw map[string]any) (runDetail, error) {
	var detail runDetail
	if err := mapstructure.Decode(raw, &detail); err != nil {
		return runDetail{}, fmt.Errorf("error decoding deployment run detail: %w", err)
	}
	return detail, nil
}

func decodeRunHost(raw map[string]any) (RunHost, error) {
	var fields struct {
		ID      int    `mapstructure:"id"`
		RunID   int    `mapstructure:"drId"`
		RunName string `mapstructure:"drName"`
	}
	if err := mapstructure.Decode(raw, &fields); err != nil {
		return RunHost{}, fmt.Errorf("error decoding deployment run host: %w", err)
	}
	return RunHost{
		ID:         fields.ID,
		RunID:      fields.RunID,
		RunName:    fields.RunName,
		Attributes: raw,
	}, nil
}

func decodeHostDetail(raw map[string]any) (HostDetail, error) {
	var fields struct {
		ID         int    `mapstructure:"id"`
		SystemRole string `mapstructure:"systemRole"`
		RunID      int    `mapstructure:"drId"`
		RunName    string `mapstructure:"drName"`
	}
	if err := mapstructure.Decode(raw, &fields); err != nil {
		return HostDetail{}, fmt.Errorf("error decoding deployment run host detail: %w", err)
	}
	return HostDetail{
		ID:         fields.ID,
		SystemRole: fields.SystemRole,
		RunID:      fields.RunID,
		RunName:    fields.RunName,
		Attributes: raw,
	}, nil
}
