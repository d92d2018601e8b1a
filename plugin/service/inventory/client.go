// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cons3rt/cons3rt.core/internal/errors"
	"github.com/cons3rt/cons3rt.core/internal/transport"
)

const targetListRuns = "/api/drs?search_type=SEARCH_AVAILABLE&in_project=true"

// Client implements the three CONS3RT API operations the fetch pipeline is
// built from. All resilience lives in the transport; operations here add no
// retry logic of their own, and transport errors propagate unchanged.
type Client struct {
	session *transport.Session
}

// NewClient returns a Client over an established session.
func NewClient(session *transport.Session) (*Client, error) {
	if session == nil {
		return nil, errors.InvalidArgumentError("Invalid client arguments", map[string]string{
			"session": "must not be nil",
		})
	}
	return &Client{session: session}, nil
}

// ListDeploymentRuns returns every available deployment run in the project.
func (c *Client) ListDeploymentRuns(ctx context.Context) ([]DeploymentRun, error) {
	resp, err := c.session.Get(ctx, targetListRuns)
	if err != nil {
		return nil, err
	}
	if _, err := transport.ParseResponse(resp); err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("error decoding deployment run list: %w", err)
	}

	runs := make([]DeploymentRun, 0, len(raw))
	for _, r := range raw {
		run, err := decodeRun(r)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ListRunHosts returns the run's hosts, each stamped with the parent run's
// id and name before being returned.
func (c *Client) ListRunHosts(ctx context.Context, runID int) ([]RunHost, error) {
	resp, err := c.session.Get(ctx, fmt.Sprintf("/api/drs/%d", runID))
	if err != nil {
		return nil, err
	}
	if _, err := transport.ParseResponse(resp); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("error decoding deployment run %d: %w", runID, err)
	}
	detail, err := decodeRunDetail(raw)
	if err != nil {
		return nil, err
	}

	hosts := make([]RunHost, 0, len(detail.DeploymentRunHosts))
	for _, h := range detail.DeploymentRunHosts {
		h[stampRunID] = runID
		h[stampRunName] = detail.Name
		host, err := decodeRunHost(h)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

// GetHostDetail returns the full record for one host, stamped with the
// parent run's id and name.
func (c *Client) GetHostDetail(ctx context.Context, runID, hostID int, runName string) (HostDetail, error) {
	resp, err := c.session.Get(ctx, fmt.Sprintf("/api/drs/%d/host/%d", runID, hostID))
	if err != nil {
		return HostDetail{}, err
	}
	if _, err := transport.ParseResponse(resp); err != nil {
		return HostDetail{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return HostDetail{}, fmt.Errorf("error decoding host %d in deployment run %d: %w", hostID, runID, err)
	}
	raw[stampRunID] = runID
	raw[stampRunName] = runName

	return decodeHostDetail(raw)
}
