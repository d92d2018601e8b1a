// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FetchHosts produces the complete, detailed host list for the project's
// reserved deployment runs.
//
// Stage 1 fans out one ListRunHosts call per reserved run; stage 2 fans out
// one GetHostDetail call per collected stub. Each stage runs on a worker
// pool bounded at maxWorkers and joins fully before the next starts. A
// zero-value errgroup never cancels siblings, so a task failure lets every
// in-flight call in its stage resolve before the first error surfaces;
// there is no partial-result delivery.
//
// The returned list is sorted ascending by host id. The ordering is a
// deliverable contract: downstream grouping and variable assignment must be
// deterministic across fetches regardless of task completion order.
func (c *Client) FetchHosts(ctx context.Context, maxWorkers int) ([]HostDetail, error) {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	runs, err := c.ListDeploymentRuns(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var stubs []RunHost
	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for _, run := range runs {
		if !run.Reserved() {
			continue
		}
		run := run
		g.Go(func() error {
			hosts, err := c.ListRunHosts(ctx, run.ID)
			if err != nil {
				return fmt.Errorf("error listing hosts for deployment run %d: %w", run.ID, err)
			}
			mu.Lock()
			stubs = append(stubs, hosts...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := make([]HostDetail, 0, len(stubs))
	var g2 errgroup.Group
	g2.SetLimit(maxWorkers)
	for _, stub := range stubs {
		stub := stub
		g2.Go(func() error {
			detail, err := c.GetHostDetail(ctx, stub.RunID, stub.ID, stub.RunName)
			if err != nil {
				return fmt.Errorf("error getting detail for host %d in deployment run %d: %w", stub.ID, stub.RunID, err)
			}
			mu.Lock()
			details = append(details, detail)
			mu.Unlock()
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(details, func(i, j int) bool { return details[i].ID < details[j].ID })
	return details, nil
}
