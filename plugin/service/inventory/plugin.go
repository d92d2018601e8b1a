// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cons3rt/cons3rt.core/internal/credential"
	"github.com/cons3rt/cons3rt.core/internal/transport"
)

// InventoryPlugin implements the CONS3RT inventory source: source-file
// verification, the cached fetch, and sink population. It holds no state;
// everything a fetch needs arrives as arguments.
type InventoryPlugin struct{}

// Sink accepts inventory structure and host variables. Semantics beyond
// plain membership and variable assignment (composed variables, keyed
// groups, conditional groups) belong to the sink's implementation.
type Sink interface {
	AddGroup(name string)
	AddChild(parent, child string)
	AddHost(group, name string)
	SetVariable(host, key string, value any)
}

// ValidateSource reports whether path is a source file this plugin
// consumes: a readable regular file whose name ends in cons3rt.yml or
// cons3rt.yaml.
func (p *InventoryPlugin) ValidateSource(path string) bool {
	if !strings.HasSuffix(path, "cons3rt.yml") && !strings.HasSuffix(path, "cons3rt.yaml") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Fetch produces the inventory snapshot for the configured project.
//
// With a cache attached, a hit is returned without any network activity and
// a miss (or WithFlushCache) triggers a full fetch whose result is stored
// before being returned; a cache round-trip reproduces the serialized
// snapshot byte for byte. The fetch itself is atomic: a failure in either
// pipeline stage yields an error and no snapshot.
func (p *InventoryPlugin) Fetch(ctx context.Context, cfg *SourceConfig, opt ...FetchOption) (Snapshot, error) {
	opts, err := getFetchOpts(opt...)
	if err != nil {
		return nil, err
	}

	if opts.WithCache != nil && !opts.WithFlushCache {
		data, ok, err := opts.WithCache.Lookup(opts.WithCacheKey)
		if err != nil {
			return nil, fmt.Errorf("error reading cached inventory: %w", err)
		}
		if ok {
			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return nil, fmt.Errorf("error decoding cached inventory: %w", err)
			}
			return snap, nil
		}
	}

	creds, err := credential.NewConfig(
		credential.WithCertificateFile(cfg.Credentials.CertFilePath),
		credential.WithCertificatePassword(cfg.Credentials.CertPassword),
		credential.WithToken(cfg.Credentials.Token),
	)
	if err != nil {
		return nil, err
	}

	session, err := transport.NewSession(cfg.URL, creds, opts.WithSessionOptions...)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(session)
	if err != nil {
		return nil, err
	}

	hosts, err := client.FetchHosts(ctx, opts.WithMaxWorkers)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{GroupName: hosts}

	if opts.WithCache != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("error encoding inventory for cache: %w", err)
		}
		if err := opts.WithCache.Store(opts.WithCacheKey, data); err != nil {
			return nil, fmt.Errorf("error storing cached inventory: %w", err)
		}
	}

	return snap, nil
}

// Populate hands the snapshot to the sink: each group is added and attached
// under all, and every host registers under its role identifier with its
// flattened record as host variables. Hosts with an empty role identifier
// are skipped entirely; there is no partial registration.
func (p *InventoryPlugin) Populate(sink Sink, snap Snapshot) {
	groups := make([]string, 0, len(snap))
	for group := range snap {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	for _, group := range groups {
		sink.AddGroup(group)
		sink.AddChild("all", group)
		for _, host := range snap[group] {
			hostname := host.Hostname()
			if hostname == "" {
				continue
			}
			sink.AddHost(group, hostname)
			for k, v := range FlattenRecord(host.Attributes) {
				sink.SetVariable(hostname, k, v)
			}
		}
	}
}
