// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// cons3rt-inventory reads a cons3rt.yml source file, fetches the project's
// deployment run hosts, and prints the inventory as JSON in the same shape
// Ansible expects from an inventory script's --list output.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cons3rt/cons3rt.core/internal/cache"
	"github.com/cons3rt/cons3rt.core/plugin/service/inventory"
)

var rootCmd = &cobra.Command{
	Use:   "cons3rt-inventory",
	Short: "Builds an Ansible inventory from CONS3RT deployment runs.",
	RunE:  runFetch,

	SilenceUsage: true,
}

var (
	sourcePath   string
	refreshCache bool
	cacheDir     string
)

func init() {
	rootCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Path to the cons3rt.yml source file (required)")
	rootCmd.Flags().BoolVar(&refreshCache, "refresh-cache", false, "Ignore any cached inventory and refetch")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached inventory snapshots (overrides the source file)")
	rootCmd.MarkFlagRequired("source")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	p := new(inventory.InventoryPlugin)
	if !p.ValidateSource(sourcePath) {
		return fmt.Errorf("%s is not a cons3rt inventory source: the file must exist and end in cons3rt.yml or cons3rt.yaml", sourcePath)
	}

	cfg, err := inventory.LoadSourceConfig(sourcePath)
	if err != nil {
		return err
	}

	var opts []inventory.FetchOption
	if cfg.Cache || cacheDir != "" {
		dir := cacheDir
		if dir == "" {
			dir = cfg.CacheDir
		}
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return fmt.Errorf("error resolving the cache directory: %w", err)
			}
			dir = base + "/cons3rt-inventory"
		}
		c, err := cache.NewFile(dir)
		if err != nil {
			return err
		}
		opts = append(opts, inventory.WithCache(c, sourcePath))
		if refreshCache {
			opts = append(opts, inventory.WithFlushCache())
		}
	}

	snap, err := p.Fetch(cmd.Context(), cfg, opts...)
	if err != nil {
		return err
	}

	sink := newListSink()
	p.Populate(sink, snap)

	out, err := json.MarshalIndent(sink.list(), "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding the inventory: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// listSink accumulates the populated inventory into the --list document:
// one object per group, an all group with children, and host variables
// under _meta.hostvars.
type listSink struct {
	children map[string][]string
	hosts    map[string][]string
	hostvars map[string]map[string]any
}

func newListSink() *listSink {
	return &listSink{
		children: make(map[string][]string),
		hosts:    make(map[string][]string),
		hostvars: make(map[string]map[string]any),
	}
}

func (s *listSink) AddGroup(name string) {
	if _, ok := s.hosts[name]; !ok {
		s.hosts[name] = nil
	}
}

func (s *listSink) AddChild(parent, child string) {
	s.children[parent] = append(s.children[parent], child)
}

func (s *listSink) AddHost(group, name string) {
	s.hosts[group] = append(s.hosts[group], name)
}

func (s *listSink) SetVariable(host, key string, value any) {
	if s.hostvars[host] == nil {
		s.hostvars[host] = make(map[string]any)
	}
	s.hostvars[host][key] = value
}

func (s *listSink) list() map[string]any {
	doc := map[string]any{
		"_meta": map[string]any{"hostvars": s.hostvars},
	}
	for parent, children := range s.children {
		sort.Strings(children)
		doc[parent] = map[string]any{"children": children}
	}
	for group, hosts := range s.hosts {
		doc[group] = map[string]any{"hosts": hosts}
	}
	return doc
}
