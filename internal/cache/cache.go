// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package cache provides the snapshot cache handle consumed by the
// inventory fetch. Keys are opaque strings supplied by the caller; key
// derivation and staleness policy belong to the caller.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache stores serialized inventory snapshots under opaque keys.
type Cache interface {
	// Lookup returns the snapshot stored under key. A miss (ok == false) is
	// not an error; it signals that a fresh fetch is required.
	Lookup(key string) (data []byte, ok bool, err error)

	// Store writes the snapshot under key, replacing any prior entry.
	Store(key string, data []byte) error
}

// Memory is an in-process Cache, safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Lookup(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (m *Memory) Store(key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
	return nil
}

// File is a Cache holding one JSON document per key under a directory. Key
// material is hashed into the filename, so arbitrary opaque keys are safe.
type File struct {
	dir string
}

// NewFile returns a file-backed cache rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".json")
}

func (f *File) Lookup(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading cache entry: %w", err)
	}
	return data, true, nil
}

func (f *File) Store(key string, data []byte) error {
	// Write-then-rename keeps a concurrent Lookup from seeing a torn entry.
	tmp, err := os.CreateTemp(f.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("error creating cache entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("error writing cache entry: %w", err)
	}
	return nil
}
