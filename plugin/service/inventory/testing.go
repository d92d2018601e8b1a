// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"

	"github.com/cons3rt/cons3rt.core/internal/credential"
	"github.com/cons3rt/cons3rt.core/internal/transport"
)

var (
	testRunDetailPath  = regexp.MustCompile(`^/api/drs/(\d+)$`)
	testHostDetailPath = regexp.MustCompile(`^/api/drs/(\d+)/host/(\d+)$`)
)

// testAPIServer is a fake CONS3RT API for exercising the client and fetch
// pipeline.
type testAPIServer struct {
	server *httptest.Server

	mu       sync.Mutex
	requests int

	runs        []map[string]any
	runDetails  map[int]map[string]any
	hostDetails map[string]map[string]any
	// failStatus, when set for a path, short-circuits that path with the
	// given HTTP status.
	failStatus map[string]int
}

func (s *testAPIServer) start() *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		if status, ok := s.failStatus[r.URL.Path]; ok {
			http.Error(w, "injected failure", status)
			return
		}

		var resp any
		switch {
		case r.URL.Path == "/api/drs":
			if r.URL.Query().Get("search_type") != "SEARCH_AVAILABLE" || r.URL.Query().Get("in_project") != "true" {
				http.Error(w, "unexpected query: "+r.URL.RawQuery, http.StatusBadRequest)
				return
			}
			resp = s.runs
		case testHostDetailPath.MatchString(r.URL.Path):
			m := testHostDetailPath.FindStringSubmatch(r.URL.Path)
			resp = s.hostDetails[m[1]+"/"+m[2]]
		case testRunDetailPath.MatchString(r.URL.Path):
			m := testRunDetailPath.FindStringSubmatch(r.URL.Path)
			id, _ := strconv.Atoi(m[1])
			resp = s.runDetails[id]
		}
		if resp == nil {
			http.Error(w, "unknown path: "+r.URL.Path, http.StatusNotFound)
			return
		}

		b, err := json.Marshal(resp)
		if err != nil {
			http.Error(w, "unable to marshal response: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(b); err != nil {
			http.Error(w, "unable to write response: "+err.Error(), http.StatusBadRequest)
			return
		}
	}))
	s.server = ts
	return ts
}

func (s *testAPIServer) stop() {
	s.server.Close()
}

func (s *testAPIServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// newTestAPIServer builds the fake API for the canonical scenario: reserved
// runs 1 (hosts 11, 12) and 2 (host 3), non-reserved run 3 with five hosts
// that must never be enumerated.
func newTestAPIServer() *testAPIServer {
	s := &testAPIServer{
		runs: []map[string]any{
			{"id": 1, "name": "run-one", "fapStatus": "RESERVED"},
			{"id": 2, "name": "run-two", "fapStatus": "RESERVED"},
			{"id": 3, "name": "run-three", "fapStatus": "RELEASED"},
		},
		runDetails: map[int]map[string]any{
			1: {
				"id":   1,
				"name": "run-one",
				"deploymentRunHosts": []map[string]any{
					{"id": 11, "systemRole": "web"},
					{"id": 12, "systemRole": "db"},
				},
			},
			2: {
				"id":   2,
				"name": "run-two",
				"deploymentRunHosts": []map[string]any{
					{"id": 3, "systemRole": "lb"},
				},
			},
			3: {
				"id":   3,
				"name": "run-three",
				"deploymentRunHosts": []map[string]any{
					{"id": 31}, {"id": 32}, {"id": 33}, {"id": 34}, {"id": 35},
				},
			},
		},
		hostDetails: map[string]map[string]any{
			"1/11": {
				"id":         11,
				"systemRole": "web",
				"hostname":   "web01",
				"numCpus":    4,
				"ipAddresses": []any{
					map[string]any{"ipAddress": "10.0.0.11", "networkName": "user-net"},
				},
				"Tags": map[string]any{"CostCenter": "eng"},
			},
			"1/12": {
				"id":         12,
				"systemRole": "db",
				"hostname":   "db01",
				"numCpus":    8,
			},
			"2/3": {
				"id":         3,
				"systemRole": "lb",
				"hostname":   "lb01",
				"numCpus":    2,
			},
		},
	}
	return s
}

func testCredentials() *credential.Config {
	return &credential.Config{
		CertFilePath: "/etc/pki/user.p12",
		CertPassword: "secret",
		Token:        "project-token",
	}
}

// testSession returns a session against the fake server that skips the
// client-certificate transport and retry delays.
func testSession(base string, opt ...transport.Option) (*transport.Session, error) {
	opts := append([]transport.Option{
		transport.WithTransport(http.DefaultTransport),
		transport.WithRetryDelay(0),
	}, opt...)
	return transport.NewSession(base, testCredentials(), opts...)
}

// testSessionOptions are the transport options every plugin-level test
// uses: no client certificate, no retry delay.
func testSessionOptions() []transport.Option {
	return []transport.Option{
		transport.WithTransport(http.DefaultTransport),
		transport.WithRetryDelay(0),
	}
}

// testSourceConfig returns a validated source configuration pointed at the
// fake server.
func testSourceConfig(base string) *SourceConfig {
	return &SourceConfig{
		Plugin: "cons3rt",
		URL:    base,
		Credentials: &credential.CredentialAttributes{
			CertFilePath: "/etc/pki/user.p12",
			CertPassword: "secret",
			Token:        "project-token",
		},
	}
}
