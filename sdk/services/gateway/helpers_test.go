// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/config"
	"github.com/scc-digitalhub/securegateway-sdk/sdk/services/gateway"
)

// recorded is a request seen by the fake gateway manager.
type recorded struct {
	Method      string
	Path        string
	Query       string
	Auth        string
	ContentType string
	Body        []byte
}

type fakeManager struct {
	t       *testing.T
	srv     *httptest.Server
	mu      sync.Mutex
	reqs    []recorded
	handler http.HandlerFunc
}

func newFakeManager(t *testing.T, handler http.HandlerFunc) *fakeManager {
	t.Helper()
	m := &fakeManager{t: t, handler: handler}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.reqs = append(m.reqs, recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        b,
		})
		m.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(b))
		m.handler(w, r)
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *fakeManager) requests() []recorded {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recorded(nil), m.reqs...)
}

func (m *fakeManager) last() recorded {
	m.t.Helper()
	reqs := m.requests()
	if len(reqs) == 0 {
		m.t.Fatal("no request reached the gateway manager")
	}
	return reqs[len(reqs)-1]
}

func jsonReply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

var fullCore = config.CoreConfig{
	APIKey:   "key",
	OrgID:    "org",
	SpaceID:  "space",
	Username: "user",
	Password: "pass",
}

func newService(t *testing.T, m *fakeManager, core config.CoreConfig, opts *gateway.Opts) *gateway.GatewayService {
	t.Helper()
	if opts == nil {
		opts = &gateway.Opts{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = m.srv.Client()
	}
	core.BasePath = m.srv.URL
	svc, err := gateway.NewGatewayService(context.Background(), config.Config{Core: core}, opts)
	if err != nil {
		t.Fatalf("failed to init sdk: %v", err)
	}
	return svc
}

// handleFor fetches a gateway handle with id g1 and jwt tok through GetGateway.
func handleFor(t *testing.T, svc *gateway.GatewayService) *gateway.Gateway {
	t.Helper()
	g, err := svc.GetGateway(context.Background(), "g1")
	if err != nil {
		t.Fatalf("get gateway failed: %v", err)
	}
	return g
}

// routes serves GET /v1/sgconfig/g1 with a gateway record and delegates
// everything else to next.
func routes(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/v1/sgconfig/g1" {
			jsonReply(http.StatusOK, `{"_id":"g1","jwt":"tok","desc":"gw","enabled":true}`)(w, r)
			return
		}
		next(w, r)
	}
}

// memStore is an in-memory config.ObjectStore.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memStore) Open(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("no such object %s/%s", bucket, key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memStore) Put(_ context.Context, bucket, key, contentType string, body io.Reader) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = b
	s.types[bucket+"/"+key] = contentType
	return nil
}
