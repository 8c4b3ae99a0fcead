// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/config"
	"github.com/scc-digitalhub/securegateway-sdk/sdk/services/gateway"
)

const destinationRecord = `{
  "_id": "d1",
  "desc": "db",
  "ip": "10.0.0.5",
  "port": 5432,
  "hostname": "cloud.example.net",
  "enabled": true,
  "TLS": "none",
  "connection_info": {"OnPremHost": "h", "OnPremPort": 1234, "pool": "a"},
  "currentHost": "stale"
}`

func TestGetDestinationNormalization(t *testing.T) {
	tests := []struct {
		name     string
		env      config.Environment
		record   string
		wantHost string
		wantPort int
	}{
		{
			name:     "external caller uses connection info",
			env:      config.NoEnvironment,
			record:   destinationRecord,
			wantHost: "h",
			wantPort: 1234,
		},
		{
			name:     "in-cloud caller uses hostname",
			env:      config.StaticEnvironment{App: map[string]any{"application_id": "a"}},
			record:   destinationRecord,
			wantHost: "cloud.example.net",
			wantPort: 5432,
		},
		{
			name:     "external caller without connection info",
			env:      config.NoEnvironment,
			record:   `{"_id":"d1","hostname":"cloud.example.net","port":"8080"}`,
			wantHost: "cloud.example.net",
			wantPort: 8080,
		},
		{
			name:     "in-cloud caller without hostname",
			env:      config.StaticEnvironment{App: map[string]any{"application_id": "a"}},
			record:   `{"_id":"d1","port":1,"connection_info":{"OnPremHost":"h","OnPremPort":"99"}}`,
			wantHost: "h",
			wantPort: 99,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeManager(t, routes(jsonReply(http.StatusOK, tt.record)))
			svc := newService(t, m, fullCore, &gateway.Opts{Environment: tt.env})
			g := handleFor(t, svc)

			d, err := g.GetDestination(context.Background(), "d1")
			if err != nil {
				t.Fatalf("get destination failed: %v", err)
			}
			if d.CurrentHost != tt.wantHost || d.CurrentPort != tt.wantPort {
				t.Fatalf("current = %s:%d, want %s:%d", d.CurrentHost, d.CurrentPort, tt.wantHost, tt.wantPort)
			}
			if got := m.last(); got.Path != "/v1/sgconfig/g1/destinations/d1" || got.Auth != "Bearer tok" {
				t.Fatalf("unexpected request %+v", got)
			}
		})
	}
}

func TestDestinationFields(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, destinationRecord)))
	g := handleFor(t, newService(t, m, fullCore, nil))

	d, err := g.GetDestination(context.Background(), "d1")
	if err != nil {
		t.Fatalf("get destination failed: %v", err)
	}
	if d.ID != "d1" || d.Desc != "db" || d.IP != "10.0.0.5" || d.Port != 5432 || !d.Enabled || d.TLS != gateway.TLSNone {
		t.Fatalf("unexpected destination %+v", d)
	}
	if d.ConnectionInfo == nil || d.ConnectionInfo.Extra["pool"] != "a" {
		t.Fatalf("unexpected connection info %+v", d.ConnectionInfo)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out["currentHost"] != "h" || out["currentPort"] != float64(1234) {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestListDestinationsNormalizesEachElement(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, `[
		{"_id":"a","hostname":"ca","port":1,"connection_info":{"OnPremHost":"pa","OnPremPort":11}},
		{"_id":"b","hostname":"cb","port":2,"connection_info":{"OnPremHost":"pb","OnPremPort":22}}
	]`)))
	g := handleFor(t, newService(t, m, fullCore, nil))

	enabled := true
	list, err := g.ListDestinations(context.Background(), gateway.ListDestinationsRequest{Enabled: &enabled})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(list))
	}
	if list[0].CurrentHost != "pa" || list[0].CurrentPort != 11 || list[1].CurrentHost != "pb" || list[1].CurrentPort != 22 {
		t.Fatalf("unexpected normalization %+v %+v", list[0], list[1])
	}
	if got := m.last(); got.Query != "type=enabled" {
		t.Fatalf("unexpected query %q", got.Query)
	}

	enabled = false
	if _, err := g.ListDestinations(context.Background(), gateway.ListDestinationsRequest{Enabled: &enabled}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := m.last(); got.Query != "type=disabled" {
		t.Fatalf("unexpected query %q", got.Query)
	}

	if _, err := g.ListDestinations(context.Background(), gateway.ListDestinationsRequest{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := m.last(); got.Query != "" {
		t.Fatalf("unexpected query %q", got.Query)
	}
}

func TestCreateDestination(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, `{"_id":"d9","desc":"db","ip":"10.0.0.5","port":5432}`)))
	g := handleFor(t, newService(t, m, fullCore, nil))

	d, err := g.CreateDestination(context.Background(), gateway.CreateDestinationRequest{
		Desc: "db", IP: "10.0.0.5", Port: 5432, Protocol: "TCP", TLS: gateway.TLSServerSide,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if d.ID != "d9" {
		t.Fatalf("unexpected destination %+v", d)
	}

	req := m.last()
	if req.Method != http.MethodPost || req.Path != "/v1/sgconfig/g1/destinations" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["desc"] != "db" || body["ip"] != "10.0.0.5" || body["port"] != float64(5432) ||
		body["protocol"] != "TCP" || body["tls"] != "serverside" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["username"]; ok {
		t.Fatal("empty fields must not be sent")
	}
}

func TestCreateDestinationFromFile(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, `{"_id":"d9"}`)))
	g := handleFor(t, newService(t, m, fullCore, nil))

	p := filepath.Join(t.TempDir(), "dest.yaml")
	content := "_id: old\ndesc: from-file\nip: 192.168.1.1\nport: 22\nprotocol: TCP\nconnection_info:\n  OnPremHost: x\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := g.CreateDestination(context.Background(), gateway.CreateDestinationRequest{FilePath: p, Desc: "override"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(m.last().Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["desc"] != "override" || body["ip"] != "192.168.1.1" || body["port"] != float64(22) {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["_id"]; ok {
		t.Fatal("_id must not be sent")
	}
	if _, ok := body["connection_info"]; ok {
		t.Fatal("connection_info must not be sent")
	}
}

func TestCreateDestinationValidation(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, `{}`)))
	g := handleFor(t, newService(t, m, fullCore, nil))
	before := len(m.requests())

	_, err := g.CreateDestination(context.Background(), gateway.CreateDestinationRequest{Desc: "db", IP: "10.0.0.5"})
	if !errors.Is(err, gateway.ErrMissingDestinationFields) {
		t.Fatalf("expected ErrMissingDestinationFields, got %v", err)
	}
	if len(m.requests()) != before {
		t.Fatal("no request expected for an invalid destination")
	}
}

func TestUpdateDestination(t *testing.T) {
	m := newFakeManager(t, routes(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			jsonReply(http.StatusOK, destinationRecord)(w, r)
		case http.MethodPut:
			jsonReply(http.StatusOK, `{"enabled":"false","TLS":"mutual"}`)(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	g := handleFor(t, newService(t, m, fullCore, nil))
	ctx := context.Background()

	d, err := g.GetDestination(ctx, "d1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	enabled := false
	if err := g.UpdateDestination(ctx, d, gateway.UpdateDestinationRequest{Enabled: &enabled, TLS: gateway.TLSMutual}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if d.Enabled || d.TLS != gateway.TLSMutual || d.Desc != "db" || d.CurrentHost != "h" {
		t.Fatalf("unexpected destination after update %+v", d)
	}

	req := m.last()
	if req.Method != http.MethodPut || req.Path != "/v1/sgconfig/g1/destinations/d1" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["enabled"] != "false" || body["TLS"] != "mutual" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["desc"]; ok {
		t.Fatal("unset fields must not be sent")
	}

	if err := g.UpdateDestination(ctx, &gateway.Destination{}, gateway.UpdateDestinationRequest{}); !errors.Is(err, gateway.ErrMissingDestinationID) {
		t.Fatalf("expected ErrMissingDestinationID, got %v", err)
	}
}

func TestDeleteDestination(t *testing.T) {
	m := newFakeManager(t, routes(jsonReply(http.StatusOK, `{"deleted":true}`)))
	g := handleFor(t, newService(t, m, fullCore, nil))

	raw, err := g.DeleteDestination(context.Background(), "d1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if string(raw) != `{"deleted":true}` {
		t.Fatalf("unexpected answer %s", raw)
	}
	if got := m.last(); got.Method != http.MethodDelete || got.Path != "/v1/sgconfig/g1/destinations/d1" {
		t.Fatalf("unexpected request %s %s", got.Method, got.Path)
	}

	if _, err := g.DeleteDestination(context.Background(), ""); !errors.Is(err, gateway.ErrMissingDestinationID) {
		t.Fatalf("expected ErrMissingDestinationID, got %v", err)
	}
}
