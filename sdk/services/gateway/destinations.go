// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"sigs.k8s.io/yaml"
)

// CreateDestination adds a destination to the gateway. desc, ip and port are
// required, either explicitly or from FilePath.
func (g *Gateway) CreateDestination(ctx context.Context, req CreateDestinationRequest) (*Destination, error) {
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}

	jsonMap := map[string]any{}
	if req.FilePath != "" {
		data, err := os.ReadFile(req.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read destination file: %w", err)
		}
		jsonBytes, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("yaml to json failed: %w", err)
		}
		if err := json.Unmarshal(jsonBytes, &jsonMap); err != nil {
			return nil, fmt.Errorf("failed to parse after JSON conversion: %w", err)
		}
		// server-assigned fields
		delete(jsonMap, "_id")
		delete(jsonMap, "connection_info")
	}

	setIf := func(key, value string) {
		if value != "" {
			jsonMap[key] = value
		}
	}
	setIf("desc", req.Desc)
	setIf("ip", req.IP)
	setIf("protocol", req.Protocol)
	setIf("username", req.Username)
	setIf("password", req.Password)
	setIf("tls", string(req.TLS))
	if req.Port != 0 {
		jsonMap["port"] = req.Port
	}

	if asString(jsonMap["desc"]) == "" || asString(jsonMap["ip"]) == "" || asInt(jsonMap["port"]) == 0 {
		return nil, ErrMissingDestinationFields
	}

	body, err := json.Marshal(jsonMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	u := g.parent.http.BuildURL(g.path("destinations"), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodPost, u, auth, body)
	if err != nil {
		return nil, err
	}
	return g.destinationFrom(b)
}

// GetDestination fetches one destination, normalized for the caller's
// deployment context.
func (g *Gateway) GetDestination(ctx context.Context, destinationID string) (*Destination, error) {
	if destinationID == "" {
		return nil, ErrMissingDestinationID
	}
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}

	u := g.parent.http.BuildURL(g.path("destinations", destinationID), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodGet, u, auth, nil)
	if err != nil {
		return nil, err
	}
	return g.destinationFrom(b)
}

// DeleteDestination removes a destination and returns the manager's answer
// verbatim.
func (g *Gateway) DeleteDestination(ctx context.Context, destinationID string) (json.RawMessage, error) {
	if destinationID == "" {
		return nil, ErrMissingDestinationID
	}
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}

	u := g.parent.http.BuildURL(g.path("destinations", destinationID), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodDelete, u, auth, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// ListDestinations lists the gateway destinations, optionally only the
// enabled or disabled ones. Each element is normalized.
func (g *Gateway) ListDestinations(ctx context.Context, req ListDestinationsRequest) ([]*Destination, error) {
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}

	var params url.Values
	if req.Enabled != nil {
		params = url.Values{"type": {"disabled"}}
		if *req.Enabled {
			params.Set("type", "enabled")
		}
	}

	u := g.parent.http.BuildURL(g.path("destinations"), params)
	b, _, err := g.parent.http.Do(ctx, http.MethodGet, u, auth, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeList(b)
	if err != nil {
		return nil, err
	}
	out := make([]*Destination, 0, len(records))
	for _, r := range records {
		d := newDestination(r)
		d.normalize(g.parent.inCloud)
		out = append(out, d)
	}
	return out, nil
}

// UpdateDestination updates dest (dest.ID is required) and merges the fields
// returned by the manager onto it.
func (g *Gateway) UpdateDestination(ctx context.Context, dest *Destination, req UpdateDestinationRequest) error {
	if dest == nil || dest.ID == "" {
		return ErrMissingDestinationID
	}
	auth, err := g.auth()
	if err != nil {
		return err
	}

	patch := map[string]any{}
	if req.Desc != "" {
		patch["desc"] = req.Desc
	}
	if req.Enabled != nil {
		patch["enabled"] = strconv.FormatBool(*req.Enabled)
	}
	if req.TLS != "" {
		patch["TLS"] = string(req.TLS)
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	u := g.parent.http.BuildURL(g.path("destinations", dest.ID), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodPut, u, auth, body)
	if err != nil {
		return err
	}

	record, err := decodeObject(b)
	if err != nil {
		return err
	}
	dest.merge(record)
	dest.normalize(g.parent.inCloud)
	return nil
}

func (g *Gateway) destinationFrom(b []byte) (*Destination, error) {
	record, err := decodeObject(b)
	if err != nil {
		return nil, err
	}
	d := newDestination(record)
	d.normalize(g.parent.inCloud)
	return d, nil
}
