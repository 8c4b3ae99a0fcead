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
)

// CreateGateway provisions a new gateway in the configured org and space.
func (s *GatewayService) CreateGateway(ctx context.Context, req CreateGatewayRequest) (*Gateway, error) {
	orgID, spaceID, auth, err := s.orgScope()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]any{"desc": req.Desc})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}

	params := url.Values{"org_id": {orgID}, "space_id": {spaceID}}
	u := s.scope.http.BuildURL("sgconfig", params)
	b, _, err := s.scope.http.Do(ctx, http.MethodPost, u, auth, body)
	if err != nil {
		return nil, err
	}

	record, err := decodeObject(b)
	if err != nil {
		return nil, err
	}
	return newGateway(s.scope, record), nil
}
