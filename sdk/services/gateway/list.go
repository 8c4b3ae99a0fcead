// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// ListGateways lists the gateways of the configured org and space.
func (s *GatewayService) ListGateways(ctx context.Context, req ListGatewaysRequest) ([]*Gateway, error) {
	orgID, spaceID, auth, err := s.orgScope()
	if err != nil {
		return nil, err
	}

	params := url.Values{"org_id": {orgID}, "space_id": {spaceID}, "type": {req.Type}}
	u := s.scope.http.BuildURL("sgconfig", params)
	b, _, err := s.scope.http.Do(ctx, http.MethodGet, u, auth, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeList(b)
	if err != nil {
		return nil, err
	}
	gateways := make([]*Gateway, 0, len(records))
	for _, r := range records {
		gateways = append(gateways, newGateway(s.scope, r))
	}
	return gateways, nil
}
