// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// GetGateway fetches a gateway by id, authenticating with the API key.
func (s *GatewayService) GetGateway(ctx context.Context, id string) (*Gateway, error) {
	if id == "" {
		return nil, ErrMissingGatewayID
	}
	auth, err := s.resolver.APIKeyHeader()
	if err != nil {
		return nil, err
	}

	u := s.scope.http.BuildURL("sgconfig/"+url.PathEscape(id), nil)
	b, _, err := s.scope.http.Do(ctx, http.MethodGet, u, auth, nil)
	if err != nil {
		return nil, err
	}

	record, err := decodeObject(b)
	if err != nil {
		return nil, err
	}
	return newGateway(s.scope, record), nil
}
