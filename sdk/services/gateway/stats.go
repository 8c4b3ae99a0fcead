// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"net/http"
)

// Stats returns the gateway usage statistics.
func (g *Gateway) Stats(ctx context.Context) (Stats, error) {
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}
	u := g.parent.http.BuildURL(g.path("stats"), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodGet, u, auth, nil)
	if err != nil {
		return nil, err
	}

	m, err := decodeObject(b)
	if err != nil {
		return nil, err
	}
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return Stats(m), nil
}
