// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Update changes description and/or enabled state. Fields returned by the
// manager are merged onto g; fields it does not return are kept.
func (g *Gateway) Update(ctx context.Context, req UpdateGatewayRequest) error {
	auth, err := g.auth()
	if err != nil {
		return err
	}

	patch := map[string]any{}
	if req.Desc != "" {
		patch["desc"] = req.Desc
	}
	if req.Enabled != nil {
		patch["enabled"] = *req.Enabled
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	u := g.parent.http.BuildURL(g.path(), nil)
	b, _, err := g.parent.http.Do(ctx, http.MethodPut, u, auth, body)
	if err != nil {
		return err
	}

	record, err := decodeObject(b)
	if err != nil {
		return err
	}
	g.merge(record)
	return nil
}
