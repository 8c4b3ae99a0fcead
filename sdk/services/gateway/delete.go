// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"net/http"
)

// Delete removes the gateway. The handle is left as is; further calls on it
// fail server-side.
func (g *Gateway) Delete(ctx context.Context) error {
	auth, err := g.auth()
	if err != nil {
		return err
	}
	u := g.parent.http.BuildURL(g.path(), nil)
	_, _, err = g.parent.http.Do(ctx, http.MethodDelete, u, auth, nil)
	return err
}
