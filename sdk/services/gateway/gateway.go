// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/config"
	"github.com/scc-digitalhub/securegateway-sdk/sdk/utils"
)

// scope is what a Gateway keeps from the service that produced it: the
// transport bound to the resolved base path, and the deployment context.
// Org and space are not needed below the gateway level.
type scope struct {
	http    config.CoreHTTP
	inCloud bool
	objects config.ObjectStore
	log     *slog.Logger
}

// Gateway is a gateway configuration returned by the manager. Operations on
// the gateway and its destinations authenticate with its own JWT.
type Gateway struct {
	ID      string
	Desc    string
	Enabled bool
	JWT     string

	// Extra holds server fields the SDK does not model.
	Extra map[string]any

	parent *scope
}

func newGateway(parent *scope, record map[string]any) *Gateway {
	g := &Gateway{parent: parent}
	g.merge(record)
	return g
}

// merge copies the fields present in record onto g, leaving the others as
// they are.
func (g *Gateway) merge(record map[string]any) {
	extra := map[string]any{}
	for k, v := range record {
		switch k {
		case "_id":
			g.ID = asString(v)
		case "desc":
			g.Desc = asString(v)
		case "enabled":
			g.Enabled = asBool(v)
		case "jwt":
			g.JWT = asString(v)
		default:
			extra[k] = normalizeValue(v)
		}
	}
	if len(extra) > 0 {
		g.Extra = utils.MergeMaps(g.Extra, extra)
	}
}

// BasePath is the gateway manager endpoint this gateway was obtained from.
func (g *Gateway) BasePath() string {
	if g.parent == nil {
		return ""
	}
	return g.parent.http.BasePath()
}

func (g *Gateway) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(g.Extra)+4)
	for k, v := range g.Extra {
		m[k] = v
	}
	m["_id"] = g.ID
	m["desc"] = g.Desc
	m["enabled"] = g.Enabled
	m["jwt"] = g.JWT
	return json.Marshal(m)
}

// auth checks the handle is usable and returns its Authorization value.
func (g *Gateway) auth() (string, error) {
	if g.parent == nil {
		return "", ErrDetachedGateway
	}
	if g.ID == "" {
		return "", ErrMissingGatewayID
	}
	if g.JWT == "" {
		return "", ErrMissingGatewayToken
	}
	return config.BearerAuth(g.JWT), nil
}

func (g *Gateway) path(elem ...string) string {
	p := "sgconfig/" + url.PathEscape(g.ID)
	for _, e := range elem {
		p += "/" + url.PathEscape(e)
	}
	return p
}
