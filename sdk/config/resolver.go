// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/base64"
	"strings"
)

// Resolver derives identity and endpoint values from the explicit config,
// falling back to the service binding of the injected Environment.
// Every method is a pure function of (config, environment).
type Resolver struct {
	core CoreConfig
	env  Environment
}

func NewResolver(core CoreConfig, env Environment) *Resolver {
	if env == nil {
		env = NoEnvironment
	}
	return &Resolver{core: core, env: env}
}

func (r *Resolver) credentials() (ServiceCredentials, bool) {
	b, ok := r.env.Service()
	if !ok {
		return ServiceCredentials{}, false
	}
	return b.Credentials, true
}

func (r *Resolver) OrgID() (string, error) {
	if r.core.OrgID != "" {
		return r.core.OrgID, nil
	}
	if c, ok := r.credentials(); ok && c.OrgID != "" {
		return c.OrgID, nil
	}
	return "", ErrMissingOrgID
}

func (r *Resolver) SpaceID() (string, error) {
	if r.core.SpaceID != "" {
		return r.core.SpaceID, nil
	}
	if c, ok := r.credentials(); ok && c.SpaceID != "" {
		return c.SpaceID, nil
	}
	return "", ErrMissingSpaceID
}

// BasePath: explicit config, then service binding url, then DefaultBasePath.
func (r *Resolver) BasePath() string {
	base := r.core.BasePath
	if base == "" {
		if c, ok := r.credentials(); ok && c.URL != "" {
			base = c.URL
		} else {
			base = DefaultBasePath
		}
	}
	return strings.TrimRight(base, "/")
}

// AuthHeader returns the Authorization value for org/space scoped calls:
// Basic when username and password are both known, Bearer token otherwise.
func (r *Resolver) AuthHeader() (string, error) {
	user, pw, token := r.core.Username, r.core.Password, r.core.Token
	if user == "" && pw == "" && token == "" {
		if c, ok := r.credentials(); ok {
			user, pw, token = c.Username, c.Password, c.Token
		}
	}
	if user != "" && pw != "" {
		return BasicAuth(user, pw), nil
	}
	if token != "" {
		return BearerAuth(token), nil
	}
	return "", ErrMissingAuth
}

func (r *Resolver) APIKeyHeader() (string, error) {
	if r.core.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	return BearerAuth(r.core.APIKey), nil
}

// InCloud reports whether the caller runs inside the cloud platform, that is
// whether application metadata is available.
func (r *Resolver) InCloud() bool {
	app, ok := r.env.Application()
	return ok && len(app) > 0
}

func BasicAuth(user, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+password))
}

func BearerAuth(token string) string {
	return "Bearer " + token
}
