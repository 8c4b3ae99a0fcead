// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	ErrMissingOrgID   = errors.New("org ID must be set in config or in the service binding")
	ErrMissingSpaceID = errors.New("space ID must be set in config or in the service binding")
	ErrMissingAuth    = errors.New("missing authentication properties: username and password or an auth token must be set")
	ErrMissingAPIKey  = errors.New("API key must be provided in config")
)

// ResponseError is returned for every non-2xx answer. The body is kept
// verbatim: the gateway manager error payloads are not interpreted here.
type ResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("gateway manager responded with: %s", e.Status)
	}
	return string(e.Body)
}

// AsResponseError unwraps err into a *ResponseError if it is one.
func AsResponseError(err error) (*ResponseError, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
