// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import "errors"

var (
	ErrMissingGatewayID         = errors.New("gateway id is required")
	ErrMissingGatewayToken      = errors.New("gateway token is missing, fetch the gateway again")
	ErrMissingDestinationID     = errors.New("destination id is required")
	ErrMissingDestinationFields = errors.New("desc, ip and port are required to create a destination")
	ErrMissingCertPath          = errors.New("certificate path is required")
	ErrMissingTarget            = errors.New("download target is required")
	ErrDetachedGateway          = errors.New("gateway was not obtained from a GatewayService")
	ErrNoObjectStore            = errors.New("s3 path given but no S3 configuration is available")
)
