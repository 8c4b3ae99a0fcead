// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/config"
)

// GatewayService issues org/space scoped calls and hands out Gateway handles.
// It holds no mutable state and can be shared between goroutines.
type GatewayService struct {
	resolver *config.Resolver
	scope    *scope
}

// Opts contains optional collaborators for a GatewayService.
type Opts struct {
	// HTTPClient defaults to a client honoring CoreConfig.InsecureSkipVerify.
	HTTPClient *http.Client
	// Environment provides platform metadata. Defaults to config.NoEnvironment;
	// use utils.EnvironmentFromViper to read VCAP_APPLICATION/VCAP_SERVICES.
	Environment config.Environment
	// ObjectStore serves s3:// certificate paths. Built from Config.S3 when nil
	// and S3 settings are present.
	ObjectStore config.ObjectStore
	// Log defaults to discarding all logs.
	Log *slog.Logger
}

func NewGatewayService(ctx context.Context, conf config.Config, opts *Opts) (*GatewayService, error) {
	if opts == nil {
		opts = &Opts{}
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	resolver := config.NewResolver(conf.Core, opts.Environment)

	objects := opts.ObjectStore
	if objects == nil && conf.S3.Enabled() {
		s3c, err := config.NewS3Client(ctx, conf.S3)
		if err != nil {
			return nil, fmt.Errorf("S3 init failed: %w", err)
		}
		objects = s3c
	}

	return &GatewayService{
		resolver: resolver,
		scope: &scope{
			http:    config.NewHTTPCore(opts.HTTPClient, resolver.BasePath(), conf.Core, log),
			inCloud: resolver.InCloud(),
			objects: objects,
			log:     log,
		},
	}, nil
}

// BasePath is the resolved gateway manager endpoint.
func (s *GatewayService) BasePath() string {
	return s.scope.http.BasePath()
}

// orgScope resolves org, space and auth in that order, failing on the first
// missing value.
func (s *GatewayService) orgScope() (orgID, spaceID, auth string, err error) {
	if orgID, err = s.resolver.OrgID(); err != nil {
		return "", "", "", err
	}
	if spaceID, err = s.resolver.SpaceID(); err != nil {
		return "", "", "", err
	}
	if auth, err = s.resolver.AuthHeader(); err != nil {
		return "", "", "", err
	}
	return orgID, spaceID, auth, nil
}
