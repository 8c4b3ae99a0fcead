// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	SchemeFile = "file"
	SchemeS3   = "s3"
)

// ParsedPath is a certificate location: a local file or an s3://bucket/key object.
type ParsedPath struct {
	Scheme string
	Host   string // bucket for s3
	Path   string // local path, or object key without leading "/"
}

func (p *ParsedPath) String() string {
	if p.Scheme == SchemeS3 {
		return "s3://" + p.Host + "/" + p.Path
	}
	return p.Path
}

// ParsePath accepts plain local paths, file:// URLs and s3://bucket/key.
func ParsePath(raw string) (*ParsedPath, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty path")
	}
	if !strings.Contains(raw, "://") {
		return &ParsedPath{Scheme: SchemeFile, Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case SchemeFile:
		return &ParsedPath{Scheme: SchemeFile, Path: u.Path}, nil
	case SchemeS3:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("s3 path %q must be s3://bucket/key", raw)
		}
		return &ParsedPath{Scheme: SchemeS3, Host: u.Host, Path: key}, nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}
