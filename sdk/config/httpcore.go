// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type CoreHTTP interface {
	BasePath() string
	BuildURL(path string, params url.Values) string
	Do(ctx context.Context, method, url, auth string, data []byte) ([]byte, int, error)
	DoRaw(ctx context.Context, method, url, auth, contentType string, body io.Reader) ([]byte, int, error)
	Stream(ctx context.Context, method, url, auth string) (io.ReadCloser, int64, error)
}

type httpCore struct {
	httpClient *http.Client
	basePath   string
	apiVersion string
	log        *slog.Logger
}

// NewHTTPClient returns the client used when none is injected. TLS
// verification follows CoreConfig.InsecureSkipVerify (default: disabled).
func NewHTTPClient(coreConfig CoreConfig) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: coreConfig.skipVerify(), //nolint:gosec // historical default of the gateway manager client
	}
	return &http.Client{Transport: transport}
}

func NewHTTPCore(httpClient *http.Client, basePath string, coreConfig CoreConfig, log *slog.Logger) CoreHTTP {
	if httpClient == nil {
		httpClient = NewHTTPClient(coreConfig)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &httpCore{
		httpClient: httpClient,
		basePath:   strings.TrimRight(basePath, "/"),
		apiVersion: coreConfig.apiVersion(),
		log:        log,
	}
}

func (httpCore *httpCore) BasePath() string {
	return httpCore.basePath
}

// BuildURL joins basepath, api version and path; empty params are dropped.
func (httpCore *httpCore) BuildURL(path string, params url.Values) string {
	u := httpCore.basePath + "/" + httpCore.apiVersion + "/" + strings.TrimLeft(path, "/")

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Do sends data as a JSON body when not nil.
func (httpCore *httpCore) Do(ctx context.Context, method, url, auth string, data []byte) ([]byte, int, error) {
	var body io.Reader
	contentType := ""
	if data != nil {
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return httpCore.DoRaw(ctx, method, url, auth, contentType, body)
}

// DoRaw returns the response body on 2xx, a *ResponseError otherwise.
// Transport errors are returned untouched.
func (httpCore *httpCore) DoRaw(ctx context.Context, method, url, auth, contentType string, body io.Reader) ([]byte, int, error) {
	resp, err := httpCore.send(ctx, method, url, auth, contentType, body)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if !isSuccess(resp.StatusCode) {
		return b, resp.StatusCode, &ResponseError{StatusCode: resp.StatusCode, Status: resp.Status, Body: b}
	}
	return b, resp.StatusCode, nil
}

// Stream returns the open response body on 2xx; the caller must close it.
// The second value is the content length, -1 when unknown.
func (httpCore *httpCore) Stream(ctx context.Context, method, url, auth string) (io.ReadCloser, int64, error) {
	resp, err := httpCore.send(ctx, method, url, auth, "", nil)
	if err != nil {
		return nil, 0, err
	}
	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		b, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return nil, 0, rerr
		}
		return nil, 0, &ResponseError{StatusCode: resp.StatusCode, Status: resp.Status, Body: b}
	}
	return resp.Body, resp.ContentLength, nil
}

func (httpCore *httpCore) send(ctx context.Context, method, url, auth, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	httpCore.log.DebugContext(ctx, "gateway manager request", "method", method, "url", url)
	resp, err := httpCore.httpClient.Do(req)
	if err != nil {
		httpCore.log.DebugContext(ctx, "gateway manager request failed", "method", method, "url", url, "error", err)
		return nil, err
	}
	httpCore.log.DebugContext(ctx, "gateway manager response", "method", method, "url", url, "status", resp.StatusCode)
	return resp, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
