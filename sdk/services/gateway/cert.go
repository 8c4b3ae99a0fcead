// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/utils"
)

// UploadDestinationCert uploads a certificate as multipart form data. The
// source is streamed from a local file or an S3 object.
func (g *Gateway) UploadDestinationCert(ctx context.Context, req UploadCertRequest) (json.RawMessage, error) {
	if req.DestinationID == "" {
		return nil, ErrMissingDestinationID
	}
	if req.Path == "" {
		return nil, ErrMissingCertPath
	}
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}
	kind := req.Kind
	if kind == "" {
		kind = CertServer
	}

	src, name, err := g.openSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	pr, pw := io.Pipe()
	defer pr.Close()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile(string(kind), name)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	u := g.parent.http.BuildURL(g.path("destinations", req.DestinationID, "cert"), nil)
	b, _, err := g.parent.http.DoRaw(ctx, http.MethodPut, u, auth, form.FormDataContentType(), pr)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func (g *Gateway) openSource(ctx context.Context, raw string) (io.ReadCloser, string, error) {
	pp, err := utils.ParsePath(raw)
	if err != nil {
		return nil, "", err
	}
	if pp.Scheme == utils.SchemeS3 {
		if g.parent.objects == nil {
			return nil, "", ErrNoObjectStore
		}
		rc, err := g.parent.objects.Open(ctx, pp.Host, pp.Path)
		if err != nil {
			return nil, "", err
		}
		return rc, path.Base(pp.Path), nil
	}
	f, err := os.Open(pp.Path)
	if err != nil {
		return nil, "", fmt.Errorf("cannot access certificate: %w", err)
	}
	return f, filepath.Base(pp.Path), nil
}

// DownloadDestinationCerts streams the destination certificate archive to
// Target. A local target is written to a temporary sibling, synced and then
// renamed, so it only appears once complete. Stream errors are returned like
// request errors and leave no partial file behind.
func (g *Gateway) DownloadDestinationCerts(ctx context.Context, req DownloadCertsRequest) (*DownloadInfo, error) {
	if req.DestinationID == "" {
		return nil, ErrMissingDestinationID
	}
	if req.Target == "" {
		return nil, ErrMissingTarget
	}
	auth, err := g.auth()
	if err != nil {
		return nil, err
	}
	pp, err := utils.ParsePath(req.Target)
	if err != nil {
		return nil, err
	}
	if pp.Scheme == utils.SchemeS3 && g.parent.objects == nil {
		return nil, ErrNoObjectStore
	}

	u := g.parent.http.BuildURL(g.path("destinations", req.DestinationID, "cert"), nil)
	body, _, err := g.parent.http.Stream(ctx, http.MethodGet, u, auth)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if pp.Scheme == utils.SchemeS3 {
		counter := &countingReader{r: body}
		if err := g.parent.objects.Put(ctx, pp.Host, pp.Path, "application/zip", counter); err != nil {
			return nil, err
		}
		return &DownloadInfo{Filename: path.Base(pp.Path), Size: counter.n, Path: pp.String()}, nil
	}

	size, err := writeFileAtomic(pp.Path, body)
	if err != nil {
		return nil, err
	}
	g.parent.log.DebugContext(ctx, "destination certificates saved", "path", pp.Path, "size", size)
	return &DownloadInfo{Filename: filepath.Base(pp.Path), Size: size, Path: pp.Path}, nil
}

func writeFileAtomic(target string, r io.Reader) (int64, error) {
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create local directory: %w", err)
		}
	}

	tmp := utils.PartialName(target)
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create local file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, target)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	return n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// GenerateDestinationCerts asks the manager to (re)generate the destination
// certificates.
func (g *Gateway) GenerateDestinationCerts(ctx context.Context, destinationID string) error {
	if destinationID == "" {
		return ErrMissingDestinationID
	}
	auth, err := g.auth()
	if err != nil {
		return err
	}
	u := g.parent.http.BuildURL(g.path("destinations", destinationID, "genCerts"), nil)
	_, _, err = g.parent.http.Do(ctx, http.MethodPut, u, auth, nil)
	return err
}
