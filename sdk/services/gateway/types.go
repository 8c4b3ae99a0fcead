// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

// TLSMode is the TLS setting of a destination.
type TLSMode string

const (
	TLSNone       TLSMode = "none"
	TLSServerSide TLSMode = "serverside"
	TLSMutual     TLSMode = "mutual"
)

// CertKind selects the multipart field a certificate is uploaded under.
type CertKind string

const (
	CertServer CertKind = "cert"
	CertClient CertKind = "client_cert"
)

// -------- Gateways --------

type CreateGatewayRequest struct {
	Desc string
}

type ListGatewaysRequest struct {
	Type string // optional server-side filter
}

// UpdateGatewayRequest: zero fields are not sent.
type UpdateGatewayRequest struct {
	Desc    string
	Enabled *bool
}

// -------- Destinations --------

type CreateDestinationRequest struct {
	Desc     string
	IP       string
	Port     int
	Protocol string
	Username string
	Password string
	TLS      TLSMode

	// Optional YAML or JSON file with the destination definition. Explicit
	// fields above take precedence over the file content.
	FilePath string
}

type ListDestinationsRequest struct {
	Enabled *bool // nil lists all
}

type UpdateDestinationRequest struct {
	Desc    string
	Enabled *bool
	TLS     TLSMode
}

// -------- Certificates --------

type UploadCertRequest struct {
	DestinationID string
	Path          string // local path, file:// or s3://bucket/key
	Kind          CertKind
}

type DownloadCertsRequest struct {
	DestinationID string
	Target        string // local file path or s3://bucket/key
}

type DownloadInfo struct {
	Filename string `json:"filename" yaml:"filename"`
	Size     int64  `json:"size"     yaml:"size"`
	Path     string `json:"path"     yaml:"path"`
}

// Stats is the usage statistics document of a gateway, passed through as is.
type Stats map[string]any
