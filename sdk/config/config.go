// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

const (
	DefaultBasePath   = "https://sgmanager.ng.bluemix.net"
	DefaultAPIVersion = "v1"
)

// Config passed to the SDK services (no viper/INI here)
type Config struct {
	Core CoreConfig
	S3   S3Config
}

type CoreConfig struct {
	BasePath   string
	APIVersion string

	// APIKey is only used to fetch a single gateway by id.
	APIKey string

	OrgID   string
	SpaceID string

	Username string
	Password string
	Token    string

	// InsecureSkipVerify disables TLS certificate verification towards the
	// gateway manager. nil keeps the historical default of true: callers
	// talking to a production endpoint should set it to false explicitly.
	InsecureSkipVerify *bool
}

// S3 is optional: it is only used when certificate paths use the s3:// scheme.
type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}

func (c CoreConfig) apiVersion() string {
	if c.APIVersion == "" {
		return DefaultAPIVersion
	}
	return c.APIVersion
}

func (c CoreConfig) skipVerify() bool {
	if c.InsecureSkipVerify == nil {
		return true
	}
	return *c.InsecureSkipVerify
}

// Enabled reports whether enough S3 settings are present to build a client.
func (c S3Config) Enabled() bool {
	return c.EndpointURL != "" || c.AccessKey != "" || c.Region != ""
}
