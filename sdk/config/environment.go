// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"
)

// DefaultServiceLabel is the VCAP_SERVICES label of the Secure Gateway service.
const DefaultServiceLabel = "SecureGateway"

// Environment exposes the ambient platform metadata an application receives
// when it runs inside the cloud platform. It is injected into the Resolver so
// that nothing reads process-wide state directly.
type Environment interface {
	// Application returns the application metadata (VCAP_APPLICATION).
	// ok is false when the caller is not running inside the platform.
	Application() (app map[string]any, ok bool)
	// Service returns the Secure Gateway service binding, if any.
	Service() (binding ServiceBinding, ok bool)
}

type ServiceBinding struct {
	Name        string
	Label       string
	Credentials ServiceCredentials
}

type ServiceCredentials struct {
	URL      string
	OrgID    string
	SpaceID  string
	Username string
	Password string
	Token    string
	Extra    map[string]any
}

// StaticEnvironment is a fixed Environment. The zero value is an external
// caller with no service binding.
type StaticEnvironment struct {
	App     map[string]any
	Binding *ServiceBinding
}

func (e StaticEnvironment) Application() (map[string]any, bool) {
	if e.App == nil {
		return nil, false
	}
	return e.App, true
}

func (e StaticEnvironment) Service() (ServiceBinding, bool) {
	if e.Binding == nil {
		return ServiceBinding{}, false
	}
	return *e.Binding, true
}

// NoEnvironment is an Environment without application or service metadata.
var NoEnvironment Environment = StaticEnvironment{}

// ParseEnvironment builds a StaticEnvironment from the raw text of
// VCAP_APPLICATION and VCAP_SERVICES. Empty strings mean "not set".
func ParseEnvironment(vcapApplication, vcapServices, label string) (StaticEnvironment, error) {
	var env StaticEnvironment

	if s := strings.TrimSpace(vcapApplication); s != "" {
		app := map[string]any{}
		if err := yaml.Unmarshal([]byte(s), &app); err != nil {
			return env, fmt.Errorf("invalid application metadata: %w", err)
		}
		env.App = app
	}

	if s := strings.TrimSpace(vcapServices); s != "" {
		services := map[string][]map[string]any{}
		if err := yaml.Unmarshal([]byte(s), &services); err != nil {
			return env, fmt.Errorf("invalid service metadata: %w", err)
		}
		if b, ok := pickBinding(services, label); ok {
			env.Binding = &b
		}
	}
	return env, nil
}

// pickBinding takes the first binding under label, otherwise the first binding
// of any label that looks like a gateway binding (url or orgID credentials).
func pickBinding(services map[string][]map[string]any, label string) (ServiceBinding, bool) {
	if label == "" {
		label = DefaultServiceLabel
	}
	if entries := services[label]; len(entries) > 0 {
		return toBinding(label, entries[0]), true
	}

	labels := make([]string, 0, len(services))
	for l := range services {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		for _, entry := range services[l] {
			creds, _ := entry["credentials"].(map[string]any)
			if stringField(creds, "orgID") != "" || stringField(creds, "url") != "" {
				return toBinding(l, entry), true
			}
		}
	}
	return ServiceBinding{}, false
}

func toBinding(label string, entry map[string]any) ServiceBinding {
	creds, _ := entry["credentials"].(map[string]any)
	b := ServiceBinding{
		Name:  stringField(entry, "name"),
		Label: label,
		Credentials: ServiceCredentials{
			URL:      stringField(creds, "url"),
			OrgID:    stringField(creds, "orgID"),
			SpaceID:  stringField(creds, "spaceID"),
			Username: stringField(creds, "username"),
			Password: stringField(creds, "password"),
			Token:    stringField(creds, "token"),
			Extra:    map[string]any{},
		},
	}
	if l := stringField(entry, "label"); l != "" {
		b.Label = l
	}
	for k, v := range creds {
		switch k {
		case "url", "orgID", "spaceID", "username", "password", "token":
		default:
			b.Credentials.Extra[k] = v
		}
	}
	return b
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}
