// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package gateway

import (
	"encoding/json"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/utils"
)

// ConnectionInfo is where a destination is reachable from outside the cloud
// platform.
type ConnectionInfo struct {
	OnPremHost string
	OnPremPort int
	Extra      map[string]any
}

// Destination is an on-premises endpoint exposed through a gateway.
// CurrentHost and CurrentPort are computed client-side for the caller's
// deployment context.
type Destination struct {
	ID             string
	Desc           string
	IP             string
	Port           int
	Hostname       string
	Protocol       string
	Enabled        bool
	TLS            TLSMode
	ConnectionInfo *ConnectionInfo

	CurrentHost string
	CurrentPort int

	Extra map[string]any
}

func newDestination(record map[string]any) *Destination {
	d := &Destination{}
	d.merge(record)
	return d
}

// merge copies the fields present in record onto d.
func (d *Destination) merge(record map[string]any) {
	extra := map[string]any{}
	for k, v := range record {
		switch k {
		case "_id":
			d.ID = asString(v)
		case "desc":
			d.Desc = asString(v)
		case "ip":
			d.IP = asString(v)
		case "port":
			d.Port = asInt(v)
		case "hostname":
			d.Hostname = asString(v)
		case "protocol":
			d.Protocol = asString(v)
		case "enabled":
			d.Enabled = asBool(v)
		case "TLS", "tls":
			d.TLS = TLSMode(asString(v))
		case "connection_info":
			d.ConnectionInfo = mergeConnectionInfo(d.ConnectionInfo, v)
		case "currentHost", "currentPort":
			// always recomputed
		default:
			extra[k] = normalizeValue(v)
		}
	}
	if len(extra) > 0 {
		d.Extra = utils.MergeMaps(d.Extra, extra)
	}
}

func mergeConnectionInfo(ci *ConnectionInfo, v any) *ConnectionInfo {
	m, ok := v.(map[string]any)
	if !ok {
		return ci
	}
	if ci == nil {
		ci = &ConnectionInfo{}
	}
	extra := map[string]any{}
	for k, vv := range m {
		switch k {
		case "OnPremHost":
			ci.OnPremHost = asString(vv)
		case "OnPremPort":
			ci.OnPremPort = asInt(vv)
		default:
			extra[k] = normalizeValue(vv)
		}
	}
	if len(extra) > 0 {
		ci.Extra = utils.MergeMaps(ci.Extra, extra)
	}
	return ci
}

// normalize sets CurrentHost/CurrentPort. Inside the cloud platform the
// destination is reached through hostname/port; outside it through the
// on-premises connection info. When the preferred source is empty the other
// one is used.
func (d *Destination) normalize(inCloud bool) {
	cloudHost, cloudPort := d.Hostname, d.Port
	var premHost string
	var premPort int
	if d.ConnectionInfo != nil {
		premHost, premPort = d.ConnectionInfo.OnPremHost, d.ConnectionInfo.OnPremPort
	}

	useCloud := inCloud
	if inCloud && cloudHost == "" && premHost != "" {
		useCloud = false
	}
	if !inCloud && premHost == "" && premPort == 0 {
		useCloud = true
	}

	if useCloud {
		d.CurrentHost, d.CurrentPort = cloudHost, cloudPort
	} else {
		d.CurrentHost, d.CurrentPort = premHost, premPort
	}
}

func (d *Destination) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extra)+11)
	for k, v := range d.Extra {
		m[k] = v
	}
	m["_id"] = d.ID
	m["desc"] = d.Desc
	m["ip"] = d.IP
	m["port"] = d.Port
	m["hostname"] = d.Hostname
	m["protocol"] = d.Protocol
	m["enabled"] = d.Enabled
	m["TLS"] = d.TLS
	if d.ConnectionInfo != nil {
		ci := make(map[string]any, len(d.ConnectionInfo.Extra)+2)
		for k, v := range d.ConnectionInfo.Extra {
			ci[k] = v
		}
		ci["OnPremHost"] = d.ConnectionInfo.OnPremHost
		ci["OnPremPort"] = d.ConnectionInfo.OnPremPort
		m["connection_info"] = ci
	}
	m["currentHost"] = d.CurrentHost
	m["currentPort"] = d.CurrentPort
	return json.Marshal(m)
}
