// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName            = ".sgclient.ini"
	IniSource          = "ini_source"
	CurrentEnvironment = "current_environment"

	SgBasePath           = "sg_basepath"
	SgApiVersion         = "sg_api_version"
	SgApiKey             = "sg_api_key"
	SgOrgId              = "sg_org_id"
	SgSpaceId            = "sg_space_id"
	SgUser               = "sg_username"
	SgPassword           = "sg_password"
	SgToken              = "sg_token"
	SgInsecureSkipVerify = "sg_insecure_skip_verify"
	SgServiceLabel       = "sg_service_label"

	VcapApplication = "vcap_application"
	VcapServices    = "vcap_services"

	AwsAccessKeyId     = "aws_access_key_id"
	AwsSecretAccessKey = "aws_secret_access_key"
	AwsSessionToken    = "aws_session_token"
	AwsRegion          = "aws_region"
	AwsEndpointUrl     = "aws_endpoint_url"
)
