// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/scc-digitalhub/securegateway-sdk/sdk/config"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// EnvDumpPrefix: optional prefix for env lookup (e.g., "SGCLIENT")
const EnvDumpPrefix = ""

// Config holds all logical keys. Tags:
// - vkey: Viper key
// - env: canonical env name (UPPER_SNAKE). If empty, derived from vkey
// - persist: "true" to write the key into the INI
// - default: optional default to set if key is unset
// - secret: "true" if sensitive
type Config struct {
	SgBasePath           string `vkey:"sg_basepath"             env:"SG_BASEPATH"             persist:"true"`
	SgApiVersion         string `vkey:"sg_api_version"          env:"SG_API_VERSION"          persist:"true"  default:"v1"`
	SgApiKey             string `vkey:"sg_api_key"              env:"SG_API_KEY"              persist:"true"  secret:"true"`
	SgOrgId              string `vkey:"sg_org_id"               env:"SG_ORG_ID"               persist:"true"`
	SgSpaceId            string `vkey:"sg_space_id"             env:"SG_SPACE_ID"             persist:"true"`
	SgUsername           string `vkey:"sg_username"             env:"SG_USERNAME"             persist:"true"`
	SgPassword           string `vkey:"sg_password"             env:"SG_PASSWORD"             persist:"true"  secret:"true"`
	SgToken              string `vkey:"sg_token"                env:"SG_TOKEN"                persist:"true"  secret:"true"`
	SgInsecureSkipVerify string `vkey:"sg_insecure_skip_verify" env:"SG_INSECURE_SKIP_VERIFY" persist:"true"`
	SgServiceLabel       string `vkey:"sg_service_label"        env:"SG_SERVICE_LABEL"        persist:"true"`

	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     persist:"true" secret:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true" secret:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     persist:"true" secret:"true"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            persist:"true"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"      persist:"true"`

	// Platform metadata, never persisted
	VcapApplication string `vkey:"vcap_application" env:"VCAP_APPLICATION" persist:"false"`
	VcapServices    string `vkey:"vcap_services"    env:"VCAP_SERVICES"    persist:"false"`

	IniSource          string `vkey:"ini_source"          env:"INI_SOURCE"          persist:"true"`
	CurrentEnvironment string `vkey:"current_environment" env:"CURRENT_ENVIRONMENT" persist:"false"`
}

func getIniPath() string {
	iniPath, err := os.UserHomeDir()
	if err != nil {
		iniPath = "."
	}
	return iniPath + string(os.PathSeparator) + IniName
}

// resolveEnvName: explicit env > "default"
func resolveEnvName(optionalEnv ...string) string {
	if len(optionalEnv) > 0 && optionalEnv[0] != "" && strings.ToLower(optionalEnv[0]) != "null" {
		return optionalEnv[0]
	}
	return "default"
}

// mirror PREFIX_FOO -> FOO (optional)
func mirrorPrefix(prefix string) {
	if prefix == "" {
		return
	}
	upPrefix := strings.ToUpper(prefix) + "_"
	for _, e := range os.Environ() {
		kv := strings.SplitN(e, "=", 2)
		if len(kv) != 2 {
			continue
		}
		name, val := kv[0], kv[1]
		if strings.HasPrefix(name, upPrefix) {
			unpref := strings.TrimPrefix(name, upPrefix)
			if os.Getenv(unpref) == "" {
				_ = os.Setenv(unpref, val)
			}
		}
	}
}

// BindEnvFromStruct binds env for all fields of Config using struct tags.
func BindEnvFromStruct(prefix string) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	mirrorPrefix(prefix)

	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)

		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}

		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = viper.BindEnv(key, env)

		if def := f.Tag.Get("default"); def != "" && !viper.IsSet(key) {
			viper.SetDefault(key, def)
		}
	}
}

func persistedKeys() []string {
	var keys []string
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		if key := f.Tag.Get("vkey"); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// WriteIniFromStruct writes a new INI with only fields marked persist:"true".
func WriteIniFromStruct(iniPath, envName string) error {
	cfg := ini.Empty()
	cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	sec := cfg.Section(envName)

	for _, key := range persistedKeys() {
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	}
	return cfg.SaveTo(iniPath)
}

// UpdateIniFromStruct updates or creates an INI section from current Viper
// values (persist:"true" only).
func UpdateIniFromStruct(iniPath, envName string) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return WriteIniFromStruct(iniPath, envName)
	}
	sec := cfg.Section(envName)

	for _, key := range persistedKeys() {
		if val := viper.GetString(key); val != "" {
			sec.Key(key).SetValue(val)
		}
	}

	if !cfg.Section("DEFAULT").HasKey(CurrentEnvironment) {
		cfg.Section("DEFAULT").Key(CurrentEnvironment).SetValue(envName)
	}
	return cfg.SaveTo(iniPath)
}

// SaveProfile persists the current Viper values into the [env] section of ~/.sgclient.ini.
func SaveProfile(optionalEnv ...string) error {
	env := resolveEnvName(optionalEnv...)
	if err := UpdateIniFromStruct(getIniPath(), env); err != nil {
		return fmt.Errorf("failed to save ini: %w", err)
	}
	return nil
}

// Load [DEFAULT] + [env] into Viper (TOML in-memory). ENV can still override on Get().
func loadIniSectionIntoViper(cfg *ini.File, env string) error {
	def := cfg.Section("DEFAULT")
	selected := def
	if env != "" && cfg.HasSection(env) {
		selected = cfg.Section(env)
	}

	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if selected != def {
		for _, k := range selected.Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, v := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	viper.SetConfigType("toml")
	return viper.ReadConfig(&buf)
}

// RegisterIniCfgWithViper binds ENV and loads the active section of
// ~/.sgclient.ini into Viper. A missing INI is not an error: the SDK then
// runs from environment variables only.
func RegisterIniCfgWithViper(optionalEnv ...string) error {
	return RegisterIniFileWithViper(getIniPath(), optionalEnv...)
}

// RegisterIniFileWithViper is RegisterIniCfgWithViper with an explicit INI path.
// Active env: explicit env > DEFAULT.current_environment > default.
func RegisterIniFileWithViper(iniPath string, optionalEnv ...string) error {
	BindEnvFromStruct(EnvDumpPrefix)

	cfg, err := ini.Load(iniPath)
	if err != nil {
		viper.Set(IniSource, "env")
		viper.Set(CurrentEnvironment, resolveEnvName(optionalEnv...))
		return nil
	}

	env := resolveEnvName(optionalEnv...)
	if env == "default" {
		if v := cfg.Section("DEFAULT").Key(CurrentEnvironment).String(); v != "" {
			env = v
		}
	}

	if err := loadIniSectionIntoViper(cfg, env); err != nil {
		return fmt.Errorf("failed to load INI into viper: %w", err)
	}
	viper.Set(CurrentEnvironment, env)
	return nil
}

// LoadConfig builds the SDK config from the current Viper state.
func LoadConfig() config.Config {
	cfg := config.Config{
		Core: config.CoreConfig{
			BasePath:   viper.GetString(SgBasePath),
			APIVersion: viper.GetString(SgApiVersion),
			APIKey:     viper.GetString(SgApiKey),
			OrgID:      viper.GetString(SgOrgId),
			SpaceID:    viper.GetString(SgSpaceId),
			Username:   viper.GetString(SgUser),
			Password:   viper.GetString(SgPassword),
			Token:      viper.GetString(SgToken),
		},
		S3: config.S3Config{
			AccessKey:   viper.GetString(AwsAccessKeyId),
			SecretKey:   viper.GetString(AwsSecretAccessKey),
			AccessToken: viper.GetString(AwsSessionToken),
			Region:      viper.GetString(AwsRegion),
			EndpointURL: viper.GetString(AwsEndpointUrl),
		},
	}
	if viper.GetString(SgInsecureSkipVerify) != "" {
		skip := viper.GetBool(SgInsecureSkipVerify)
		cfg.Core.InsecureSkipVerify = &skip
	}
	return cfg
}

// EnvironmentFromViper parses the platform metadata bound from VCAP_APPLICATION
// and VCAP_SERVICES.
func EnvironmentFromViper() (config.StaticEnvironment, error) {
	return config.ParseEnvironment(
		viper.GetString(VcapApplication),
		viper.GetString(VcapServices),
		viper.GetString(SgServiceLabel),
	)
}
