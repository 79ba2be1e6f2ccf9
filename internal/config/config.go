// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config reads coursefinder settings from viper and validates them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/coursefinder/pkg/types"
)

// EnvPrefix prefixes every environment variable override, e.g.
// COURSEFINDER_QUERY_SERVICE_ENDPOINT.
const EnvPrefix = "COURSEFINDER"

// DefaultUserAgent is sent to the query service unless overridden.
const DefaultUserAgent = "coursefinder/0.1"

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("query_service.endpoint", types.DefaultEndpoint)
	v.SetDefault("query_service.timeout", "0s")
	v.SetDefault("query_service.user_agent", DefaultUserAgent)
	v.SetDefault("query_service.discard_stale", false)
	v.SetDefault("serve.addr", ":8123")
	v.SetDefault("serve.production", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

// BindEnv enables COURSEFINDER_* overrides for nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv reads .env files into the process environment. A missing file
// is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg and reports every invalid field in one error.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
