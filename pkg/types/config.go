// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultEndpoint is the query service URL used when none is configured.
const DefaultEndpoint = "http://localhost:5001/nlp-query"

// HTTPConfig holds shared HTTP settings for the query service client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default
	// in place, which is what the form expects.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "coursefinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// QueryServiceConfig locates the external course query service.
type QueryServiceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the full URL that accepts POSTed queries.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"required,http_url"`

	// DiscardStale drops a completion that belongs to an older submission
	// than the latest one. Off by default: completions apply in arrival order.
	DiscardStale bool `json:"discard_stale" yaml:"discard_stale" mapstructure:"discard_stale"`
}

// ServeConfig holds settings for the web form.
type ServeConfig struct {
	// Addr is the listen address (e.g. ":8123").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`

	// Production switches gin to release mode and zap to its production config.
	Production bool `json:"production" yaml:"production" mapstructure:"production"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`

	// File redirects log output to a file. Required for the terminal UI to log
	// anything at all.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// OutputFormat selects how a one-shot answer is written.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Config groups every setting the coursefinder commands read.
type Config struct {
	QueryService QueryServiceConfig `json:"query_service" yaml:"query_service" mapstructure:"query_service"`
	Serve        ServeConfig        `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log          LogConfig          `json:"log" yaml:"log" mapstructure:"log"`
}
