// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across commands.
package httputil

import (
	"net/http"

	"github.com/pdiddy/coursefinder/pkg/types"
)

// NewClient returns an HTTP client for cfg. A zero Timeout means no client
// deadline; requests then end only when the transport gives up or the
// request context is cancelled. Requests are never retried.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
	}
}
