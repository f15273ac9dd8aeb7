// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Built-in defaults applied to optional fields left empty by all sources.
const (
	defaultCookieName   = "KEEPER-AUTH"
	defaultCookieDomain = "localhost"
	defaultCookiePath   = "/"
)

// applyDefaults fills in cookie attributes that no configuration source
// provided. Defaults are applied before validation so that only genuinely
// required fields can fail it.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.SessionCookie.Name == "" {
		cfg.App.SessionCookie.Name = defaultCookieName
	}
	if cfg.App.SessionCookie.Domain == "" {
		cfg.App.SessionCookie.Domain = defaultCookieDomain
	}
	if cfg.App.SessionCookie.Path == "" {
		cfg.App.SessionCookie.Path = defaultCookiePath
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The secret key has no default on purpose: silently falling back to a
// baked-in key would make every deployment derive identical digests.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SecretKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
