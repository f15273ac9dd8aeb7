// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The builder is exercised source by source rather than through
// GetStructuredConfig: ParseFlags touches the process-global flag set and
// cannot be called repeatedly from tests.

func TestConfigBuilder_MergePriority(t *testing.T) {
	// Arrange: mergo.Merge keeps the first non-zero value, so the source
	// appended first wins for fields both sources set.
	first := &StructuredConfig{
		App:    App{SecretKey: "from-env"},
		Server: Server{HTTPAddress: "localhost:8080"},
	}
	second := &StructuredConfig{
		App:     App{SecretKey: "from-json"},
		Server:  Server{RequestTimeout: 15 * time.Second},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	// Act
	cfg, err := b.build()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.SecretKey)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
}

func TestConfigBuilder_AppliesCookieDefaults(t *testing.T) {
	// Arrange
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{SecretKey: "secret"},
		Server:  Server{HTTPAddress: "localhost:8080"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
	})

	// Act
	cfg, err := b.build()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, defaultCookieName, cfg.App.SessionCookie.Name)
	assert.Equal(t, defaultCookieDomain, cfg.App.SessionCookie.Domain)
	assert.Equal(t, defaultCookiePath, cfg.App.SessionCookie.Path)
}

func TestConfigBuilder_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *StructuredConfig
		wantErr error
	}{
		{
			name: "missing secret key",
			cfg: &StructuredConfig{
				Server:  Server{HTTPAddress: "localhost:8080"},
				Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "missing DSN",
			cfg: &StructuredConfig{
				App:    App{SecretKey: "secret"},
				Server: Server{HTTPAddress: "localhost:8080"},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "missing server address",
			cfg: &StructuredConfig{
				App:     App{SecretKey: "secret"},
				Storage: Storage{DB: DB{DSN: "postgres://localhost/db"}},
			},
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.cfg)

			_, err := b.build()

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigBuilder_PropagatesSourceError(t *testing.T) {
	// Arrange
	b := newConfigBuilder()
	b.err = assert.AnError

	// Act
	cfg, err := b.build()

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip address", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non-numeric port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestNetAddress_String_Empty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
