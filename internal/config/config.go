// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-order-desk client. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file, then topped up
// with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the API gateway connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// PasswordSalt is mixed into the per-user salt used to derive the
	// password hash sent to the gateway. Every client talking to the same
	// gateway must use the same value.
	// Env: APP_PASSWORD_SALT
	PasswordSalt string `env:"PASSWORD_SALT"`
}

// Storage groups the configuration for local storage.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN selects the local database. A postgres:// or postgresql:// URL
	// opens PostgreSQL, anything else is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the gateway endpoint settings.
type Adapter struct {
	// HTTPAddress is the gateway base URL (e.g. "http://localhost:8083").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every gateway call (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LoginPath is the login endpoint path.
	// Env: ADAPTER_LOGIN_PATH
	LoginPath string `env:"LOGIN_PATH"`

	// RegisterPath is the registration endpoint path.
	// Env: ADAPTER_REGISTER_PATH
	RegisterPath string `env:"REGISTER_PATH"`

	// OrdersPath is the prefix of all order endpoints.
	// Env: ADAPTER_ORDERS_PATH
	OrdersPath string `env:"ORDERS_PATH"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// RefreshInterval is how often the order cache is refreshed while the
	// user is signed in.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Default values applied to fields no source has set.
const (
	DefaultGatewayAddress  = "http://localhost:8083"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultLoginPath       = "/api-gateway/login"
	DefaultRegisterPath    = "/api-gateway/register"
	DefaultOrdersPath      = "/order"
	DefaultDSN             = "orders.db"
	DefaultRefreshInterval = 5 * time.Minute
	DefaultPasswordSalt    = "go-order-desk"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{PasswordSalt: DefaultPasswordSalt},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultGatewayAddress,
			RequestTimeout: DefaultRequestTimeout,
			LoginPath:      DefaultLoginPath,
			RegisterPath:   DefaultRegisterPath,
			OrdersPath:     DefaultOrdersPath,
		},
		Workers: Workers{RefreshInterval: DefaultRefreshInterval},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (later sources
// override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields left unset by every source receive their defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
