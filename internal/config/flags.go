package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// ParseFlags parses the process command line.
//
// Flags:
//
//	-a gateway base URL (e.g. http://localhost:8083)
//	-d local database DSN (SQLite file or postgres:// URL)
//	-c/-config json file path with configs
//	-request-timeout gateway request timeout (e.g. "15s")
//	-refresh-interval order cache refresh interval (e.g. "5m")
//	-password-salt application password salt
//	-login-path, -register-path, -orders-path gateway endpoint paths
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		gatewayAddress  string
		databaseDSN     string
		jsonConfigPath  string
		requestTimeout  time.Duration
		refreshInterval time.Duration
		passwordSalt    string
		loginPath       string
		registerPath    string
		ordersPath      string
	)

	fs := flag.NewFlagSet("go-order-desk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&gatewayAddress, "a", "", "API gateway base URL")
	fs.StringVar(&databaseDSN, "d", "", "Local database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Gateway request timeout (e.g., 15s)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Order cache refresh interval (e.g., 5m)")
	fs.StringVar(&passwordSalt, "password-salt", "", "Application password salt")
	fs.StringVar(&loginPath, "login-path", "", "Gateway login path")
	fs.StringVar(&registerPath, "register-path", "", "Gateway register path")
	fs.StringVar(&ordersPath, "orders-path", "", "Gateway orders path prefix")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			PasswordSalt: passwordSalt,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    gatewayAddress,
			RequestTimeout: requestTimeout,
			LoginPath:      loginPath,
			RegisterPath:   registerPath,
			OrdersPath:     ordersPath,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
