// Package config provides configuration loading and validation for roster.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ROSTER_ prefix, plus a bare PORT)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with ROSTER_ prefix:
//   - server.port → ROSTER_SERVER_PORT
//   - store.id_strategy → ROSTER_STORE_ID_STRATEGY
//   - resources.enabled → ROSTER_RESOURCES_ENABLED (comma separated)
//
// PORT is also read for server.port when ROSTER_SERVER_PORT is unset. A PORT
// value that is not a valid port is logged and ignored, leaving the default 3000.
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev (colored text logs) or prod (JSON logs)
//   - Server: port, max_body_size and the read/write/idle/shutdown timeouts
//   - Store: id_strategy (sequence or length)
//   - Resources: enabled kinds (users, cars)
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - id_strategy must be sequence or length
//   - Every enabled resource must be a built-in kind
//   - Log level must be debug, info, warn, or error
package config
