// Package config manages application configuration for the Drivers API.
//
// Configuration is read once at startup from environment variables and
// validated before any component is constructed. Token lifetimes that are
// present but unparsable fail the load instead of silently becoming zero,
// and the signing secret is carried as token.Key so it cannot leak into
// logs.
//
// # Environment Variables
//
//	SERVER_PORT                 - HTTP port (default 8080)
//	SERVER_ENV                  - development | production | test
//	CORS_ALLOWED_ORIGINS        - comma-separated origin list
//	DB_HOST / DB_PORT           - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE  - SurrealDB namespace and database
//	DB_USER / DB_PASSWORD       - SurrealDB credentials
//	JWT_SECRET                  - signing key, >= 32 bytes (base64 or raw)
//	JWT_ISSUER / JWT_AUDIENCE   - claims embedded in issued tokens
//	JWT_ACCESS_VALIDITY_MINS    - access-token lifetime (default 15)
//	JWT_REFRESH_VALIDITY_DAYS   - refresh-token lifetime (default 7)
//	REDIS_ADDR                  - optional login-throttle backend
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package config
