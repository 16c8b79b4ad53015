package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	// JWTSigningKeyIsFallback reports that the signing key came from the
	// built-in development default rather than the environment.
	JWTSigningKeyIsFallback bool
	TokenTTL                time.Duration
	DatabaseURL             string
	RedisURL                string
	Seed                    Seed
}

// Seed holds the bootstrap account credentials created on first startup.
type Seed struct {
	AdminName        string
	AdminEmail       string
	AdminPassword    string
	EmployeeName     string
	EmployeeEmail    string
	EmployeePassword string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LEAVEDESK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	fallback := false
	if jwtSigningKey == "" {
		// Development default - must be overridden in production. main logs a
		// warning when this is in effect.
		jwtSigningKey = "dev-secret-key-change-in-production"
		fallback = true
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			tokenTTL = d
		}
	}

	return Server{
		Addr:                    addr,
		JWTSigningKey:           jwtSigningKey,
		JWTSigningKeyIsFallback: fallback,
		TokenTTL:                tokenTTL,
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		RedisURL:                os.Getenv("REDIS_URL"),
		Seed: Seed{
			AdminName:        envOr("SEED_ADMIN_NAME", "Admin User"),
			AdminEmail:       envOr("SEED_ADMIN_EMAIL", "admin@company.com"),
			AdminPassword:    envOr("SEED_ADMIN_PASSWORD", "admin123"),
			EmployeeName:     envOr("SEED_EMPLOYEE_NAME", "John Doe"),
			EmployeeEmail:    envOr("SEED_EMPLOYEE_EMAIL", "john@company.com"),
			EmployeePassword: envOr("SEED_EMPLOYEE_PASSWORD", "employee123"),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
