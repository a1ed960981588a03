package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset or
// empty variables leave the current value untouched.
//
// Recognized variables:
//
//	STUDIOKEEPER_HTTP_ADDR          bind address
//	STUDIOKEEPER_DATABASE_DSN       PostgreSQL DSN
//	STUDIOKEEPER_SECRET_KEY         JWT HMAC secret
//	STUDIOKEEPER_TOKEN_VALIDITY     session token lifetime ("1h30m")
//	STUDIOKEEPER_BCRYPT_COST        bcrypt work factor
//	STUDIOKEEPER_ADMIN_EMAILS       comma-separated admin allowlist
//	STUDIOKEEPER_DB_CONNECT_TIMEOUT initial ping cap ("10s")
func parseEnv(config *Config) {
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_HTTP_ADDR")); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_DATABASE_DSN")); v != "" {
		config.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_SECRET_KEY")); v != "" {
		config.SecretKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_TOKEN_VALIDITY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_BCRYPT_COST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = n
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_ADMIN_EMAILS")); v != "" {
		config.AdminEmails = splitEmails(v)
	}
	if v := strings.TrimSpace(os.Getenv("STUDIOKEEPER_DB_CONNECT_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.DBConnectTimeout = d
	}
}

// splitEmails splits a comma-separated list, trimming entries and dropping
// empty ones.
func splitEmails(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
