package globals

import (
	"context"
	"os"
)

// JwtSecret signs and verifies access tokens. Set JWT_SECRET in production.
var JwtSecret = []byte(envOr("JWT_SECRET", "dev-only-secret"))

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
