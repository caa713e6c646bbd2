// Package sessionstore builds the gin session store for the configured backend.
package sessionstore

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/yukikurage/flock-console/internal/config"
	"gorm.io/gorm"
)

// New returns the session store for cfg.SessionBackend. db is only used by
// the gorm backend and may be nil otherwise.
func New(cfg *config.Config, db *gorm.DB) (sessions.Store, error) {
	secret := []byte(cfg.SessionSecret)

	var store sessions.Store
	switch cfg.SessionBackend {
	case config.SessionBackendCookie:
		store = cookie.NewStore(secret)
	case config.SessionBackendRedis:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			secret,    // authentication key
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case config.SessionBackendGorm:
		if db == nil {
			return nil, fmt.Errorf("gorm session backend requires a database")
		}
		store = gormsessions.NewStore(db, true, secret)
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}

	store.Options(Options(cfg))
	return store, nil
}

// Options are the cookie options used by every backend.
func Options(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
