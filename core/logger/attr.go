// Package logger provides slog attribute helpers shared across the module.
//
// Helpers return an empty Attr for zero values, so calls like
// log.Info("msg", logger.Error(err)) need no explicit nil checks.
package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionKey creates an attribute for a session key.
func SessionKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("session_key", key)
}

// UserID creates an attribute for the user a session is bound to.
// Returns empty Attr for anonymous sessions.
func UserID(uid *string) slog.Attr {
	if uid == nil {
		return slog.Attr{}
	}
	return slog.String("user_id", *uid)
}

// Count creates a generic counter attribute.
func Count(key string, n int64) slog.Attr {
	return slog.Int64(key, n)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
