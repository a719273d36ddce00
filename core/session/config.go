package session

import "time"

// TTL anchor field names accepted by Config.TTLAnchor.
const (
	AnchorCreated    = "created"
	AnchorLastAccess = "lastAccess"
	AnchorLastUpdate = "lastUpdate"
)

// Config provides environment-based configuration for the session manager.
type Config struct {
	// SIDLength is the length of the random part of generated session keys.
	// Zero means the default of 10, unless SIDTimestamp is set, in which case
	// zero yields timestamp-only keys.
	SIDLength int `env:"SESSION_SID_LENGTH" envDefault:"10"`

	// SIDTimestamp prefixes generated keys with an encoded creation timestamp.
	SIDTimestamp bool `env:"SESSION_SID_TIMESTAMP" envDefault:"false"`

	// TimeToLive is the session lifetime measured from the anchor timestamp.
	// Zero disables expiration entirely.
	TimeToLive time.Duration `env:"SESSION_TTL" envDefault:"0"`

	// TTLAnchor names the timestamp field the lifetime counts from:
	// "created", "lastAccess" or "lastUpdate". Unknown values fall back
	// to "created".
	TTLAnchor string `env:"SESSION_TTL_ANCHOR" envDefault:"created"`
}

// DefaultConfig returns a Config with non-expiring sessions and
// 10-character random keys.
func DefaultConfig() Config {
	return Config{
		SIDLength:    10,
		SIDTimestamp: false,
		TimeToLive:   0,
		TTLAnchor:    AnchorCreated,
	}
}

// anchor returns the configured anchor normalized to a known field name.
func (c Config) anchor() string {
	switch c.TTLAnchor {
	case AnchorLastAccess, AnchorLastUpdate:
		return c.TTLAnchor
	default:
		return AnchorCreated
	}
}
