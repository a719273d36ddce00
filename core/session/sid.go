package session

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	sidAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sidSeparator     = "-"
	defaultSIDLength = 10
)

// GenerateID produces a new unique session key according to the configured
// shape. With SIDTimestamp set, the key starts with the current millisecond
// timestamp encoded in base 36 (reversible, strictly alphanumeric); a
// configured SIDLength of exactly zero then yields timestamp-only keys, a
// degraded-uniqueness mode for callers that deliberately disable randomness.
// Otherwise a high-entropy random alphanumeric suffix of SIDLength characters
// (default 10) follows, separated from the prefix by a single dash.
//
// No uniqueness check against storage is performed; on the rare collision the
// store's unique-key constraint surfaces ErrDuplicateKey for the caller to
// retry.
func GenerateID(cfg Config) (string, error) {
	return generateID(cfg, time.Now())
}

func generateID(cfg Config, now time.Time) (string, error) {
	var sb strings.Builder
	if cfg.SIDTimestamp {
		sb.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
		if cfg.SIDLength == 0 {
			return sb.String(), nil
		}
		sb.WriteString(sidSeparator)
	}

	length := cfg.SIDLength
	if length <= 0 {
		length = defaultSIDLength
	}

	suffix, err := randomAlphanumeric(length)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	sb.WriteString(suffix)

	return sb.String(), nil
}

// randomAlphanumeric returns n characters drawn from sidAlphabet using
// crypto/rand.
func randomAlphanumeric(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = sidAlphabet[int(b)%len(sidAlphabet)]
	}
	return string(buf), nil
}
