package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseExpiry converts a duration string with a day, hour or minute suffix
// ("30d", "1h", "15m") into a time.Duration. time.ParseDuration cannot be
// used directly because it has no day unit.
func ParseExpiry(expiresIn string) (time.Duration, error) {
	if len(expiresIn) < 2 {
		return 0, fmt.Errorf("invalid expiry %q", expiresIn)
	}
	unit := expiresIn[len(expiresIn)-1]
	n, err := strconv.Atoi(strings.TrimSpace(expiresIn[:len(expiresIn)-1]))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid expiry %q", expiresIn)
	}
	switch unit {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid expiry unit %q", string(unit))
	}
}
