package env

import (
	"os"
	"strings"
)

const prefix = "STOREFRONT_"

// Get reads STOREFRONT_<key>, then the bare key, then returns fallback.
// Used for process-level knobs read before config.Load, such as LOG_FORMAT.
func Get(key, fallback string) string {
	key = strings.TrimPrefix(key, prefix)
	for _, name := range []string{prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return fallback
}
