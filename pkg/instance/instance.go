package instance

import (
	"os"
	"strings"
)

var idEnvKeys = []string{"STOREFRONT_INSTANCE_ID", "DYNO", "HOSTNAME"}

// ID returns the identifier attached to server logs, falling back to "local".
func ID() string {
	for _, key := range idEnvKeys {
		if id := strings.TrimSpace(os.Getenv(key)); id != "" {
			return id
		}
	}
	return "local"
}
