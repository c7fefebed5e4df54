package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// Configuration proper goes through envconfig; this covers the few knobs read
// outside it, like the log output format.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
