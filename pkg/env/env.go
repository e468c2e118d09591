package env

import "os"

// Get reads key from the process environment, falling back when the
// variable is unset or blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
