// Package env holds the one environment helper config defaults lean on.
package env

import "os"

// Get returns the named variable, falling back when it is unset or empty.
// Empty counts as unset so a blank STORESCOUT_ override cannot blank out a
// default.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
