// Package hostname resolves a best-effort identifier for the local machine.
package hostname

import "os"

// Fallback is returned when no other source yields a name.
const Fallback = "unknown-host"

// EnvVar is consulted when the OS node name is unavailable.
const EnvVar = "COMPUTERNAME"

// Resolve returns the OS node name, else $COMPUTERNAME, else Fallback.
// It never fails.
func Resolve() string {
	return resolve(nodename, os.Getenv)
}

func resolve(node func() (string, bool), getenv func(string) string) string {
	if name, ok := node(); ok && name != "" {
		return name
	}
	if name := getenv(EnvVar); name != "" {
		return name
	}
	return Fallback
}
