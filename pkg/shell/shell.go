// Package shell - small process environment helpers.
package shell

import (
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
)

// ReplaceEnvVars expands ${VAR} and ${VAR:default} references.
// Unknown variables without a default are left untouched.
func ReplaceEnvVars(text string) string {
	re := regexp.MustCompile(`\${([^}{]+)}`)
	return re.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-1]

		var def string
		var hasDef bool

		if i := strings.IndexByte(key, ':'); i > 0 {
			key, def = key[:i], key[i+1:]
			hasDef = true
		}

		if value, ok := os.LookupEnv(key); ok {
			return value
		}

		if hasDef {
			return def
		}

		return match
	})
}

// RunUntilSignal blocks until SIGINT or SIGTERM.
func RunUntilSignal() os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return <-sigs
}
