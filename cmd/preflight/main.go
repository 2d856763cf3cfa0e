// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hamed0406/hostprobe/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	certname := strings.TrimSpace(os.Getenv("CERTNAME"))
	statusPort := strings.TrimSpace(os.Getenv("STATUS_PORT"))
	cfgFile := strings.TrimSpace(os.Getenv("HOSTPROBE_CONFIG"))
	keys := strings.TrimSpace(os.Getenv("API_KEYS"))

	if certname == "" {
		warn("CERTNAME empty — status probes will use the hostname, which must match the status API certificate.")
	} else {
		ok("CERTNAME=" + certname)
	}

	if statusPort != "" {
		if n, err := strconv.Atoi(statusPort); err != nil || n <= 0 || n > 65535 {
			fail("STATUS_PORT is not a valid port: " + statusPort)
		}
		ok("STATUS_PORT=" + statusPort)
	}

	if cfgFile != "" {
		if _, err := config.Load(cfgFile); err != nil {
			fail("config file rejected: " + err.Error())
		}
		ok("config file parses: " + cfgFile)
	}

	if keys == "" {
		warn("API_KEYS empty — the facts API will accept unauthenticated requests.")
	} else if strings.Contains(keys, " ") {
		warn("API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	}

	for _, dir := range []string{"/etc/sysconfig", "/etc/default"} {
		if _, err := os.Stat(dir); err == nil {
			ok("marker dir present: " + dir)
		}
	}

	ok("preflight passed")
}
