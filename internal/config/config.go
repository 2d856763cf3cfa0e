package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr            string   // API bind address, e.g., "127.0.0.1:8080"
	LogDir          string   // logs directory
	Debug           bool     // debug-level logging
	Certname        string   // node certname, host part of status API URLs
	StatusPort      int      // local status API port
	StatusEndpoints []string // status API services to probe
	Paths           []string // filesystems to report free space for
	APIKeys         []string // accepted API keys; empty disables auth
}

// fileConfig mirrors the optional TOML config file. Every field is
// optional; set fields override the environment.
type fileConfig struct {
	Addr            string   `toml:"addr"`
	LogDir          string   `toml:"log_dir"`
	Debug           *bool    `toml:"debug"`
	Certname        string   `toml:"certname"`
	StatusPort      int      `toml:"status_port"`
	StatusEndpoints []string `toml:"status_endpoints"`
	Paths           []string `toml:"paths"`
	APIKeys         []string `toml:"api_keys"`
}

func FromEnv() Config {
	addr := os.Getenv("HOSTPROBE_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	certname := os.Getenv("CERTNAME")
	if certname == "" {
		certname, _ = os.Hostname()
	}

	statusPort := 8140
	if v := os.Getenv("STATUS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			statusPort = n
		}
	}

	paths := splitList(os.Getenv("FS_PATHS"))
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	return Config{
		Addr:            addr,
		LogDir:          logDir,
		Debug:           os.Getenv("HOSTPROBE_DEBUG") == "1",
		Certname:        certname,
		StatusPort:      statusPort,
		StatusEndpoints: splitList(os.Getenv("STATUS_ENDPOINTS")),
		Paths:           paths,
		APIKeys:         splitList(os.Getenv("API_KEYS")),
	}
}

// Load builds the config from the environment, then overlays the TOML
// file at path when it is non-empty.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.LogDir != "" {
		cfg.LogDir = fc.LogDir
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.Certname != "" {
		cfg.Certname = fc.Certname
	}
	if fc.StatusPort > 0 {
		cfg.StatusPort = fc.StatusPort
	}
	if len(fc.StatusEndpoints) > 0 {
		cfg.StatusEndpoints = fc.StatusEndpoints
	}
	if len(fc.Paths) > 0 {
		cfg.Paths = fc.Paths
	}
	if len(fc.APIKeys) > 0 {
		cfg.APIKeys = fc.APIKeys
	}
	return cfg, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
