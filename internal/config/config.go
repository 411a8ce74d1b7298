package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string        // API bind address
	LogDir              string        // logs directory
	DatabaseURL         string        // empty means in-memory store
	EndpointsFile       string        // JSON endpoint list; empty means built-in registry
	AdminAPIKeys        []string      // keys allowed to trigger /api/check
	ProbeTimeout        time.Duration // per-probe ceiling
	CheckInterval       time.Duration // 0 disables the background loop
	MaxConcurrentChecks int           // probes in flight per cycle
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	var adminKeys []string
	if v := os.Getenv("ADMIN_API_KEYS"); v != "" {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				adminKeys = append(adminKeys, k)
			}
		}
	}

	probeTimeout := 10 * time.Second
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			probeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	checkInterval := time.Duration(0)
	if v := os.Getenv("CHECK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			checkInterval = time.Duration(ms) * time.Millisecond
		}
	}

	concurrency := 5
	if v := os.Getenv("MAX_CONCURRENT_CHECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}

	return Config{
		Addr:                addr,
		LogDir:              logDir,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		EndpointsFile:       os.Getenv("ENDPOINTS_FILE"),
		AdminAPIKeys:        adminKeys,
		ProbeTimeout:        probeTimeout,
		CheckInterval:       checkInterval,
		MaxConcurrentChecks: concurrency,
	}
}
