package main

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables that supply flag defaults.
const (
	envFormat  = "SHEETZIP_FORMAT"
	envInflate = "SHEETZIP_INFLATE"
	envVerbose = "SHEETZIP_VERBOSE"
)

type config struct {
	format  string
	inflate bool
	verbose bool
}

func defaultConfig() config {
	return config{
		format:  "json",
		inflate: true,
		verbose: false,
	}
}

// loadConfig returns the defaults overridden by the environment.
// Unparseable boolean values are ignored.
func loadConfig() config {
	cfg := defaultConfig()
	if v := strings.TrimSpace(os.Getenv(envFormat)); v != "" {
		cfg.format = strings.ToLower(v)
	}
	cfg.inflate = envBool(envInflate, cfg.inflate)
	cfg.verbose = envBool(envVerbose, cfg.verbose)
	return cfg
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
