package main

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the optional file-based settings. Flags override these,
// and NORTHWIND_* environment variables override the file.
type Config struct {
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
	Seed   int64  `yaml:"seed"`
}

// loadConfig reads path if it exists and applies environment
// overrides. A missing file is not an error.
func loadConfig(path string) Config {
	cfg := Config{Port: 9000, DBPath: "northwind.db"}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("config: ignoring malformed %s: %v", path, err)
		}
	}

	if v := os.Getenv("NORTHWIND_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("NORTHWIND_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NORTHWIND_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = s
		}
	}
	return cfg
}
