package httpapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds server settings read from config.json.
type Config struct {
	Listen       string `json:"listen"`
	BodyLimit    int    `json:"body_limit"`
	AllowOrigins string `json:"allow_origins"`
	LogFile      string `json:"log_file"`
}

// DefaultConfig is used when no config.json is found and fills any field
// the file leaves out.
func DefaultConfig() Config {
	return Config{
		Listen:       ":3000",
		BodyLimit:    64 * 1024,
		AllowOrigins: "*",
	}
}

// FindConfigPath walks up from the working directory looking for
// config.json and returns its path and directory.
func FindConfigPath() (string, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	dir := cwd
	for {
		path := filepath.Join(dir, "config.json")
		if _, err := os.Stat(path); err == nil {
			return path, filepath.Dir(path), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", "", fmt.Errorf("config.json not found from %s", cwd)
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.BodyLimit <= 0 {
		return Config{}, fmt.Errorf("parse %s: body_limit must be > 0", path)
	}
	return cfg, nil
}
