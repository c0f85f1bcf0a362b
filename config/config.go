package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML file carrying the access allow-list and the
// KPI thresholds the meeting report badges are computed against.
type Settings struct {
	AllowedAdmins []string `yaml:"allowed_admins"`
	Domain        string   `yaml:"domain"`
	Manufacturer  string   `yaml:"manufacturer"`
}

type Config struct {
	Port          string
	Env           string
	AdminEmail    string
	AdminPassword string
	Domain        string
	Manufacturer  string
	AllowedAdmins []string
}

const (
	defaultDomain       = "@neemba.com"
	defaultManufacturer = "CATERPILLAR"
)

// Load reads .env (when present), the environment, and the optional settings
// file named by SETTINGS_FILE.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:          envOr("PORT", "8000"),
		Env:           envOr("ENV", "dev"),
		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Domain:        defaultDomain,
		Manufacturer:  defaultManufacturer,
	}

	if path := os.Getenv("SETTINGS_FILE"); path != "" {
		settings, err := loadSettings(path)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if settings.Domain != "" {
			cfg.Domain = settings.Domain
		}
		if settings.Manufacturer != "" {
			cfg.Manufacturer = settings.Manufacturer
		}
		for _, e := range settings.AllowedAdmins {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				cfg.AllowedAdmins = append(cfg.AllowedAdmins, e)
			}
		}
	}

	if cfg.AdminEmail != "" && !contains(cfg.AllowedAdmins, cfg.AdminEmail) {
		cfg.AllowedAdmins = append(cfg.AllowedAdmins, cfg.AdminEmail)
	}

	return cfg, nil
}

func loadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return &s, nil
}

// IsAllowedAdmin reports whether the email may use the restricted endpoints
// (lean actions, meeting summaries).
func (c *Config) IsAllowedAdmin(email string) bool {
	return contains(c.AllowedAdmins, strings.ToLower(email))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
