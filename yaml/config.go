// Package yaml loads crawl configuration from YAML files.
package yaml

import (
	"os"
	"time"

	"github.com/repackdb/repackdb"
	yamlv3 "gopkg.in/yaml.v3"
)

// fileConfig mirrors repackdb.Config with Delay held as a string, since
// yaml.v3 has no native decoding for time.Duration.
type fileConfig struct {
	BaseURL       *string `yaml:"base_url"`
	DBPath        *string `yaml:"db_path"`
	BlocklistPath *string `yaml:"blocklist_path"`
	StartPage     *int    `yaml:"start_page"`
	MaxPages      *int    `yaml:"max_pages"`
	Delay         *string `yaml:"delay"`
	UserAgent     *string `yaml:"user_agent"`
}

// LoadConfig reads a YAML configuration file into a Config. File values
// overlay the defaults, so a partial file is valid. A missing file yields
// the defaults unmodified.
func LoadConfig(path string) (repackdb.Config, error) {
	cfg := repackdb.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var fc fileConfig
	if err := yamlv3.Unmarshal(data, &fc); err != nil {
		return cfg, repackdb.Errorf(repackdb.EINVALID, "invalid config file %s: %s", path, err)
	}

	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.BlocklistPath != nil {
		cfg.BlocklistPath = *fc.BlocklistPath
	}
	if fc.StartPage != nil {
		cfg.StartPage = *fc.StartPage
	}
	if fc.MaxPages != nil {
		cfg.MaxPages = *fc.MaxPages
	}
	if fc.Delay != nil {
		d, err := time.ParseDuration(*fc.Delay)
		if err != nil {
			return cfg, repackdb.Errorf(repackdb.EINVALID, "invalid delay %q in %s", *fc.Delay, path)
		}
		cfg.Delay = d
	}
	if fc.UserAgent != nil {
		cfg.UserAgent = *fc.UserAgent
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
