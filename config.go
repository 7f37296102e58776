// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = ".avltree.yaml"

type KeysConfig struct {
	Numeric bool `yaml:"numeric"`
}

type FilterConfig struct {
	Size   uint `yaml:"size"`
	Hashes uint `yaml:"hashes"`
}

type CacheConfig struct {
	ExpirationMinutes int `yaml:"expiration_minutes"`
	CleanupMinutes    int `yaml:"cleanup_minutes"`
}

type UIConfig struct {
	ShowProgress bool `yaml:"show_progress"`
}

type Config struct {
	Keys   KeysConfig   `yaml:"keys"`
	Filter FilterConfig `yaml:"filter"`
	Cache  CacheConfig  `yaml:"cache"`
	UI     UIConfig     `yaml:"ui"`
}

var defaultConfig = Config{
	Keys: KeysConfig{
		Numeric: false,
	},
	Filter: FilterConfig{
		Size:   1 << 16,
		Hashes: 5,
	},
	Cache: CacheConfig{
		ExpirationMinutes: 30,
		CleanupMinutes:    5,
	},
	UI: UIConfig{
		ShowProgress: true,
	},
}

func (c CacheConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

func (c CacheConfig) Cleanup() time.Duration {
	return time.Duration(c.CleanupMinutes) * time.Minute
}

// withDefaults fills zero filter and cache settings, which would otherwise
// produce an unusable bloom filter or a cache that never expires.
func (c Config) withDefaults() Config {
	if c.Filter.Size == 0 {
		c.Filter.Size = defaultConfig.Filter.Size
	}
	if c.Filter.Hashes == 0 {
		c.Filter.Hashes = defaultConfig.Filter.Hashes
	}
	if c.Cache.ExpirationMinutes <= 0 {
		c.Cache.ExpirationMinutes = defaultConfig.Cache.ExpirationMinutes
	}
	if c.Cache.CleanupMinutes <= 0 {
		c.Cache.CleanupMinutes = defaultConfig.Cache.CleanupMinutes
	}
	return c
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads ~/.avltree.yaml over the defaults. A missing or broken
// file yields the defaults.
func LoadConfig() *Config {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := defaultConfig
		return &cfg
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) *Config {
	cfg := defaultConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read %s: %v. Using default settings.", configPath, err)
		}
		return &cfg
	}

	parsed := defaultConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		log.Printf("Failed to parse %s: %v. Using default settings.", configPath, err)
		return &cfg
	}

	parsed = parsed.withDefaults()
	return &parsed
}

func writeConfigFile(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displaySettings() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("Configuration file not found. Creating default configuration...\n\n")

		cfg := defaultConfig
		if err := writeConfigFile(configPath, &cfg); err != nil {
			return err
		}
		fmt.Printf("%sCreated default configuration at: %s%s\n\n", Green, configPath, Reset)
	}

	config := loadConfigFrom(configPath)

	fmt.Printf("avltree Configuration Settings\n")
	fmt.Printf("==============================\n\n")

	if configExists {
		fmt.Printf("Config file: %s\n\n", configPath)
	} else {
		fmt.Printf("Config file: %s (newly created)\n\n", configPath)
	}

	fmt.Printf("%sKeys:%s\n", Green, Reset)
	fmt.Printf("  • numeric: %t\n\n", config.Keys.Numeric)
	fmt.Printf("%sMembership filter:%s\n", Green, Reset)
	fmt.Printf("  • size: %d bits\n", config.Filter.Size)
	fmt.Printf("  • hashes: %d\n\n", config.Filter.Hashes)
	fmt.Printf("%sSnapshot cache:%s\n", Green, Reset)
	fmt.Printf("  • expiration_minutes: %d\n", config.Cache.ExpirationMinutes)
	fmt.Printf("  • cleanup_minutes: %d\n\n", config.Cache.CleanupMinutes)
	fmt.Printf("%sUI:%s\n", Green, Reset)
	fmt.Printf("  • show_progress: %t\n", config.UI.ShowProgress)

	return nil
}
