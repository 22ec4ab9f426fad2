// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads lxcui settings from defaults, YAML files, the
// environment and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the settings tree shared by the CLI and the UI.
type Config struct {
	LXC struct {
		Path         string `mapstructure:"path" yaml:"path"`
		Cache        string `mapstructure:"cache" yaml:"cache"`
		WaitTimeout  int    `mapstructure:"wait_timeout" yaml:"wait_timeout"`
		DefaultImage string `mapstructure:"default_image" yaml:"default_image"`
	} `mapstructure:"lxc" yaml:"lxc"`
	Host struct {
		Proc string `mapstructure:"proc" yaml:"proc"`
	} `mapstructure:"host" yaml:"host"`
	Log struct {
		File  string `mapstructure:"file" yaml:"file,omitempty"`
		Level string `mapstructure:"level" yaml:"level,omitempty"`
	} `mapstructure:"log" yaml:"log"`
	Language string `mapstructure:"language" yaml:"language"`
	Demo     bool   `mapstructure:"demo" yaml:"demo,omitempty"`
}

// Defaults returns the built-in settings keyed the way viper expects them.
func Defaults() map[string]any {
	return map[string]any{
		"lxc.path":          "/var/lib/lxc",
		"lxc.cache":         "/var/cache/lxc/download",
		"lxc.wait_timeout":  3,
		"lxc.default_image": "debian/bookworm/amd64",
		"host.proc":         "/proc",
		"log.file":          "",
		"log.level":         "info",
		"language":          "en",
		"demo":              false,
	}
}

// Default is Defaults decoded into a Config.
func Default() Config {
	var c Config
	c.LXC.Path = "/var/lib/lxc"
	c.LXC.Cache = "/var/cache/lxc/download"
	c.LXC.WaitTimeout = 3
	c.LXC.DefaultImage = "debian/bookworm/amd64"
	c.Host.Proc = "/proc"
	c.Log.Level = "info"
	c.Language = "en"
	return c
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "lxcui")
		default:
			configDir = "/etc/lxcui"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "lxcui")
	}

	return filepath.Join(configDir, "lxcui.yaml"), nil
}

// LoadConfig reads T from, in increasing precedence: defaults, the first
// lxcui.yaml found (or explicitPath), LXCUI_* environment variables and
// the flags of cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("lxcui")
	v.SetConfigType("yaml")
	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("lxcui")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns that path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
