/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ApiConfig struct {
	Address string `yaml:"address,omitempty"`
	Port    int    `yaml:"port,omitempty"`
}

type StateConfig struct {
	DBPath string `yaml:"dbPath,omitempty"`
	// Record stores every local validation in the history database
	Record bool `yaml:"record"`
}

type Config struct {
	LogLevel     string `yaml:"logLevel,omitempty"`
	Output       string `yaml:"output,omitempty"`
	*ApiConfig   `yaml:"api,omitempty"`
	*StateConfig `yaml:"state,omitempty"`
	filepath     string
}

func (c *Config) Filepath() string {
	return c.filepath
}

func (c *Config) SetFilepath(path string) {
	c.filepath = path
}

// DBPath returns the history database path, next to the config file unless set
func (c *Config) DBPath() string {
	if c.StateConfig != nil && c.StateConfig.DBPath != "" {
		return c.StateConfig.DBPath
	}
	return filepath.Join(filepath.Dir(c.filepath), DBFile)
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Load reads the config file if there is one. Defaults are kept for
// everything the file does not set.
func (c *Config) Load() error {
	err := c.LoadConfig()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// String renders the config as it would be persisted
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		StateConfig: &StateConfig{
			Record: false,
		},
		filepath: DefaultConfigPath(),
	}
}
