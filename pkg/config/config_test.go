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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultApiAddress, cfg.Address)
	assert.Equal(t, DefaultApiPort, cfg.Port)
	assert.False(t, cfg.Record)
	assert.Equal(t, ConfigFile, filepath.Base(cfg.Filepath()))
	assert.Equal(t, ConfigDir, filepath.Base(filepath.Dir(cfg.Filepath())))
}

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	cfg.Port = 9000
	cfg.Record = true
	cfg.Output = "json"
	require.NoError(t, cfg.Persist(false))

	err := cfg.Persist(false)
	var exists ErrConfigFileExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, path, exists.Path)
	require.NoError(t, cfg.Persist(true))

	loaded := NewDefaultConfig()
	loaded.SetFilepath(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, 9000, loaded.Port)
	assert.Equal(t, DefaultApiAddress, loaded.Address)
	assert.True(t, loaded.Record)
	assert.Equal(t, "json", loaded.Output)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\napi:\n  port: 7000\n"), 0644))

	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	require.NoError(t, cfg.Load())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, DefaultApiAddress, cfg.Address)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetFilepath(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, cfg.Load())
	require.Error(t, cfg.LoadConfig())
}

func TestDBPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetFilepath(filepath.Join("/tmp", "fseq", ConfigFile))
	assert.Equal(t, filepath.Join("/tmp", "fseq", DBFile), cfg.DBPath())
	cfg.StateConfig.DBPath = "/var/lib/fseq.db"
	assert.Equal(t, "/var/lib/fseq.db", cfg.DBPath())
}
