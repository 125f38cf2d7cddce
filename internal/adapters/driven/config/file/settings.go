package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the optional overrides read from config.toml. Zero values
// mean "use the built-in default".
type Settings struct {
	// APIURL overrides the Lattice API base URL.
	APIURL string `toml:"api-url"`

	// TimeoutSeconds overrides the HTTP request timeout.
	TimeoutSeconds int `toml:"timeout-seconds"`
}

// Timeout returns the configured timeout as a duration, zero when unset.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads settings from configDir/config.toml. If configDir is empty,
// defaults to ~/.lattice. A missing file yields zero settings; a malformed
// one is an error.
func Load(configDir string) (Settings, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, err
		}
		configDir = filepath.Join(home, ".lattice")
	}

	data, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, err
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
