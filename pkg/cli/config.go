package cli

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ShowConfig displays the current configuration
func (a *App) ShowConfig() error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	a.printf("%s\n", data)
	return nil
}

// SetConfig sets a configuration value
// Format: section.key=value (e.g., "cli.base_url=http://localhost:8080")
func (a *App) SetConfig(setStr string) error {
	keyPath, value, ok := strings.Cut(setStr, "=")
	if !ok {
		return errors.New("invalid format: expected 'section.key=value'")
	}

	if err := a.cfg.Set(strings.TrimSpace(keyPath), value); err != nil {
		return err
	}
	// Drop the cached client so new credentials take effect.
	a.client = nil

	return a.save(a.cfg)
}
