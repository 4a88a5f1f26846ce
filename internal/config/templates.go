package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/charmbracelet/log"
)

//go:embed templates/wyclef.toml.tmpl
var starterTemplate string

// ErrConfigExists is returned by WriteStarter when the destination already
// exists and force is not set.
var ErrConfigExists = errors.New("config file already exists")

// TemplateVars holds the values substituted into the starter config.
type TemplateVars struct {
	// Config supplies the values written for every key.
	Config *Config
	// UserPath is the per-user config location mentioned in the header.
	UserPath string
}

// RenderStarter renders a commented wyclef.toml with the values in cfg.
// The output decodes back to cfg.
func RenderStarter(cfg *Config) ([]byte, error) {
	tmpl, err := template.New("wyclef.toml").Parse(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing starter template: %w", err)
	}

	userPath := UserConfigPath()
	if userPath == "" {
		userPath = "the user config directory"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, TemplateVars{Config: cfg, UserPath: userPath}); err != nil {
		return nil, fmt.Errorf("executing starter template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStarter renders the default configuration to path, creating parent
// directories as needed. An existing file is only replaced when force is set.
func WriteStarter(path string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
		log.Debug("overwriting existing file", "path", path)
	}

	content, err := RenderStarter(NewDefaults())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	log.Debug("created config file", "path", path)
	return nil
}
