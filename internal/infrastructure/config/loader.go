package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations.
type GameConfig struct {
	Settings   *Settings
	Combat     *CombatConfig
	Entities   *EntitiesConfig
	Techniques *TechniquesConfig
}

// Loader loads configuration files using the fs.FS interface.
// Settings are TOML; game data files are YAML.
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a config loader rooted at a filesystem path.
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a config loader from an fs.FS.
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads settings.toml.
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, "settings.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to read settings.toml: %w", err)
	}

	var cfg Settings
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings.toml: %w", err)
	}

	return &cfg, nil
}

// LoadCombat loads combat.yaml.
func (l *Loader) LoadCombat() (*CombatConfig, error) {
	var cfg CombatConfig
	if err := l.loadYAML("combat.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEntities loads entities.yaml.
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.loadYAML("entities.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTechniques loads techniques.yaml.
func (l *Loader) LoadTechniques() (*TechniquesConfig, error) {
	var cfg TechniquesConfig
	if err := l.loadYAML("techniques.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads a stage YAML file by name.
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.loadYAML("stages/"+name+".yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAll loads every base configuration (settings, combat, entities,
// techniques). Stages load separately by name.
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	combat, err := l.LoadCombat()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	techniques, err := l.LoadTechniques()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings:   settings,
		Combat:     combat,
		Entities:   entities,
		Techniques: techniques,
	}, nil
}

func (l *Loader) loadYAML(path string, out any) error {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
