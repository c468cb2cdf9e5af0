package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/shotmaster/internal/config"
)

// Project is the on-disk YAML shape of a store.
type Project struct {
	Version string                `yaml:"version"`
	Master  config.MasterSettings `yaml:"master"`
	Layers  []string              `yaml:"layers,omitempty"`
	Groups  []config.Group        `yaml:"groups,omitempty"`
	Cameras []config.Camera       `yaml:"cameras,omitempty"`
}

const projectVersion = "1"

// Load reads a project file into a store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}

	s := New(p.Master)
	s.layers = p.Layers
	s.groups = p.Groups
	s.cameras = p.Cameras
	return s, nil
}

// Save writes the store to a project file.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	p := Project{
		Version: projectVersion,
		Master:  s.master,
		Layers:  s.layers,
		Groups:  s.groups,
		Cameras: s.cameras,
	}
	s.mu.RUnlock()

	data, err := yaml.Marshal(&p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
