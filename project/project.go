package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/gallery/composite"
)

// Project is a saved composition: the canvas and its layer stack.
type Project struct {
	Name   string            `yaml:"name,omitempty" json:"name,omitempty"`
	Canvas composite.Canvas  `yaml:"canvas" json:"canvas"`
	Layers []composite.Layer `yaml:"layers" json:"layers"`
}

// Load reads a project from a YAML or JSON file, picked by extension.
func Load(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &p)
	} else {
		err = yaml.Unmarshal(b, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Canvas.Width <= 0 || p.Canvas.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimensions: %gx%g", p.Canvas.Width, p.Canvas.Height)
	}
	return &p, nil
}

// Save writes the project, creating the directory when needed. An
// empty path picks a timestamped default under projects/.
func (p *Project) Save(path string) (string, error) {
	if path == "" {
		path = filepath.Join("projects", fmt.Sprintf("project_%d.yaml", time.Now().Unix()))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	var b []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err = json.MarshalIndent(p, "", "  ")
	} else {
		b, err = yaml.Marshal(p)
	}
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return "", err
	}
	return path, nil
}
