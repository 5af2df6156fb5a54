// Package source reads project documents (scene graphs) from disk.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2video/internal/scene"
)

// Format is the encoding of a project document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported project format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads and decodes a project file.
func Load(path string) (scene.Project, error) {
	format, err := FormatOf(path)
	if err != nil {
		return scene.Project{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p, err := Decode(data, format)
	if err != nil {
		return scene.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses a project document. The document is either an object with a
// "scenes" list or a bare list of scenes.
func Decode(data []byte, format Format) (scene.Project, error) {
	var p scene.Project
	switch format {
	case JSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &p.Scenes); err != nil {
				return p, fmt.Errorf("failed to parse JSON: %w", err)
			}
			return p, nil
		}
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return p, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case YAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return p, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if len(root.Content) == 0 {
			return p, nil
		}
		doc := root.Content[0]
		var err error
		if doc.Kind == yaml.SequenceNode {
			err = doc.Decode(&p.Scenes)
		} else {
			err = doc.Decode(&p)
		}
		if err != nil {
			return p, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return p, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return p, nil
}

// Save writes a project in the format implied by the path extension.
func Save(path string, p scene.Project) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case JSON:
		data, err = json.MarshalIndent(p, "", "  ")
	case YAML:
		data, err = yaml.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
