package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an experience seed file.
type ImportSchema struct {
	Experiences []ExperienceImport `json:"experiences" yaml:"experiences" validate:"required,min=1,dive"`
}

// ExperienceImport is one experience in the seed file. StateID is the
// self-reported maturity: 1 Naciente, 2 Creciente, 3 Inspiradora.
type ExperienceImport struct {
	ID            int                  `json:"id" yaml:"id" validate:"required,min=1"`
	Name          string               `json:"name" yaml:"name" validate:"notblank"`
	Code          string               `json:"code,omitempty" yaml:"code,omitempty"`
	Institution   string               `json:"institution" yaml:"institution" validate:"notblank"`
	StateID       int                  `json:"state_id,omitempty" yaml:"state_id,omitempty" validate:"omitempty,oneof=1 2 3"`
	ThematicLines []ThematicLineImport `json:"thematic_lines,omitempty" yaml:"thematic_lines,omitempty" validate:"dive"`
}

type ThematicLineImport struct {
	ID   int    `json:"id" yaml:"id" validate:"required,min=1"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// LoadImportSchema reads a seed file. Files ending in .yaml or .yml are
// parsed as YAML; anything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, filepath.Ext(path))
}

// ParseImportSchema decodes data according to the file extension ext.
func ParseImportSchema(data []byte, ext string) (*ImportSchema, error) {
	var schema ImportSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
