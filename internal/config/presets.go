package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	apperrors "github.com/agbru/ecurve/internal/errors"
)

// PresetSpec is one entry of a presets file. Modulus is written in hex with
// a 0x prefix or in decimal.
type PresetSpec struct {
	Name        string `yaml:"name"`
	Modulus     string `yaml:"modulus"`
	Description string `yaml:"description"`
}

// PresetsFile is the document layout of a presets file:
//
//	presets:
//	  - name: p13
//	    modulus: "0xd"
//	    description: tiny test prime
type PresetsFile struct {
	Presets []PresetSpec `yaml:"presets"`
}

// LoadPresets reads and validates a presets file. Parsing the moduli is left
// to the caller, which knows the arithmetic layer.
func LoadPresets(path string) ([]PresetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot read presets file: %v", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes a presets document. Unknown keys are rejected.
func ParsePresets(data []byte) ([]PresetSpec, error) {
	var doc PresetsFile
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, apperrors.NewConfigError("invalid presets file: %v", err)
	}

	seen := make(map[string]bool, len(doc.Presets))
	for i, p := range doc.Presets {
		if p.Name == "" {
			return nil, apperrors.NewConfigError("preset %d has no name", i+1)
		}
		if p.Modulus == "" {
			return nil, apperrors.NewConfigError("preset %q has no modulus", p.Name)
		}
		if seen[p.Name] {
			return nil, apperrors.NewConfigError("preset %q is defined twice", p.Name)
		}
		seen[p.Name] = true
	}
	return doc.Presets, nil
}

// MarshalPresets renders presets in the file layout read by ParsePresets.
func MarshalPresets(presets []PresetSpec) ([]byte, error) {
	out, err := yaml.Marshal(PresetsFile{Presets: presets})
	if err != nil {
		return nil, fmt.Errorf("encoding presets: %w", err)
	}
	return out, nil
}
