// Package manifest loads feature declarations from YAML or JSON files
// and applies them to a registry.
//
// A manifest declares contract metadata and dependencies only — no
// compute logic. It is how teams check feature definitions into source
// control and register them at startup:
//
//	features:
//	  - name: user_7d_spend
//	    entity: user
//	    value_type: float
//	    description: Total user spend over the trailing 7 days
//	    owner: risk-features
//	    dependencies:
//	      - name: txn_count
//	        entity: user
//
// Dependencies are recorded exactly as declared; the manifest does not
// check that they reference declared or registered features.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/featurereg/pkg/featurereg"
)

// File is a parsed manifest.
type File struct {
	Features []Decl `yaml:"features" json:"features"`
}

// Decl declares one feature contract.
type Decl struct {
	Name         string `yaml:"name" json:"name"`
	Entity       string `yaml:"entity" json:"entity"`
	ValueType    string `yaml:"value_type" json:"value_type"`
	Description  string `yaml:"description" json:"description"`
	Owner        string `yaml:"owner" json:"owner"`
	Dependencies []Dep  `yaml:"dependencies" json:"dependencies"`
}

// Dep references another feature by identity.
type Dep struct {
	Name   string `yaml:"name" json:"name"`
	Entity string `yaml:"entity" json:"entity"`
}

// Load reads a manifest from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read manifest file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return File{}, fmt.Errorf("unsupported manifest file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a File.
func FromYAML(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}

// FromJSON parses JSON data into a File.
func FromJSON(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return f, nil
}

// metadata converts a declaration to contract metadata.
func (d Decl) metadata() (featurereg.Metadata, error) {
	if d.Name == "" {
		return featurereg.Metadata{}, fmt.Errorf("feature name is required")
	}
	if d.Entity == "" {
		return featurereg.Metadata{}, fmt.Errorf("feature %q: entity is required", d.Name)
	}
	vt, err := featurereg.ParseValueType(d.ValueType)
	if err != nil {
		return featurereg.Metadata{}, fmt.Errorf("feature %q: %w", d.Name, err)
	}
	return featurereg.Metadata{
		Name:        d.Name,
		Entity:      d.Entity,
		ValueType:   vt,
		Description: d.Description,
		Owner:       d.Owner,
	}, nil
}

// dependencies converts declared dependencies to a key set.
func (d Decl) dependencies() featurereg.KeySet {
	deps := featurereg.NewKeySet()
	for _, dep := range d.Dependencies {
		deps.Add(featurereg.Key{Name: dep.Name, Entity: dep.Entity})
	}
	return deps
}

// Validate checks every declaration without touching a registry.
// It reports the first invalid declaration found.
func (f File) Validate() error {
	for _, d := range f.Features {
		if _, err := d.metadata(); err != nil {
			return err
		}
	}
	return nil
}

// Apply registers every declaration in file order and returns the
// minted specs. The whole manifest is validated up front, so a bad
// declaration fails the apply before any registration happens.
func (f File) Apply(r *featurereg.Registry) ([]featurereg.Spec, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	specs := make([]featurereg.Spec, 0, len(f.Features))
	for _, d := range f.Features {
		md, err := d.metadata()
		if err != nil {
			return specs, err
		}
		specs = append(specs, r.Register(md, d.dependencies()))
	}
	return specs, nil
}
