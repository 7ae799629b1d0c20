package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog file format major version this build reads.
const SupportedMajor = "v1"

// ErrIncompatibleVersion is returned for catalog files of another major version.
var ErrIncompatibleVersion = errors.New("incompatible catalog version")

//go:embed seed.yaml
var seedYAML []byte

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type fileDoc struct {
	Version string      `yaml:"version"`
	Tracks  []fileTrack `yaml:"tracks"`
}

type fileTrack struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Items       []fileItem `yaml:"items"`
}

type fileItem struct {
	ID               string `yaml:"id"`
	Order            int    `yaml:"order"`
	Level            string `yaml:"level"`
	Title            string `yaml:"title"`
	EstimatedMinutes int    `yaml:"estimated_minutes"`
	Summary          string `yaml:"summary"`
	Body             string `yaml:"body"`
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	c, err := Parse(seedYAML)
	if err != nil {
		return nil, fmt.Errorf("bundled catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the bundled one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog document. Duplicate or gapped
// orders are accepted here and reported by Validate instead.
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x)", ErrIncompatibleVersion, doc.Version, SupportedMajor)
	}

	var tracks []Track
	var items []ContentItem
	ids := make(map[string]bool)
	for _, ft := range doc.Tracks {
		tracks = append(tracks, Track{ID: ft.ID, Name: ft.Name, Description: ft.Description})
		for _, fi := range ft.Items {
			if ids[fi.ID] {
				return nil, fmt.Errorf("duplicate item ID: %q", fi.ID)
			}
			ids[fi.ID] = true

			level, err := ParseLevel(fi.Level)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", fi.ID, err)
			}
			items = append(items, ContentItem{
				ID:               fi.ID,
				TrackID:          ft.ID,
				Order:            fi.Order,
				Level:            level,
				Title:            fi.Title,
				EstimatedMinutes: fi.EstimatedMinutes,
				Summary:          fi.Summary,
				Body:             fi.Body,
			})
		}
	}

	return New(tracks, items), nil
}

// validateSchema checks the raw document against the embedded JSON Schema.
// The YAML is round-tripped through JSON so numbers reach the validator
// in the form it expects.
func validateSchema(data []byte) error {
	schema, err := catalogSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("convert catalog: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}
