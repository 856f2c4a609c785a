// Copyright 2025 Certen Protocol
//
// YAML manifest loading for asset registration batches, grounded on the
// tagged-struct config-loading pattern used across the example pack for
// gopkg.in/yaml.v3 (struct fields carry `yaml:"..."` tags, Decode reports
// unknown fields rather than silently dropping them).
package assets

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ManifestFile describes one File registration in a YAML manifest.
type ManifestFile struct {
	Path        string            `yaml:"path"`
	BodyFile    string            `yaml:"body_file"`
	AliasedBy   []string          `yaml:"aliased_by,omitempty"`
	ContentType string            `yaml:"content_type,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	FallbackFor []struct {
		Scope      string `yaml:"scope"`
		StatusCode int    `yaml:"status_code"`
	} `yaml:"fallback_for,omitempty"`
}

// ManifestPattern describes one Pattern registration in a YAML manifest.
type ManifestPattern struct {
	Pattern     string            `yaml:"pattern"`
	ContentType string            `yaml:"content_type,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
}

// ManifestRedirect describes one Redirect registration in a YAML manifest.
type ManifestRedirect struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Permanent bool   `yaml:"permanent"`
}

// Manifest is the top-level YAML document describing an asset registration
// batch, bodies referenced by file path and loaded separately by the caller.
type Manifest struct {
	Files     []ManifestFile     `yaml:"files,omitempty"`
	Patterns  []ManifestPattern  `yaml:"patterns,omitempty"`
	Redirects []ManifestRedirect `yaml:"redirects,omitempty"`
}

// LoadManifestYAML decodes a YAML asset manifest from r.
func LoadManifestYAML(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode asset manifest: %w", err)
	}
	return &m, nil
}

// ToConfigs converts a decoded Manifest into AssetConfig values, with file
// bodies supplied by loadBody (keyed by each file's BodyFile path).
func (m *Manifest) ToConfigs(loadBody func(path string) ([]byte, error)) ([]AssetConfig, error) {
	var configs []AssetConfig

	for _, f := range m.Files {
		body, err := loadBody(f.BodyFile)
		if err != nil {
			return nil, fmt.Errorf("load body for %s: %w", f.Path, err)
		}
		cfg := NewFile(f.Path, body)
		cfg.AliasedBy = f.AliasedBy
		cfg.ContentType = f.ContentType
		for k, v := range f.Headers {
			cfg.Headers = append(cfg.Headers, [2]string{k, v})
		}
		for _, fb := range f.FallbackFor {
			cfg.FallbackFor = append(cfg.FallbackFor, FallbackScope{Scope: fb.Scope, StatusCode: fb.StatusCode})
		}
		configs = append(configs, cfg)
	}

	for _, p := range m.Patterns {
		cfg := NewPattern(p.Pattern)
		cfg.ContentType = p.ContentType
		for k, v := range p.Headers {
			cfg.Headers = append(cfg.Headers, [2]string{k, v})
		}
		configs = append(configs, cfg)
	}

	for _, rd := range m.Redirects {
		kind := Temporary
		if rd.Permanent {
			kind = Permanent
		}
		configs = append(configs, NewRedirect(rd.From, rd.To, kind))
	}

	return configs, nil
}
