package observe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists observation sources to load in one go.
type Manifest struct {
	Files []ManifestFile `yaml:"files"`
	Dirs  []string       `yaml:"dirs"`
}

type ManifestFile struct {
	Path string `yaml:"path"`
	Arch string `yaml:"arch"`
	Bits string `yaml:"bits"`
}

func ReadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	for i, f := range m.Files {
		if f.Path == "" || f.Arch == "" || f.Bits == "" {
			return nil, fmt.Errorf("manifest file entry %d: path, arch and bits are required", i)
		}
	}
	return &m, nil
}

// LoadManifest loads all sources named by the manifest at path. Relative
// paths are resolved against the manifest's directory.
func (a *Aggregator) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := ReadManifest(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	for _, f := range m.Files {
		if err := a.LoadFile(f.Arch, f.Bits, resolve(f.Path)); err != nil {
			return err
		}
	}
	for _, dir := range m.Dirs {
		if err := a.LoadDirectory(resolve(dir)); err != nil {
			return err
		}
	}
	return nil
}
