// Package production provides production integrations for vectorx:
// snapshot persistence of vector contents to disk in JSON or YAML.

package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx"
)

// Snapshot is a serializable value capture of a vector's live
// elements. It holds plain values, not the vector's storage; taking a
// snapshot does not transfer element ownership.
type Snapshot[T any] struct {
	Name     string `json:"name" yaml:"name"`
	Elements []T    `json:"elements" yaml:"elements"`
}

// Capture snapshots the live elements of v under the given name.
func Capture[T any](name string, v *vectorx.Vector[T]) Snapshot[T] {
	return Snapshot[T]{
		Name:     name,
		Elements: slices.Clone(v.Slice()),
	}
}

// Restore rebuilds v from a snapshot, replacing its contents. Cloner
// element types are cloned in; on failure v keeps its prior contents.
func Restore[T any](snap Snapshot[T], v *vectorx.Vector[T]) error {
	tmp, err := vectorx.Of(snap.Elements...)
	if err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Destroy()
	return nil
}

// JSONPersister is a stdlib-only file-based persister using JSON
// serialization, one file per snapshot name.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

// SaveJSON writes the snapshot to <dir>/<name>.json.
// Methods cannot introduce type parameters, hence the function form.
func SaveJSON[T any](ctx context.Context, p *JSONPersister, snap Snapshot[T]) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.Name+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

// LoadJSON reads the snapshot stored under name.
func LoadJSON[T any](ctx context.Context, p *JSONPersister, name string) (Snapshot[T], error) {
	fn := filepath.Join(p.dir, name+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty Snapshot[T]
			return empty, fmt.Errorf("snapshot %q: %w", name, os.ErrNotExist)
		}
		return Snapshot[T]{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap Snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot[T]{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snap.Name = name // Ensure name

	return snap, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

// SaveYAML writes the snapshot to <dir>/<name>.yaml.
func SaveYAML[T any](ctx context.Context, p *YAMLPersister, snap Snapshot[T]) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(p.dir, snap.Name+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	return nil
}

// LoadYAML reads the snapshot stored under name.
func LoadYAML[T any](ctx context.Context, p *YAMLPersister, name string) (Snapshot[T], error) {
	fn := filepath.Join(p.dir, name+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			var empty Snapshot[T]
			return empty, fmt.Errorf("snapshot %q: %w", name, os.ErrNotExist)
		}
		return Snapshot[T]{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snap Snapshot[T]
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot[T]{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snap.Name = name

	return snap, nil
}
