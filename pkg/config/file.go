package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in project directories.
const FileName = "pressctl.yml"

// EnvConfigPath overrides the global config file location.
const EnvConfigPath = "PRESSCTL_CONFIG"

// FileLayer is one config file's contribution to the merge. Values keeps
// every key found in the file; keys without an option spec pass through
// as extra configuration available to commands but not validated.
type FileLayer struct {
	Path   string
	Values map[string]any
}

// LoadFile parses a YAML config file into a layer. A missing file is not
// an error: it returns (nil, nil) so absent layers merge as no-ops.
func LoadFile(path string) (*FileLayer, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &FileLayer{Path: path, Values: values}, nil
}

// resolvePaths rewrites relative path-valued entries against the file's
// own directory, so a relocated config file keeps working.
func (l *FileLayer) resolvePaths(t *Table) {
	dir := filepath.Dir(l.Path)
	for key, value := range l.Values {
		spec, ok := t.Lookup(key)
		if !ok || !spec.Path {
			continue
		}
		if spec.Multiple {
			var out []string
			for _, v := range cast.ToStringSlice(value) {
				out = append(out, absAgainst(dir, v))
			}
			l.Values[key] = out
			continue
		}
		l.Values[key] = absAgainst(dir, cast.ToString(value))
	}
}

func absAgainst(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LocateGlobal returns the environment-level config file path: the
// PRESSCTL_CONFIG override when set, otherwise the XDG config home.
func LocateGlobal() string {
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return custom
	}
	return filepath.Join(xdg.ConfigHome, "pressctl", "config.yml")
}

// LocateProject walks up from startDir looking for a project config
// file. Returns "" when none is found.
func LocateProject(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
