package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment-variable overrides, e.g.
// PRESSCTL_URL for the url option.
const envPrefix = "PRESSCTL"

// Resolver merges option values from layered sources into one map.
type Resolver struct {
	table *Table
	env   *viper.Viper
}

// NewResolver builds a resolver over the option table. The environment
// layer reads PRESSCTL_* variables through a dedicated viper instance.
func NewResolver(table *Table) *Resolver {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Resolver{table: table, env: v}
}

// LoadDotEnv loads a .env file from dir into the process environment
// before the environment layer is read. Absent files are fine; existing
// process variables keep priority over .env entries.
func LoadDotEnv(dir string) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))
}

// Resolve builds the global configuration: defaults, then each file
// layer in the order given (global before project), then environment
// variables, then the runtime map from SplitArgs. Nil layers are
// skipped. The result is read-only for the rest of the invocation.
func (r *Resolver) Resolve(layers []*FileLayer, runtime map[string]any) *Resolved {
	merged := r.table.Defaults()

	for _, layer := range layers {
		if layer == nil {
			continue
		}
		layer.resolvePaths(r.table)
		r.mergeLayer(merged, layer.Values, true)
	}
	r.mergeLayer(merged, r.envLayer(), false)
	r.mergeLayer(merged, runtime, false)

	return &Resolved{values: merged}
}

// mergeLayer folds one source into the accumulated map. Singular keys
// are replaced; Multiple keys append in layer order. Keys without a
// spec pass through untouched (extra config from files).
func (r *Resolver) mergeLayer(dst, src map[string]any, fromFile bool) {
	for key, value := range src {
		spec, known := r.table.Lookup(key)
		if known && fromFile && !spec.File {
			continue
		}
		if known && spec.Multiple {
			dst[key] = append(cast.ToStringSlice(dst[key]), cast.ToStringSlice(value)...)
			continue
		}
		dst[key] = value
	}
}

// envLayer collects PRESSCTL_* overrides for every runtime-enabled key.
func (r *Resolver) envLayer() map[string]any {
	layer := make(map[string]any)
	for _, spec := range r.table.Specs() {
		if spec.Runtime == RuntimeNone {
			continue
		}
		val := r.env.GetString(spec.Key)
		if val == "" {
			continue
		}
		switch {
		case spec.Multiple:
			layer[spec.Key] = []string{val}
		case spec.Runtime == RuntimeFlag:
			layer[spec.Key] = cast.ToBool(val)
		default:
			layer[spec.Key] = val
		}
	}
	return layer
}

// Resolved is the merged global configuration, built once per process
// invocation and read-only thereafter.
type Resolved struct {
	values map[string]any
}

// Get returns the raw merged value for key.
func (c *Resolved) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetString returns the value for key coerced to a string.
func (c *Resolved) GetString(key string) string {
	return cast.ToString(c.values[key])
}

// GetBool returns the value for key coerced to a bool.
func (c *Resolved) GetBool(key string) bool {
	return cast.ToBool(c.values[key])
}

// GetStringSlice returns the accumulated values of a Multiple key.
func (c *Resolved) GetStringSlice(key string) []string {
	return cast.ToStringSlice(c.values[key])
}

// Keys returns every resolved key, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the merged values, safe for the caller to
// mutate (the pipeline deletes shadowed keys from its copy).
func (c *Resolved) Map() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
