// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the process-wide traversal settings: cache limits,
// the automatic caching policy, transparency layer count and debugging
// switches. Settings come from defaults, an optional TOML or YAML file and
// a fixed set of environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/core/base/errors"
)

// Config holds the settings shared by all actions of a library.
type Config struct {

	// RenderCacheMax is the maximum number of render caches kept per separator
	// and context. Zero disables render caching.
	RenderCacheMax int `toml:"render_cache_max" yaml:"render_cache_max"`

	// AutoCaching enables the automatic render caching heuristics for
	// separators whose caching mode is auto.
	AutoCaching bool `toml:"auto_caching" yaml:"auto_caching"`

	// RandomizeRenderCaching gives every separator a random caching mode, to
	// shake out cache invalidation bugs.
	RandomizeRenderCaching bool `toml:"randomize_render_caching" yaml:"randomize_render_caching"`

	// GLErrorDebugging checks the renderer for errors after every child of
	// every group.
	GLErrorDebugging bool `toml:"gl_error_debugging" yaml:"gl_error_debugging"`

	// SortedLayersPasses is the number of depth peeling layers used for
	// order-independent transparency.
	SortedLayersPasses int `toml:"sorted_layers_passes" yaml:"sorted_layers_passes"`

	// BBoxCacheAutoMinUses is the minimum ratio of bounding box cache uses to
	// cache destructions below which an auto separator stops caching.
	BBoxCacheAutoMinUses int `toml:"bbox_cache_auto_min_uses" yaml:"bbox_cache_auto_min_uses"`

	// AutoCache is the automatic render caching policy.
	AutoCache AutoCache `toml:"auto_cache" yaml:"auto_cache"`
}

// AutoCache holds the thresholds of the automatic render caching policy.
type AutoCache struct {

	// SmallPrimitives is the primitive count below which a subtree is cheap
	// enough to cache once it has been stable for MinStableFrames traversals.
	SmallPrimitives int `toml:"small_primitives" yaml:"small_primitives"`

	// LargePrimitives is the primitive count above which a subtree is never
	// cached automatically.
	LargePrimitives int `toml:"large_primitives" yaml:"large_primitives"`

	// MinStableFrames is the number of unchanged traversals required before
	// caching a small subtree.
	MinStableFrames int `toml:"min_stable_frames" yaml:"min_stable_frames"`

	// StaticFrames is the number of unchanged traversals required before
	// caching a subtree between the small and large thresholds.
	StaticFrames int `toml:"static_frames" yaml:"static_frames"`
}

// New returns a new config with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults sets the default values.
func (c *Config) Defaults() {
	c.RenderCacheMax = 2
	c.AutoCaching = true
	c.SortedLayersPasses = 4
	c.BBoxCacheAutoMinUses = 5
	c.AutoCache.Defaults()
}

// Defaults sets the default values.
func (a *AutoCache) Defaults() {
	a.SmallPrimitives = 1000
	a.LargePrimitives = 100000
	a.MinStableFrames = 2
	a.StaticFrames = 3
}

// Open reads the config file at the given path on top of the current values.
// A leading ~ in the path is expanded to the home directory.
// The format is chosen from the extension: .toml, .yaml or .yml.
func (c *Config) Open(filename string) error {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return fmt.Errorf("config.Open: %w", err)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.Unmarshal(b, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	default:
		return fmt.Errorf("config.Open: unsupported config file extension %q", filepath.Ext(filename))
	}
	if err != nil {
		return fmt.Errorf("config.Open: %s: %w", filename, err)
	}
	return c.Validate()
}

// Save writes the config to the given path in TOML or YAML, by extension.
// A leading ~ in the path is expanded to the home directory.
func (c *Config) Save(filename string) error {
	filename, err := homedir.Expand(filename)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	var b []byte
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		b, err = toml.Marshal(c)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("config.Save: unsupported config file extension %q", filepath.Ext(filename))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}

// Validate returns an error if any value is out of range.
func (c *Config) Validate() error {
	var errs []error
	if c.RenderCacheMax < 0 {
		errs = append(errs, fmt.Errorf("render_cache_max must not be negative: %d", c.RenderCacheMax))
	}
	if c.SortedLayersPasses < 1 {
		errs = append(errs, fmt.Errorf("sorted_layers_passes must be at least 1: %d", c.SortedLayersPasses))
	}
	if c.AutoCache.SmallPrimitives > c.AutoCache.LargePrimitives {
		errs = append(errs, fmt.Errorf("auto_cache.small_primitives %d is above large_primitives %d",
			c.AutoCache.SmallPrimitives, c.AutoCache.LargePrimitives))
	}
	return errors.Join(errs...)
}

// Environment variables read by [Config.ApplyEnv].
const (
	EnvSeparatorMaxCaches   = "IV_SEPARATOR_MAX_CACHES"
	EnvRandomizeRenderCache = "COIN_RANDOMIZE_RENDER_CACHING"
	EnvGLErrorDebugging     = "COIN_GLERROR_DEBUGGING"
	EnvSortedLayersPasses   = "COIN_NUM_SORTED_LAYERS_PASSES"
	EnvAutoCaching          = "COIN_AUTO_CACHING"
)

// ApplyEnv overrides values from the environment. Invalid values are
// logged and ignored.
func (c *Config) ApplyEnv() {
	envInt(EnvSeparatorMaxCaches, &c.RenderCacheMax, 0)
	envBool(EnvRandomizeRenderCache, &c.RandomizeRenderCaching)
	envBool(EnvGLErrorDebugging, &c.GLErrorDebugging)
	envInt(EnvSortedLayersPasses, &c.SortedLayersPasses, 1)
	envBool(EnvAutoCaching, &c.AutoCaching)
}

func envInt(name string, v *int, minimum int) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < minimum {
		errors.Log(fmt.Errorf("config: invalid value %q for %s", s, name))
		return
	}
	*v = i
}

func envBool(name string, v *bool) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return
	}
	if i, err := strconv.Atoi(s); err == nil {
		*v = i != 0
		return
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		errors.Log(fmt.Errorf("config: invalid value %q for %s", s, name))
		return
	}
	*v = b
}
