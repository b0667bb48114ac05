// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/logutil"
)

const (
	AllocatorGo    = "go"
	AllocatorClass = "class"
	AllocatorLimit = "limit"

	defaultAllocator       = AllocatorGo
	defaultLimit           = 1 << 20
	defaultClassBufferSize = 1 << 24
	defaultMetricsName     = "stl-tool"
	defaultElements        = 1 << 16
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
)

// Config is the configuration of the stl-tool command.
type Config struct {
	Log    logutil.LogConfig `toml:"log"`
	Malloc MallocConfig      `toml:"malloc"`
	Growth GrowthConfig      `toml:"growth"`
}

// MallocConfig selects the allocator containers are built on.
type MallocConfig struct {
	// Allocator is one of go, class or limit.
	Allocator string `toml:"allocator"`
	// Limit is the element budget of the limit allocator.
	Limit int `toml:"limit"`
	// ClassBufferSize bounds the elements the class allocator keeps pooled.
	ClassBufferSize int `toml:"class-buffer-size"`
	// Metrics wraps the allocator so that it reports to prometheus.
	Metrics bool `toml:"metrics"`
	// MetricsName labels the reported metrics.
	MetricsName string `toml:"metrics-name"`
	// PropagateOnCopy, PropagateOnMove and PropagateOnSwap set the policy
	// of the class and limit allocators.
	PropagateOnCopy bool `toml:"propagate-on-copy"`
	PropagateOnMove bool `toml:"propagate-on-move"`
	PropagateOnSwap bool `toml:"propagate-on-swap"`
}

// GrowthConfig drives the growth demo.
type GrowthConfig struct {
	// Elements is how many values get pushed.
	Elements int `toml:"elements"`
}

// Default returns a filled configuration.
func Default() *Config {
	c := &Config{}
	c.Fill()
	return c
}

// Load reads a TOML file, fills in defaults and validates the result.
func Load(path string) (*Config, error) {
	c := &Config{}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, moerr.NewBadConfigNoCtx("decode %s: %v", path, err)
	}
	return c, c.prepare()
}

// Parse is Load for configuration text.
func Parse(data string) (*Config, error) {
	c := &Config{}
	if _, err := toml.Decode(data, c); err != nil {
		return nil, moerr.NewBadConfigNoCtx("decode: %v", err)
	}
	return c, c.prepare()
}

func (c *Config) prepare() error {
	c.Fill()
	return c.Validate()
}

// Fill sets every unset field to its default.
func (c *Config) Fill() {
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	if c.Malloc.Allocator == "" {
		c.Malloc.Allocator = defaultAllocator
	}
	if c.Malloc.Limit == 0 {
		c.Malloc.Limit = defaultLimit
	}
	if c.Malloc.ClassBufferSize == 0 {
		c.Malloc.ClassBufferSize = defaultClassBufferSize
	}
	if c.Malloc.MetricsName == "" {
		c.Malloc.MetricsName = defaultMetricsName
	}
	if c.Growth.Elements == 0 {
		c.Growth.Elements = defaultElements
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Malloc.Allocator {
	case AllocatorGo, AllocatorClass, AllocatorLimit:
	default:
		return moerr.NewBadConfigNoCtx("unknown allocator %q", c.Malloc.Allocator)
	}
	if c.Malloc.Limit < 0 {
		return moerr.NewBadConfigNoCtx("malloc limit %d is negative", c.Malloc.Limit)
	}
	if c.Malloc.ClassBufferSize < 0 {
		return moerr.NewBadConfigNoCtx("class buffer size %d is negative", c.Malloc.ClassBufferSize)
	}
	if c.Growth.Elements < 0 {
		return moerr.NewBadConfigNoCtx("growth elements %d is negative", c.Growth.Elements)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfigNoCtx("unsupported log format %q", c.Log.Format)
	}
	return nil
}
