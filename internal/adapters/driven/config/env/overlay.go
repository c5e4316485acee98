// Package env overlays PROJECTOR_* environment variables on a ConfigStore.
package env

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/projector/internal/adapters/driven/config/values"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
)

// Prefix is prepended to every variable name.
const Prefix = "PROJECTOR_"

// Variables are the recognised environment variables, without Prefix.
// Zero values mean unset.
type Variables struct {
	PageSize     int      `env:"PAGE_SIZE"`
	MaxPageSize  int      `env:"MAX_PAGE_SIZE"`
	Keys         string   `env:"FORMAT_KEYS"`
	Types        string   `env:"FORMAT_TYPES"`
	Formats      []string `env:"RENDER_FORMATS" envSeparator:","`
	ParseFormats []string `env:"PARSE_FORMATS" envSeparator:","`
	ErrorMapping string   `env:"ERRORS_MAPPING"`
	BaseURL      string   `env:"LINKS_BASE_URL"`
}

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// Overlay answers reads from environment overrides first and writes
// through to the wrapped store.
type Overlay struct {
	driven.ConfigStore

	mu        sync.RWMutex
	overrides map[string]any
	environ   map[string]string
}

// NewOverlay parses the process environment and wraps store.
func NewOverlay(store driven.ConfigStore) (*Overlay, error) {
	return newOverlay(store, nil)
}

// NewOverlayFrom is NewOverlay reading variables from environ instead of
// the process environment.
func NewOverlayFrom(store driven.ConfigStore, environ map[string]string) (*Overlay, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return newOverlay(store, environ)
}

func newOverlay(store driven.ConfigStore, environ map[string]string) (*Overlay, error) {
	o := &Overlay{ConfigStore: store, environ: environ}
	if err := o.parse(); err != nil {
		return nil, err
	}
	return o, nil
}

// Parse reads the variables with Prefix applied.
func Parse(environ map[string]string) (Variables, error) {
	var vars Variables
	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&vars, opts); err != nil {
		return Variables{}, fmt.Errorf("parse env: %w", err)
	}
	return vars, nil
}

func (o *Overlay) parse() error {
	vars, err := Parse(o.environ)
	if err != nil {
		return err
	}

	overrides := make(map[string]any)
	setInt := func(key string, v int) {
		if v != 0 {
			overrides[key] = v
		}
	}
	setString := func(key, v string) {
		if v != "" {
			overrides[key] = v
		}
	}
	setSlice := func(key string, v []string) {
		if len(v) > 0 {
			overrides[key] = v
		}
	}
	setInt("pagination.page_size", vars.PageSize)
	setInt("pagination.max_page_size", vars.MaxPageSize)
	setString("format.keys", vars.Keys)
	setString("format.types", vars.Types)
	setSlice("render.formats", vars.Formats)
	setSlice("parse.formats", vars.ParseFormats)
	setString("errors.mapping", vars.ErrorMapping)
	setString("links.base_url", vars.BaseURL)

	o.mu.Lock()
	o.overrides = overrides
	o.mu.Unlock()
	return nil
}

// Overridden reports whether key is set from the environment.
func (o *Overlay) Overridden(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.overrides[key]
	return ok
}

// Get returns the environment value for key, falling back to the store.
func (o *Overlay) Get(key string) (any, bool) {
	o.mu.RLock()
	v, ok := o.overrides[key]
	o.mu.RUnlock()
	if ok {
		return v, true
	}
	return o.ConfigStore.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	v, _ := o.Get(key)
	return values.String(v)
}

// GetInt retrieves an integer configuration value.
func (o *Overlay) GetInt(key string) int {
	v, _ := o.Get(key)
	return values.Int(v)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	v, _ := o.Get(key)
	return values.Bool(v)
}

// GetStringSlice retrieves a string slice configuration value.
func (o *Overlay) GetStringSlice(key string) []string {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	return values.StringSlice(v)
}

// Load reloads the wrapped store and re-reads the environment.
func (o *Overlay) Load() error {
	if err := o.ConfigStore.Load(); err != nil {
		return err
	}
	return o.parse()
}
