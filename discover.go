// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathtemplate

package pathtemplate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// DiscoveryOptions configures schema file discovery.
type DiscoveryOptions struct {
	// Logger receives debug records about loaded files. Nil discards.
	Logger *slog.Logger `json:"-" yaml:"-"`
	// Extensions select definition files, see ParseExtensions.
	// Empty value defaults to ".yaml", ".yml", ".json" and ".hcl".
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// NonRecursive limits discovery to files directly inside each root.
	NonRecursive bool `json:"non_recursive,omitempty" yaml:"non_recursive,omitempty"`
}

// Discoverer finds schema definition files under search roots and exposes
// each one as a TemplateSource.
type Discoverer struct {
	// fs is the filesystem searched for definition files.
	fs billy.Filesystem
	// logger receives debug records.
	logger *slog.Logger
	// cache stores loaded schema by file path.
	cache map[string]*cachedSchema
	// extensions are normalized definition file extensions.
	extensions []string

	// mu guards cache access.
	mu sync.Mutex
	// recursive enables descending into subdirectories.
	recursive bool
}

// cachedSchema stores one loaded schema or a cached load error.
type cachedSchema struct {
	// schema is nil when load failed.
	schema *Schema
	// err stores read/parse/build error for deterministic repeated calls.
	err error
	// loading reports whether schema is currently being loaded by another goroutine.
	loading bool
	// wg coordinates concurrent waiters for one load attempt.
	wg sync.WaitGroup
}

// fileSource is TemplateSource backed by one definition file.
type fileSource struct {
	d    *Discoverer
	path string
}

// NewDiscoverer creates discoverer over fs.
func NewDiscoverer(fs billy.Filesystem, opts DiscoveryOptions) (*Discoverer, error) {
	if fs == nil {
		return nil, fmt.Errorf("%w: nil filesystem", ErrInvalidDefinition)
	}

	extensions := defaultExtensions
	if len(opts.Extensions) > 0 {
		extensions = ParseExtensions(opts.Extensions)
		if len(extensions) == 0 {
			return nil, fmt.Errorf("%w: no usable extensions in %q", ErrInvalidExtension, opts.Extensions)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Discoverer{
		fs:         fs,
		logger:     logger,
		extensions: extensions,
		recursive:  !opts.NonRecursive,
		cache:      make(map[string]*cachedSchema),
	}, nil
}

// Sources walks roots in order and returns one source per definition file.
//
// Files inside one root are visited in lexical order. Missing roots are skipped.
func (d *Discoverer) Sources(roots ...string) ([]TemplateSource, error) {
	var sources []TemplateSource
	for _, raw := range roots {
		root := normalizeRoot(raw)
		if _, err := d.fs.Stat(root); err != nil {
			if os.IsNotExist(err) {
				d.logger.Debug("skip missing discovery root", "root", root)
				continue
			}

			return nil, fmt.Errorf("stat root %s: %w", root, err)
		}

		err := util.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if !d.recursive && path != root {
					return filepath.SkipDir
				}

				return nil
			}

			if !hasExtension(d.extensions, asciiLower(filepath.Ext(path))) {
				return nil
			}

			sources = append(sources, fileSource{d: d, path: path})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return sources, nil
}

// Discover returns templates of every definition file found under roots.
func (d *Discoverer) Discover(roots ...string) ([]*Template, error) {
	sources, err := d.Sources(roots...)
	if err != nil {
		return nil, err
	}

	return DiscoverTemplates(sources...)
}

// Schema returns cached or newly loaded schema of one definition file.
func (d *Discoverer) Schema(path string) (*Schema, error) {
	d.mu.Lock()
	cached, ok := d.cache[path]
	if ok {
		loading := cached.loading
		d.mu.Unlock()
		if loading {
			cached.wg.Wait()
		}

		return cached.schema, cached.err
	}

	cached = &cachedSchema{
		loading: true,
	}
	cached.wg.Add(1)
	d.cache[path] = cached
	d.mu.Unlock()

	schema, loadErr := d.loadSchema(path)

	d.mu.Lock()
	cached.schema = schema
	cached.err = loadErr
	cached.loading = false
	cached.wg.Done()
	d.mu.Unlock()

	return schema, loadErr
}

// loadSchema reads and builds schema of one definition file.
func (d *Discoverer) loadSchema(path string) (*Schema, error) {
	src, err := util.ReadFile(d.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	def, err := ParseSchemaDefinition(path, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	schema, err := NewSchemaFromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}

	d.logger.Debug("loaded schema file",
		"path", path,
		"templates", schema.Len(),
		"references", len(def.References),
	)

	return schema, nil
}

// Register implements TemplateSource.
func (s fileSource) Register() ([]*Template, error) {
	schema, err := s.d.Schema(s.path)
	if err != nil {
		return nil, err
	}

	return schema.Templates(), nil
}
