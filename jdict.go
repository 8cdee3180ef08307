// Copyright 2025 Ian Lewis
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

package jdict

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-jdict/cache"
	"github.com/ianlewis/go-jdict/format"
	"github.com/ianlewis/go-jdict/internal/index"
	"github.com/ianlewis/go-jdict/morph"
	"github.com/ianlewis/go-jdict/parsed"
	"github.com/ianlewis/go-jdict/progress"
	"github.com/ianlewis/go-jdict/query"
	"github.com/ianlewis/go-jdict/source"
)

// queryCacheSize is the number of compiled queries kept per dictionary.
const queryCacheSize = 128

// Options are options for opening dictionaries.
type Options struct {
	// Format is the dictionary format. If nil the format is detected from
	// the file name.
	Format format.Format

	// Encoding is the text encoding of the dictionary file.
	Encoding source.Encoding

	// CacheDir is the directory holding parsed dictionary caches. Caching is
	// disabled if CacheDir is empty.
	CacheDir string

	// Logger receives debug and warning messages. If nil [slog.Default] is
	// used.
	Logger *slog.Logger

	// Progress reports parsing progress and may be used to cancel parsing.
	// It is ignored by OpenAll, which uses its own progress per dictionary.
	Progress *progress.Progress

	// Analyzer builds the morphological variants used to rank results. If
	// nil a default analyzer shared by all dictionaries is used.
	Analyzer *morph.Analyzer

	// Query are the options for compiling queries.
	Query *query.Options
}

// DefaultOptions are the default options for opening dictionaries.
var DefaultOptions = &Options{
	Encoding: source.Auto,
}

var (
	defaultAnalyzerOnce sync.Once
	defaultAnalyzer     *morph.Analyzer
)

func sharedAnalyzer() *morph.Analyzer {
	defaultAnalyzerOnce.Do(func() {
		defaultAnalyzer = morph.New(nil)
	})
	return defaultAnalyzer
}

// Dictionary is an opened dictionary. A Dictionary is safe for concurrent
// use.
type Dictionary struct {
	name     string
	path     string
	format   format.Format
	file     *parsed.File
	checksum string
	cached   bool

	logger   *slog.Logger
	analyzer *morph.Analyzer
	qopts    *query.Options
	queries  *lru.Cache[string, *query.Query]

	indexOnce sync.Once
	index     *index.Index[int]
}

// Open opens the dictionary file at path. Compressed variants of path are
// found automatically.
func Open(path string, opts *Options) (*Dictionary, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext opens the dictionary file at path. Parsing stops when ctx is
// done.
func OpenContext(ctx context.Context, path string, opts *Options) (*Dictionary, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	f := opts.Format
	if f == nil {
		var err error
		f, err = DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}

	d := &Dictionary{
		name:     filepath.Base(source.TrimExt(path)),
		path:     path,
		format:   f,
		logger:   opts.Logger,
		analyzer: opts.Analyzer,
		qopts:    opts.Query,
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.logger = d.logger.With("dict", d.name, "format", f.Name())
	if d.analyzer == nil {
		d.analyzer = sharedAnalyzer()
	}

	var err error
	d.queries, err = lru.New[string, *query.Query](queryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}

	content, err := source.ReadFile(path, &source.Options{Encoding: opts.Encoding})
	if err != nil {
		return nil, err
	}
	d.checksum = source.Checksum(content)

	p := opts.Progress
	if p == nil {
		p = progress.WithContext(ctx, 0)
	}
	if err := d.load(ctx, content, opts.CacheDir, p); err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return d, nil
}

// load reads the parsed dictionary from the cache or parses content.
func (d *Dictionary) load(ctx context.Context, content, cacheDir string, p *progress.Progress) error {
	if cacheDir != "" {
		file, err := cache.Read(cacheDir, d.checksum)
		switch {
		case err == nil:
			d.logger.Debug("using cache", "checksum", d.checksum, "lines", file.Len())
			d.file = file
			d.cached = true
			return nil
		case errors.Is(err, os.ErrNotExist):
			d.logger.Debug("no cache", "checksum", d.checksum)
		default:
			d.logger.Warn("discarding cache", "checksum", d.checksum, "err", err)
			if err := cache.Remove(cacheDir, d.checksum); err != nil {
				d.logger.Warn("removing cache", "err", err)
			}
		}
	}

	file, err := parsed.Parse(content, d.format, p)
	if err != nil {
		return err
	}
	d.file = file
	if st := file.Stats(); st.Malformed > 0 {
		d.logger.Debug("skipped malformed lines", "lines", st.Lines, "malformed", st.Malformed)
	}

	if cacheDir != "" {
		path, err := cache.Write(cacheDir, d.checksum, file, progress.WithContext(ctx, 0))
		if err != nil {
			d.logger.Warn("writing cache", "err", err)
			return nil
		}
		d.logger.Debug("wrote cache", "path", path)
	}
	return nil
}

// OpenAll opens all dictionaries under the given directories. Files whose
// format cannot be detected are skipped. This function will return all
// successfully opened dictionaries along with any errors that occurred.
func OpenAll(dirs []string, opts *Options) ([]*Dictionary, []error) {
	return OpenAllContext(context.Background(), dirs, opts)
}

// OpenAllContext opens all dictionaries under the given directories in
// parallel.
func OpenAllContext(ctx context.Context, dirs []string, opts *Options) ([]*Dictionary, []error) {
	if opts == nil {
		opts = DefaultOptions
	}

	var errs []error
	var paths []string
	seen := map[string]bool{}
	for _, dir := range dirs {
		if err := filepath.WalkDir(dir, func(path string, info fs.DirEntry, err error) error {
			// Walking the file path will ignore errors.
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if _, err := DetectFormat(path); err != nil {
				return nil
			}
			// Prefer the first of edict, edict.gz, etc.
			key := source.TrimExt(path)
			if seen[key] {
				return nil
			}
			seen[key] = true
			paths = append(paths, path)
			return nil
		}); err != nil {
			errs = append(errs, err)
		}
	}

	o := *opts
	o.Progress = nil
	if o.Analyzer == nil {
		o.Analyzer = sharedAnalyzer()
	}

	dicts := make([]*Dictionary, len(paths))
	openErrs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			dicts[i], openErrs[i] = OpenContext(gctx, path, &o)
			return nil
		})
	}
	_ = g.Wait()

	var opened []*Dictionary
	for i := range paths {
		if openErrs[i] != nil {
			errs = append(errs, openErrs[i])
			continue
		}
		opened = append(opened, dicts[i])
	}
	return opened, errs
}

// Name returns the dictionary name. It is the file name without compression
// extension.
func (d *Dictionary) Name() string {
	return d.name
}

// Path returns the path the dictionary was opened from.
func (d *Dictionary) Path() string {
	return d.path
}

// Format returns the dictionary format.
func (d *Dictionary) Format() format.Format {
	return d.format
}

// Len returns the number of lines in the dictionary.
func (d *Dictionary) Len() int {
	return d.file.Len()
}

// Checksum returns the checksum of the dictionary's text.
func (d *Dictionary) Checksum() string {
	return d.checksum
}

// Cached reports whether the dictionary was loaded from the cache.
func (d *Dictionary) Cached() bool {
	return d.cached
}

// Stats returns the dictionary's parse statistics.
func (d *Dictionary) Stats() parsed.Stats {
	return d.file.Stats()
}
