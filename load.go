package mibxref

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/golangsnmp/mibxref/internal/stub"
	"github.com/golangsnmp/mibxref/internal/types"
	"github.com/golangsnmp/mibxref/mib"
)

func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

// Load reads stub documents from the configured sources, builds their
// modules and cross-references them.
//
// Without WithModules every module of every source is loaded. With it, the
// named modules and everything they import are loaded; a named module that
// no source has is an error wrapping mib.ErrModuleNotFound, while a missing
// import is left for the cross-reference to report.
//
// Documents are read and decoded in parallel. Modules are built in module
// id order so the result does not depend on scheduling.
func Load(ctx context.Context, opts ...Option) (*mib.Mib, error) {
	cfg := newConfig(opts)
	logger := types.Component(cfg.logger, "load")

	sources := cfg.sources
	if cfg.systemPaths {
		sources = append(sources, systemSources(logger)...)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	names := cfg.modules
	transitive := len(names) > 0
	if !transitive {
		var err error
		if names, err = Multi(sources...).ListModules(); err != nil {
			return nil, err
		}
	}

	l := &loader{
		sources:   sources,
		logger:    logger,
		requested: make(map[string]struct{}),
		loaded:    make(map[string]struct{}),
	}
	docs, err := l.load(ctx, names, transitive)
	if err != nil {
		return nil, err
	}

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "loading complete",
			slog.Int("documents", len(docs)))
	}

	m := mib.New()
	slices.SortStableFunc(docs, func(a, b *stub.Document) int {
		return cmp.Compare(a.ModuleID(), b.ModuleID())
	})
	for _, doc := range docs {
		if _, err := doc.Build(m); err != nil {
			if errors.Is(err, mib.ErrDuplicateModule) {
				if logEnabled(logger, slog.LevelWarn) {
					logger.LogAttrs(ctx, slog.LevelWarn, "duplicate module skipped",
						slog.String("module", doc.ModuleID()),
						slog.String("source", doc.Source))
				}
				continue
			}
			return nil, err
		}
	}
	return resolve(m, &cfg)
}

type loader struct {
	sources []Source
	logger  *slog.Logger

	requested map[string]struct{} // names passed to fetch
	loaded    map[string]struct{} // module ids decoded so far
}

// load fetches names in waves. Each wave is decoded in parallel; when
// transitive is set the imports of a wave seed the next one.
func (l *loader) load(ctx context.Context, names []string, transitive bool) ([]*stub.Document, error) {
	var docs []*stub.Document
	wave := l.pending(names)
	first := true
	for len(wave) > 0 {
		results := make([][]*stub.Document, len(wave))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i, name := range wave {
			g.Go(func() error {
				found, err := l.fetch(gctx, name)
				if err != nil {
					return err
				}
				if found == nil && first && transitive {
					return fmt.Errorf("%w: %s", mib.ErrModuleNotFound, name)
				}
				results[i] = found
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []string
		for _, found := range results {
			for _, doc := range found {
				docs = append(docs, doc)
				l.loaded[doc.ModuleID()] = struct{}{}
				if transitive {
					next = append(next, doc.Imports()...)
				}
			}
		}
		wave = l.pending(next)
		first = false
	}
	return docs, nil
}

// pending returns the names not yet requested or loaded, in order and
// without repeats, and marks them requested.
func (l *loader) pending(names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := l.requested[name]; ok {
			continue
		}
		if _, ok := l.loaded[name]; ok {
			continue
		}
		l.requested[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// fetch reads and decodes the first document set found for name. A module
// no source has yields nil without error.
func (l *loader) fetch(ctx context.Context, name string) ([]*stub.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, src := range l.sources {
		r, path, err := src.Find(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find %s: %w", name, err)
		}
		content, err := io.ReadAll(r)
		_ = r.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		if hs, ok := src.(heuristicSource); !ok || !hs.skipHeuristic() {
			if !looksLikeStub(content) {
				if logEnabled(l.logger, slog.LevelDebug) {
					l.logger.LogAttrs(ctx, slog.LevelDebug, "content rejected by heuristic",
						slog.String("module", name),
						slog.String("path", path))
				}
				continue
			}
		}

		docs, err := stub.Decode(path, bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		if logEnabled(l.logger, slog.LevelDebug) {
			l.logger.LogAttrs(ctx, slog.LevelDebug, "decoded",
				slog.String("module", name),
				slog.String("path", path),
				slog.Int("documents", len(docs)))
		}
		return docs, nil
	}

	if logEnabled(l.logger, slog.LevelDebug) {
		l.logger.LogAttrs(ctx, slog.LevelDebug, "module not found",
			slog.String("module", name))
	}
	return nil, nil
}

var sigModule = []byte("module:")

const binaryCheckSize = 1024

// looksLikeStub rejects binary content and files without a module key.
func looksLikeStub(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if bytes.IndexByte(content[:min(len(content), binaryCheckSize)], 0) >= 0 {
		return false
	}
	return bytes.Contains(content, sigModule)
}
