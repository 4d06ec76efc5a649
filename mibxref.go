// Package mibxref loads SMI module stubs and cross-references them into a
// resolved schema: symbol tables, imports, the OID tree, type chains, the
// row hierarchy and default values.
//
// Example:
//
//	src, err := mibxref.DirTree("./stubs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := mibxref.Load(ctx,
//	    mibxref.WithSource(src),
//	    mibxref.WithModules("IF-MIB"),
//	    mibxref.WithLogger(slog.Default()),
//	)
package mibxref

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golangsnmp/mibxref/internal/types"
	"github.com/golangsnmp/mibxref/internal/wellknown"
	"github.com/golangsnmp/mibxref/mib"
)

// ErrNoSources is returned when Load has no source to read from.
var ErrNoSources = errors.New("no stub sources provided")

// ErrResolutionFailed is wrapped by ResolutionError when fail-on-error is
// set and the problem stream is not OK.
var ErrResolutionFailed = errors.New("cross-reference failed")

// ResolutionError carries the problem stream of a failed cross-reference.
// No schema is returned alongside it.
type ResolutionError struct {
	Problems *mib.Problems
	// Modules is the number of modules that took part.
	Modules int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%v: %d problems", ErrResolutionFailed, e.Problems.Count())
}

func (e *ResolutionError) Unwrap() error { return ErrResolutionFailed }

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (symbols, OID components, imports).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Load and Resolve.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	sources     []Source
	modules     []string
	systemPaths bool

	diagConfig  mib.DiagnosticConfig
	failOnError bool

	definers       []mib.Definer
	noStandardDefs bool
}

func newConfig(opts []Option) config {
	cfg := config{diagConfig: mib.DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithSource adds a source of stub documents. Sources are searched in the
// order they were added.
func WithSource(src Source) Option {
	return func(c *config) {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
}

// WithModules restricts loading to the named modules and the modules they
// import, transitively. Without it every document of every source is loaded.
func WithModules(names ...string) Option {
	return func(c *config) { c.modules = append(c.modules, names...) }
}

// WithSystemPaths appends the directories named by MIBXREF_PATH and the
// default stub locations after any explicit source.
func WithSystemPaths() Option {
	return func(c *config) { c.systemPaths = true }
}

// WithStrictness sets the strictness level, keeping the rest of the
// diagnostic configuration.
func WithStrictness(level mib.StrictnessLevel) Option {
	return func(c *config) { c.diagConfig.Level = level }
}

// WithDiagnosticConfig replaces the diagnostic configuration.
func WithDiagnosticConfig(dc mib.DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = dc }
}

// WithFailOnError makes Load and Resolve return a *ResolutionError, and no
// schema, when a recorded problem reaches the configured failure threshold.
func WithFailOnError(fail bool) Option {
	return func(c *config) { c.failOnError = fail }
}

// WithDefiners adds definers injected after the standard ones.
func WithDefiners(defs ...mib.Definer) Option {
	return func(c *config) { c.definers = append(c.definers, defs...) }
}

// WithoutStandardDefiners skips the built-in SMI base modules.
func WithoutStandardDefiners() Option {
	return func(c *config) { c.noStandardDefs = true }
}

// StandardDefiners returns the definers of the SMI base modules
// (SNMPv2-SMI, RFC1155-SMI, RFC-1212, RFC-1215, SNMPv2-TC, SNMPv2-CONF).
func StandardDefiners() []mib.Definer {
	return wellknown.Definers()
}

func (c *config) allDefiners() []mib.Definer {
	var defs []mib.Definer
	if !c.noStandardDefs {
		defs = append(defs, wellknown.Definers()...)
	}
	return append(defs, c.definers...)
}

// Resolve cross-references a schema built in memory. With fail-on-error set
// and a failing problem stream it returns a nil schema and a
// *ResolutionError.
func Resolve(m *mib.Mib, opts ...Option) (*mib.Mib, error) {
	cfg := newConfig(opts)
	return resolve(m, &cfg)
}

func resolve(m *mib.Mib, cfg *config) (*mib.Mib, error) {
	m.SetDiagnosticConfig(cfg.diagConfig)
	p := m.CrossReference(mib.XRefOptions{
		Logger:   cfg.logger,
		Definers: cfg.allDefiners(),
	})
	if cfg.failOnError && p.NotOK() {
		return nil, &ResolutionError{Problems: p, Modules: len(m.Modules())}
	}
	return m, nil
}
