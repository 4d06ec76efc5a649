package mib

import "log/slog"

// ResolveReference resolves an identifier as seen from m: the module's own
// symbols first, then its imports, then every loaded module. Failures are
// reported to p; a nil p resolves silently.
func (m *Module) ResolveReference(tok *IdToken, p *Problems) Symbol {
	return m.lookup(tok, nil, p)
}

// lookup implements the layered resolution. accept, when set, narrows the
// cross-module candidates to symbols of the wanted kind before tie-breaking;
// local and imported hits are returned as found so callers can report a kind
// mismatch.
func (m *Module) lookup(tok *IdToken, accept func(Symbol) bool, p *Problems) Symbol {
	if s := m.byID[tok.ID]; s != nil {
		return s
	}
	for _, imp := range m.imports {
		if s := imp.symbols[tok.ID]; s != nil {
			return s
		}
	}

	candidates := m.mib.symbols.byID[tok.ID]
	if accept != nil && len(candidates) > 1 {
		var filtered []Symbol
		for _, c := range candidates {
			if accept(c) {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	switch len(candidates) {
	case 0:
		p.symbolNotFound(tok)
		return nil
	case 1:
		return candidates[0]
	}
	if s := m.determineBestMatch(candidates); s != nil {
		return s
	}
	m.mib.log.Log(slog.LevelDebug, "ambiguous symbol",
		slog.String("module", m.ID()),
		slog.String("symbol", tok.ID),
		slog.Int("candidates", len(candidates)))
	p.symbolAmbiguous(tok, candidates)
	return nil
}

// determineBestMatch breaks a tie between same-named symbols of different
// modules: by matching version when exactly two candidates disagree on it,
// then by preferring a module this module imports from.
func (m *Module) determineBestMatch(candidates []Symbol) Symbol {
	if len(candidates) == 2 {
		v0 := candidates[0].Module().Version()
		v1 := candidates[1].Module().Version()
		if v0 != VersionUnknown && v1 != VersionUnknown && v0 != v1 {
			mine := m.Version()
			for _, c := range candidates {
				if c.Module().Version() == mine {
					return c
				}
			}
		}
	}
	for _, c := range candidates {
		if m.importsModule(c.Module()) {
			return c
		}
	}
	return nil
}

// resolveAs resolves tok and checks the result against T. A symbol of
// another kind is reported as a mismatch and not returned.
func resolveAs[T Symbol](m *Module, tok *IdToken, want string, p *Problems) (T, bool) {
	var zero T
	sym := m.lookup(tok, func(s Symbol) bool {
		_, ok := s.(T)
		return ok
	}, p)
	if sym == nil {
		return zero, false
	}
	t, ok := sym.(T)
	if !ok {
		p.symbolWrongKind(tok, want, sym)
		return zero, false
	}
	return t, true
}

// Imports is one `FROM module` clause of an IMPORTS declaration.
type Imports struct {
	module       *Module
	moduleToken  *IdToken
	symbolTokens []*IdToken

	imported *Module
	symbols  map[string]Symbol
}

// ModuleToken names the exporting module.
func (i *Imports) ModuleToken() *IdToken { return i.moduleToken }

// SymbolTokens returns the imported identifiers.
func (i *Imports) SymbolTokens() []*IdToken { return i.symbolTokens }

// ImportedModule returns the resolved exporting module, or nil.
func (i *Imports) ImportedModule() *Module { return i.imported }

// Find returns the resolved symbol imported under id, or nil.
func (i *Imports) Find(id string) Symbol { return i.symbols[id] }

// resolve binds every imported identifier to the exporting module's own
// symbol. Identifiers the exporter lacks are reported and stay unbound.
func (i *Imports) resolve(p *Problems) {
	i.imported = i.module.mib.resolveModule(i.moduleToken, p)
	if i.imported == nil {
		return
	}
	i.symbols = make(map[string]Symbol, len(i.symbolTokens))
	for _, tok := range i.symbolTokens {
		s := i.imported.FindSymbol(tok.ID)
		if s == nil {
			p.importNotFound(tok, i.imported.ID())
			continue
		}
		i.symbols[tok.ID] = s
	}
}

// ScopedID is an identifier optionally qualified by the module defining it.
type ScopedID struct {
	module      *Module
	moduleToken *IdToken
	symbolToken *IdToken
	symbol      Symbol
}

// NewScopedID creates a reference written in mod. moduleTok may be nil.
func NewScopedID(mod *Module, moduleTok, symbolTok *IdToken) *ScopedID {
	return &ScopedID{module: mod, moduleToken: moduleTok, symbolToken: symbolTok}
}

// ModuleToken returns the qualifying module, or nil.
func (s *ScopedID) ModuleToken() *IdToken { return s.moduleToken }

// SymbolToken returns the referenced identifier.
func (s *ScopedID) SymbolToken() *IdToken { return s.symbolToken }

// Symbol returns the resolved symbol, or nil.
func (s *ScopedID) Symbol() Symbol { return s.symbol }

func (s *ScopedID) String() string {
	if s.moduleToken != nil {
		return s.moduleToken.ID + "." + s.symbolToken.ID
	}
	return s.symbolToken.ID
}

func (s *ScopedID) resolve(p *Problems) Symbol {
	if s.symbol != nil {
		return s.symbol
	}
	scope := s.module
	if s.moduleToken != nil {
		scope = s.module.mib.resolveModule(s.moduleToken, p)
		if scope == nil {
			return nil
		}
	}
	s.symbol = scope.lookup(s.symbolToken, nil, p)
	return s.symbol
}
